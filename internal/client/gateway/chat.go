package gateway

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"smartnote/internal/domain/entities"
	"smartnote/pkg/logger"
)

// ErrMsgEmptyMessages - сообщение локальной валидации диалога.
const ErrMsgEmptyMessages = "at least one message is required"

// ChatResult - ответ ассистента с заметками, которые сервер счел
// относящимися к вопросу.
type ChatResult struct {
	Content      string
	RelatedNotes []*entities.Note
}

// chatRequest - тело запроса диалога.
type chatRequest struct {
	Messages []entities.ChatMessage `json:"messages"`
}

// chatResponse - JSON-форма ответа диалога.
type chatResponse struct {
	Content      string           `json:"content"`
	RelatedNotes []*entities.Note `json:"relatedNotes"`
}

// SendChat отправляет историю диалога и возвращает ответ ассистента.
// При ненулевом onChunk запрашивается потоковый ответ: фрагменты
// передаются в onChunk по мере поступления, итоговый текст
// складывается в результат. Ответ разбирается по Content-Type, так
// что сервер вправе ответить JSON и на потоковый запрос.
func (c *Client) SendChat(ctx context.Context, messages []entities.ChatMessage, onChunk func(string)) (*ChatResult, error) {
	if len(messages) == 0 {
		return nil, &APIError{Message: ErrMsgEmptyMessages}
	}

	var query url.Values
	if onChunk != nil {
		query = url.Values{}
		query.Set("stream", "1")
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/chat", query, chatRequest{Messages: messages})
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Log(ctx).Debug(ctx, "chat transport failure", zap.Error(err))
		return nil, newNetworkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusMultipleChoices {
		data, _ := io.ReadAll(resp.Body)
		return nil, newStatusError(resp.StatusCode, data)
	}

	if strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain") {
		return readChatStream(resp.Body, onChunk)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newNetworkError(err)
	}

	var decoded chatResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, newDecodeError(err)
	}
	if onChunk != nil && decoded.Content != "" {
		onChunk(decoded.Content)
	}
	return &ChatResult{Content: decoded.Content, RelatedNotes: decoded.RelatedNotes}, nil
}

// readChatStream вычитывает потоковый ответ text/plain.
func readChatStream(body io.Reader, onChunk func(string)) (*ChatResult, error) {
	var content strings.Builder
	reader := bufio.NewReader(body)
	buf := make([]byte, 4096)

	for {
		n, err := reader.Read(buf)
		if n > 0 {
			chunk := string(buf[:n])
			content.WriteString(chunk)
			if onChunk != nil {
				onChunk(chunk)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, newNetworkError(err)
		}
	}

	return &ChatResult{Content: content.String()}, nil
}
