// Package gateway реализует клиента HTTP API заметок.
//
// Клиент терпим к неоднородному контракту бэкенда: коллекции приходят
// и голым массивом, и конвертом {"notes": [...]}; идентификатор при
// обновлении и удалении передается в теле запроса, не в пути.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"smartnote/pkg/logger"
)

// DefaultTimeout - фиксированный потолок времени запроса.
const DefaultTimeout = 30 * time.Second

// TokenSource выдает bearer-токен внешнего провайдера идентификации.
// Токен непрозрачен для клиента. Пустой токен означает анонимный запрос.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken реализует TokenSource фиксированным токеном.
type StaticToken string

// Token возвращает фиксированный токен.
func (t StaticToken) Token(ctx context.Context) (string, error) {
	return string(t), nil
}

// Client - клиент HTTP API заметок, категорий и чата.
type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
}

// New создает нового клиента API. baseURL указывает на корень API,
// например http://localhost:8080/api/v1.
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    &http.Client{Timeout: DefaultTimeout},
	}
}

// newRequest собирает запрос с токеном и сериализованным телом.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, &APIError{Message: fmt.Sprintf("failed to encode request body: %v", err)}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, &APIError{Message: fmt.Sprintf("failed to build request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, &APIError{Message: fmt.Sprintf("failed to obtain token: %v", err)}
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	return req, nil
}

// do выполняет запрос и возвращает тело успешного ответа.
// Любая неудача приходит как *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	log := logger.Log(ctx).With(zap.String("method", method), zap.String("path", path))

	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug(ctx, "request transport failure", zap.Error(err))
		return nil, newNetworkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newNetworkError(err)
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		log.Debug(ctx, "request failed", zap.Int("status", resp.StatusCode))
		return nil, newStatusError(resp.StatusCode, data)
	}

	return data, nil
}
