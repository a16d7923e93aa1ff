// Package llm содержит клиентов completion API.
package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/meguminnnnnnnnn/go-openai"
	"go.uber.org/zap"

	"smartnote/internal/domain/entities"
	llmPorts "smartnote/internal/server/ports/llm"
	"smartnote/internal/server/config"
	"smartnote/pkg/logger"
)

// Константы для логирования.
const (
	LogCompletion       = "requesting chat completion"
	LogCompletionStream = "requesting chat completion stream"

	ErrorCompletionFailed = "failed to create chat completion"
)

// ErrEmptyCompletion возвращается, когда API не вернул ни одного варианта ответа.
var ErrEmptyCompletion = errors.New("completion API returned no choices")

// OpenAIClient реализует интерфейс Completer поверх OpenAI-совместимого API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient создает новый клиент completion API.
func NewOpenAIClient(cfg *config.ChatConfig) llmPorts.Completer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}
}

// Complete возвращает сгенерированный ответ по полной истории диалога.
func (c *OpenAIClient) Complete(ctx context.Context, messages []entities.ChatMessage) (string, error) {
	log := logger.Log(ctx).With(zap.String("model", c.model))
	log.Debug(ctx, LogCompletion, zap.Int("messages", len(messages)))

	resp, err := c.client.CreateChatCompletion(ctx, c.toRequest(messages))
	if err != nil {
		log.Error(ctx, ErrorCompletionFailed, zap.Error(err))
		return "", fmt.Errorf("%s: %w", ErrorCompletionFailed, err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

// CompleteStream возвращает канал фрагментов сгенерированного ответа.
func (c *OpenAIClient) CompleteStream(ctx context.Context, messages []entities.ChatMessage) (<-chan string, error) {
	log := logger.Log(ctx).With(zap.String("model", c.model))
	log.Debug(ctx, LogCompletionStream, zap.Int("messages", len(messages)))

	stream, err := c.client.CreateChatCompletionStream(ctx, c.toRequest(messages))
	if err != nil {
		log.Error(ctx, ErrorCompletionFailed, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorCompletionFailed, err)
	}

	chunks := make(chan string)
	go func() {
		defer close(chunks)
		defer stream.Close()

		for {
			resp, err := stream.Recv()
			if err != nil {
				return
			}
			for _, choice := range resp.Choices {
				if choice.Delta.Content != "" {
					select {
					case chunks <- choice.Delta.Content:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	return chunks, nil
}

// toRequest конвертирует историю диалога в формат OpenAI.
func (c *OpenAIClient) toRequest(messages []entities.ChatMessage) openai.ChatCompletionRequest {
	converted := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		converted = append(converted, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	return openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: converted,
	}
}
