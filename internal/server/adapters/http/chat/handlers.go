// Package chat содержит HTTP-обработчик диалога с ассистентом.
package chat

import (
	"bufio"
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"smartnote/internal/server/adapters/http/dto"
	"smartnote/internal/server/adapters/http/middleware"
	"smartnote/internal/server/app"
	"smartnote/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerChat       = "handling chat request"
	LogHandlerChatStream = "handling streaming chat request"

	ErrMsgInvalidRequestBody = "invalid request body"
)

// Handler обработчик HTTP-запросов диалога.
type Handler struct {
	chat *app.ChatUseCase
}

// NewHandler создает новый экземпляр обработчика диалога.
func NewHandler(chat *app.ChatUseCase) *Handler {
	return &Handler{chat: chat}
}

// Chat обрабатывает запрос диалога. По умолчанию ответ возвращается одним
// JSON-объектом; с параметром stream=1 - потоком фрагментов text/plain.
func (h *Handler) Chat(ctx fiber.Ctx) error {
	userCtx, ok := ctx.Locals(middleware.LocalsUserContext).(context.Context)
	if !ok {
		userCtx = ctx.Context()
	}
	userID, _ := ctx.Locals(middleware.LocalsUserID).(string)

	log := logger.Log(userCtx).With(zap.String("handler", "Handler.Chat"))

	var req dto.ChatRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(userCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		if sendErr := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidRequestBody,
		}); sendErr != nil {
			return fmt.Errorf("failed to send bad request response: %w", sendErr)
		}
		return nil
	}

	if ctx.Query("stream") == "1" {
		return h.stream(ctx, userCtx, userID, req)
	}

	log.Debug(userCtx, LogHandlerChat)

	result, err := h.chat.Chat(userCtx, userID, req.Messages)
	if err != nil {
		log.Error(userCtx, "chat completion failed", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(dto.ChatResponse{
		Content:      result.Content,
		RelatedNotes: result.RelatedNotes,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// stream отдает ответ фрагментами text/plain.
func (h *Handler) stream(ctx fiber.Ctx, userCtx context.Context, userID string, req dto.ChatRequest) error {
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.Chat"))
	log.Debug(userCtx, LogHandlerChatStream)

	chunks, err := h.chat.ChatStream(userCtx, userID, req.Messages)
	if err != nil {
		log.Error(userCtx, "chat completion failed", zap.Error(err))
		return handleError(ctx, err)
	}

	ctx.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	return ctx.SendStreamWriter(func(w *bufio.Writer) {
		for chunk := range chunks {
			if _, err := w.WriteString(chunk); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	})
}

// handleError конвертирует ошибки бизнес-логики в HTTP статусы.
func handleError(ctx fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	if errors.Is(err, app.ErrInvalidParams) {
		status = fiber.StatusBadRequest
	}

	if sendErr := ctx.Status(status).JSON(fiber.Map{"error": err.Error()}); sendErr != nil {
		return fmt.Errorf("failed to send error response: %w", sendErr)
	}
	return nil
}
