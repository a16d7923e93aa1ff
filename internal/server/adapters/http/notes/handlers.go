// Package notes содержит HTTP-обработчики для управления заметками.
package notes

import (
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
	LogHandlerCreateNote = "handling create note request"
	LogHandlerListNotes  = "handling list notes request"
	LogHandlerSearch     = "handling search notes request"
	LogHandlerUpdateNote = "handling update note request"
	LogHandlerDeleteNote = "handling delete note request"

	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgMissingNoteID      = "note id is required"
)

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	notes *app.NoteUseCase
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(notes *app.NoteUseCase) *Handler {
	return &Handler{notes: notes}
}

// requestContext извлекает контекст запроса, подготовленный middleware.
func requestContext(ctx fiber.Ctx) (context.Context, string) {
	userCtx, ok := ctx.Locals(middleware.LocalsUserContext).(context.Context)
	if !ok {
		userCtx = ctx.Context()
	}
	userID, _ := ctx.Locals(middleware.LocalsUserID).(string)
	return userCtx, userID
}

// CreateNote обрабатывает запрос на создание новой заметки.
func (h *Handler) CreateNote(ctx fiber.Ctx) error {
	userCtx, userID := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.CreateNote"))
	log.Debug(userCtx, LogHandlerCreateNote)

	var req dto.CreateNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(userCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidRequestBody)
	}

	note, err := h.notes.CreateNote(userCtx, userID, req.Title, req.Content, req.CategoryID)
	if err != nil {
		log.Error(userCtx, "failed to create note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(dto.NoteResponse{Note: note}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ListNotes обрабатывает запрос на получение коллекции заметок.
func (h *Handler) ListNotes(ctx fiber.Ctx) error {
	userCtx, userID := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.ListNotes"))
	log.Debug(userCtx, LogHandlerListNotes)

	notes, err := h.notes.ListNotes(userCtx, userID)
	if err != nil {
		log.Error(userCtx, "failed to list notes", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(dto.NotesResponse{Notes: notes}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// SearchNotes обрабатывает поисковый запрос по заметкам.
func (h *Handler) SearchNotes(ctx fiber.Ctx) error {
	userCtx, userID := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.SearchNotes"))
	log.Debug(userCtx, LogHandlerSearch)

	notes, err := h.notes.SearchNotes(userCtx, userID, ctx.Query("q"))
	if err != nil {
		log.Error(userCtx, "failed to search notes", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(dto.NotesResponse{Notes: notes}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// UpdateNote обрабатывает полную замену заметки. Идентификатор берется из тела.
func (h *Handler) UpdateNote(ctx fiber.Ctx) error {
	userCtx, userID := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.UpdateNote"))
	log.Debug(userCtx, LogHandlerUpdateNote)

	var req dto.UpdateNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(userCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidRequestBody)
	}
	if req.ID == "" {
		log.Error(userCtx, ErrMsgMissingNoteID)
		return badRequest(ctx, ErrMsgMissingNoteID)
	}

	note, err := h.notes.UpdateNote(userCtx, userID, req.ID, req.Title, req.Content, req.CategoryID)
	if err != nil {
		log.Error(userCtx, "failed to update note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(dto.NoteResponse{Note: note}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// DeleteNote обрабатывает удаление заметки. Идентификатор берется из тела.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	userCtx, userID := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.DeleteNote"))
	log.Debug(userCtx, LogHandlerDeleteNote)

	var req dto.DeleteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(userCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidRequestBody)
	}
	if req.ID == "" {
		log.Error(userCtx, ErrMsgMissingNoteID)
		return badRequest(ctx, ErrMsgMissingNoteID)
	}

	if err := h.notes.DeleteNote(userCtx, userID, req.ID); err != nil {
		log.Error(userCtx, "failed to delete note", zap.Error(err))
		return handleError(ctx, err)
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

// badRequest отправляет ответ 400 с сообщением об ошибке.
func badRequest(ctx fiber.Ctx, msg string) error {
	if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg}); err != nil {
		return fmt.Errorf("failed to send bad request response: %w", err)
	}
	return nil
}

// handleError конвертирует ошибки бизнес-логики в HTTP статусы.
func handleError(ctx fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, app.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, app.ErrInvalidParams):
		status = fiber.StatusBadRequest
	}

	if sendErr := ctx.Status(status).JSON(fiber.Map{"error": err.Error()}); sendErr != nil {
		return fmt.Errorf("failed to send error response: %w", sendErr)
	}
	return nil
}
