// Package categories содержит HTTP-обработчики для управления категориями.
package categories

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
	LogHandlerCreateCategory = "handling create category request"
	LogHandlerListCategories = "handling list categories request"
	LogHandlerUpdateCategory = "handling update category request"
	LogHandlerDeleteCategory = "handling delete category request"

	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgMissingCategoryID  = "category id is required"
)

// Handler обработчик HTTP-запросов для работы с категориями.
type Handler struct {
	categories *app.CategoryUseCase
}

// NewHandler создает новый экземпляр обработчика категорий.
func NewHandler(categories *app.CategoryUseCase) *Handler {
	return &Handler{categories: categories}
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

// CreateCategory обрабатывает запрос на создание новой категории.
func (h *Handler) CreateCategory(ctx fiber.Ctx) error {
	userCtx, userID := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.CreateCategory"))
	log.Debug(userCtx, LogHandlerCreateCategory)

	var req dto.CreateCategoryRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(userCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidRequestBody)
	}

	category, err := h.categories.CreateCategory(userCtx, userID, req.Name, req.Color)
	if err != nil {
		log.Error(userCtx, "failed to create category", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(dto.CategoryResponse{Category: category}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ListCategories обрабатывает запрос на получение коллекции категорий.
func (h *Handler) ListCategories(ctx fiber.Ctx) error {
	userCtx, userID := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.ListCategories"))
	log.Debug(userCtx, LogHandlerListCategories)

	categories, err := h.categories.ListCategories(userCtx, userID)
	if err != nil {
		log.Error(userCtx, "failed to list categories", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(dto.CategoriesResponse{Categories: categories}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// UpdateCategory обрабатывает полную замену категории. Идентификатор берется из тела.
func (h *Handler) UpdateCategory(ctx fiber.Ctx) error {
	userCtx, userID := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.UpdateCategory"))
	log.Debug(userCtx, LogHandlerUpdateCategory)

	var req dto.UpdateCategoryRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(userCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidRequestBody)
	}
	if req.ID == "" {
		log.Error(userCtx, ErrMsgMissingCategoryID)
		return badRequest(ctx, ErrMsgMissingCategoryID)
	}

	category, err := h.categories.UpdateCategory(userCtx, userID, req.ID, req.Name, req.Color)
	if err != nil {
		log.Error(userCtx, "failed to update category", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(dto.CategoryResponse{Category: category}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// DeleteCategory обрабатывает удаление категории. Идентификатор берется из тела.
func (h *Handler) DeleteCategory(ctx fiber.Ctx) error {
	userCtx, userID := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.DeleteCategory"))
	log.Debug(userCtx, LogHandlerDeleteCategory)

	var req dto.DeleteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(userCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidRequestBody)
	}
	if req.ID == "" {
		log.Error(userCtx, ErrMsgMissingCategoryID)
		return badRequest(ctx, ErrMsgMissingCategoryID)
	}

	if err := h.categories.DeleteCategory(userCtx, userID, req.ID); err != nil {
		log.Error(userCtx, "failed to delete category", zap.Error(err))
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
	case errors.Is(err, app.ErrCategoryExists):
		status = fiber.StatusConflict
	}

	if sendErr := ctx.Status(status).JSON(fiber.Map{"error": err.Error()}); sendErr != nil {
		return fmt.Errorf("failed to send error response: %w", sendErr)
	}
	return nil
}
