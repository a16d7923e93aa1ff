package gateway

import (
	"context"
	"net/http"
	"strings"

	"smartnote/internal/domain/entities"
)

// ErrMsgCategoryNameRequired - сообщение локальной валидации категории.
const ErrMsgCategoryNameRequired = "category name is required"

// CreateCategoryInput - данные для создания категории.
type CreateCategoryInput struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// UpdateCategoryInput - данные для полной замены категории.
// Идентификатор передается в теле запроса.
type UpdateCategoryInput struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ListCategories возвращает все категории пользователя.
func (c *Client) ListCategories(ctx context.Context) ([]*entities.Category, error) {
	data, err := c.do(ctx, http.MethodGet, "/categories", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeCategories(data)
}

// CreateCategory создает категорию.
func (c *Client) CreateCategory(ctx context.Context, input CreateCategoryInput) (*entities.Category, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, &APIError{Message: ErrMsgCategoryNameRequired}
	}

	data, err := c.do(ctx, http.MethodPost, "/categories", nil, input)
	if err != nil {
		return nil, err
	}
	return decodeCategory(data)
}

// UpdateCategory полностью заменяет категорию.
func (c *Client) UpdateCategory(ctx context.Context, input UpdateCategoryInput) (*entities.Category, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, &APIError{Message: ErrMsgCategoryNameRequired}
	}

	data, err := c.do(ctx, http.MethodPut, "/categories", nil, input)
	if err != nil {
		return nil, err
	}
	return decodeCategory(data)
}

// DeleteCategory удаляет категорию по идентификатору.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/categories", nil, deleteRequest{ID: id})
	return err
}
