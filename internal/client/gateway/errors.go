package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError - единый тип ошибки клиента API. Сообщение человекочитаемо
// и содержит цифры HTTP статуса: вызывающий код подбирает текст для
// пользователя по подстрокам ("401", "404", "Network").
type APIError struct {
	StatusCode int
	Message    string
}

// Error возвращает сообщение об ошибке.
func (e *APIError) Error() string {
	return e.Message
}

// newStatusError строит ошибку из статуса и тела ответа.
func newStatusError(status int, body []byte) *APIError {
	msg := http.StatusText(status)

	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		msg = envelope.Error
	}

	return &APIError{
		StatusCode: status,
		Message:    fmt.Sprintf("request failed with status %d: %s", status, msg),
	}
}

// newNetworkError строит ошибку транспортного уровня.
func newNetworkError(err error) *APIError {
	return &APIError{Message: "Network error: " + err.Error()}
}

// newDecodeError строит ошибку разбора ответа.
func newDecodeError(err error) *APIError {
	return &APIError{Message: "failed to decode response: " + err.Error()}
}

// AsAPIError извлекает *APIError из цепочки ошибок.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsEndpointMissing сообщает, указывает ли ошибка на отсутствие endpoint
// (не найден или метод не поддерживается).
func IsEndpointMissing(err error) bool {
	apiErr, ok := AsAPIError(err)
	if !ok {
		return false
	}
	return apiErr.StatusCode == http.StatusNotFound || apiErr.StatusCode == http.StatusMethodNotAllowed
}
