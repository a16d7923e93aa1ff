package store

import "strings"

// Сообщения для пользователя, подбираемые по содержимому ошибки API.
const (
	MsgSessionExpired  = "Session expired, please sign in again"
	MsgAccessDenied    = "You do not have access to this resource"
	MsgNotFound        = "The requested item no longer exists"
	MsgNetworkFailure  = "Cannot reach the server, check your connection"
	MsgUnexpectedError = "Something went wrong, please try again"
)

// FriendlyMessage подбирает сообщение для пользователя по тексту ошибки.
// Классификация идет по подстрокам: сообщение ошибки API содержит цифры
// HTTP статуса.
func FriendlyMessage(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "401"):
		return MsgSessionExpired
	case strings.Contains(msg, "403"):
		return MsgAccessDenied
	case strings.Contains(msg, "404"):
		return MsgNotFound
	case strings.Contains(msg, "Network"):
		return MsgNetworkFailure
	default:
		return MsgUnexpectedError
	}
}
