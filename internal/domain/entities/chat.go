package entities

// Роли участников диалога.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ChatMessage представляет собой одно сообщение диалога.
// ID - локальный идентификатор для ключей интерфейса, сервером не интерпретируется.
// История диалога append-only и живет только в рамках сессии.
type ChatMessage struct {
	ID      string `json:"id,omitempty"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ValidRole сообщает, является ли роль одной из допустимых.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}
