// Package relevance реализует подбор заметок, относящихся к запросу пользователя.
//
// Это подстрочный поиск по ключевым словам, а не семантический поиск:
// заметка подходит, если ее заголовок, содержимое или имя категории содержит
// хотя бы один токен запроса длиной более двух символов (без учета регистра).
package relevance

import (
	"strings"

	"smartnote/internal/domain/entities"
)

// MaxRelated - максимальное количество заметок, попадающих в контекст диалога.
const MaxRelated = 5

// minTokenLen - токены короче не участвуют в подборе.
const minTokenLen = 3

// Tokens разбивает запрос на токены подбора: слова в нижнем регистре
// длиной от трех символов.
func Tokens(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) >= minTokenLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Matches сообщает, содержит ли заметка хотя бы один из токенов.
// categoryName может быть пустым, если категория не назначена или удалена.
func Matches(note *entities.Note, categoryName string, tokens []string) bool {
	title := strings.ToLower(note.Title)
	content := strings.ToLower(note.Content)
	category := strings.ToLower(categoryName)

	for _, tok := range tokens {
		if strings.Contains(title, tok) || strings.Contains(content, tok) {
			return true
		}
		if category != "" && strings.Contains(category, tok) {
			return true
		}
	}
	return false
}

// SelectRelated возвращает до limit заметок, относящихся к запросу,
// в порядке исходной коллекции. Категории передаются по id для
// сопоставления имени; отсутствующая категория считается пустым именем.
func SelectRelated(notes []*entities.Note, categories map[string]*entities.Category, query string, limit int) []*entities.Note {
	tokens := Tokens(query)
	if len(tokens) == 0 {
		return nil
	}
	if limit <= 0 {
		limit = MaxRelated
	}

	related := make([]*entities.Note, 0, limit)
	for _, note := range notes {
		var categoryName string
		if note.CategoryID != nil {
			if cat, ok := categories[*note.CategoryID]; ok {
				categoryName = cat.Name
			}
		}
		if Matches(note, categoryName, tokens) {
			related = append(related, note)
			if len(related) == limit {
				break
			}
		}
	}
	return related
}

// RenderContext форматирует заметки в текстовый контекст для
// системного сообщения диалога.
func RenderContext(notes []*entities.Note) string {
	var b strings.Builder
	b.WriteString("The user has the following notes that may be relevant:\n")
	for _, note := range notes {
		b.WriteString("- ")
		b.WriteString(note.Title)
		if note.Content != "" {
			b.WriteString(": ")
			b.WriteString(note.Content)
		}
		b.WriteString("\n")
	}
	b.WriteString("Use them to answer when appropriate.")
	return b.String()
}
