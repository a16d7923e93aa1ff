package store

import "smartnote/internal/domain/entities"

// NoteWithCategory - заметка, обогащенная своей категорией.
// Category равна nil, когда заметка без категории или категория
// не найдена (например, уже удалена).
type NoteWithCategory struct {
	Note     *entities.Note
	Category *entities.Category
}

// Enrich соединяет заметки с категориями по идентификатору через
// индекс, а не вложенный перебор. Порядок заметок сохраняется,
// висячие ссылки дают nil-категорию.
func Enrich(notes []*entities.Note, categories []*entities.Category) []NoteWithCategory {
	byID := make(map[string]*entities.Category, len(categories))
	for _, category := range categories {
		byID[category.ID] = category
	}

	enriched := make([]NoteWithCategory, 0, len(notes))
	for _, note := range notes {
		var category *entities.Category
		if note.CategoryID != nil {
			category = byID[*note.CategoryID]
		}
		enriched = append(enriched, NoteWithCategory{Note: note, Category: category})
	}
	return enriched
}
