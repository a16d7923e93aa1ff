package gateway

import (
	"encoding/json"

	"smartnote/internal/domain/entities"
)

// Бэкенд отдает сущности то голыми, то в конверте вида {"notes": [...]}.
// Декодеры сначала пробуют конверт, затем голую форму.

// decodeNotes разбирает коллекцию заметок.
func decodeNotes(data []byte) ([]*entities.Note, error) {
	var envelope struct {
		Notes json.RawMessage `json:"notes"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Notes != nil {
		var notes []*entities.Note
		if err := json.Unmarshal(envelope.Notes, &notes); err != nil {
			return nil, newDecodeError(err)
		}
		return notes, nil
	}

	var notes []*entities.Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, newDecodeError(err)
	}
	return notes, nil
}

// decodeNote разбирает одиночную заметку.
func decodeNote(data []byte) (*entities.Note, error) {
	var envelope struct {
		Note *entities.Note `json:"note"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Note != nil {
		return envelope.Note, nil
	}

	var note entities.Note
	if err := json.Unmarshal(data, &note); err != nil {
		return nil, newDecodeError(err)
	}
	return &note, nil
}

// decodeCategories разбирает коллекцию категорий.
func decodeCategories(data []byte) ([]*entities.Category, error) {
	var envelope struct {
		Categories json.RawMessage `json:"categories"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Categories != nil {
		var categories []*entities.Category
		if err := json.Unmarshal(envelope.Categories, &categories); err != nil {
			return nil, newDecodeError(err)
		}
		return categories, nil
	}

	var categories []*entities.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, newDecodeError(err)
	}
	return categories, nil
}

// decodeCategory разбирает одиночную категорию.
func decodeCategory(data []byte) (*entities.Category, error) {
	var envelope struct {
		Category *entities.Category `json:"category"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Category != nil {
		return envelope.Category, nil
	}

	var category entities.Category
	if err := json.Unmarshal(data, &category); err != nil {
		return nil, newDecodeError(err)
	}
	return &category, nil
}
