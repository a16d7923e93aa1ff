package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartnote/internal/domain/entities"
	"smartnote/internal/server/adapters/cache"
	httpServer "smartnote/internal/server/adapters/http"
	"smartnote/internal/server/adapters/llm"
	"smartnote/internal/server/adapters/memory"
	"smartnote/internal/server/app"
)

const testSecret = "test-secret"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	noteRepo := memory.NewNoteRepository()
	categoryRepo := memory.NewCategoryRepository()

	notesUC := app.NewNoteUseCase(noteRepo, cache.NewNoopCache())
	categoriesUC := app.NewCategoryUseCase(categoryRepo)
	chatUC := app.NewChatUseCase(llm.NewCannedClient(), noteRepo, categoryRepo)

	fiberApp := fiber.New()
	httpServer.SetupRouter(fiberApp, testSecret, notesUC, categoriesUC, chatUC)
	return fiberApp
}

func signToken(t *testing.T, userID string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doRequest(t *testing.T, fiberApp *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := fiberApp.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}

func TestNotesRequireAuth(t *testing.T) {
	fiberApp := newTestApp(t)

	resp := doRequest(t, fiberApp, http.MethodGet, "/api/v1/notes", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doRequest(t, fiberApp, http.MethodGet, "/api/v1/notes", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateAndListNotes(t *testing.T) {
	fiberApp := newTestApp(t)
	token := signToken(t, "user-1")

	resp := doRequest(t, fiberApp, http.MethodPost, "/api/v1/notes", token, fiber.Map{
		"title":   "Shopping",
		"content": "milk",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Note *entities.Note `json:"note"`
	}
	decodeBody(t, resp, &created)
	require.NotNil(t, created.Note)
	assert.NotEmpty(t, created.Note.ID)
	assert.Equal(t, "Shopping", created.Note.Title)

	resp = doRequest(t, fiberApp, http.MethodGet, "/api/v1/notes", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listed struct {
		Notes []*entities.Note `json:"notes"`
	}
	decodeBody(t, resp, &listed)
	require.Len(t, listed.Notes, 1)
	assert.Equal(t, created.Note.ID, listed.Notes[0].ID)
}

func TestCreateNoteValidationError(t *testing.T) {
	fiberApp := newTestApp(t)
	token := signToken(t, "user-1")

	resp := doRequest(t, fiberApp, http.MethodPost, "/api/v1/notes", token, fiber.Map{
		"title":   "",
		"content": "milk",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateNoteIDInBody(t *testing.T) {
	fiberApp := newTestApp(t)
	token := signToken(t, "user-1")

	resp := doRequest(t, fiberApp, http.MethodPost, "/api/v1/notes", token, fiber.Map{
		"title":   "Shopping",
		"content": "milk",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Note *entities.Note `json:"note"`
	}
	decodeBody(t, resp, &created)

	resp = doRequest(t, fiberApp, http.MethodPut, "/api/v1/notes", token, fiber.Map{
		"id":      created.Note.ID,
		"title":   "Groceries",
		"content": "bread",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated struct {
		Note *entities.Note `json:"note"`
	}
	decodeBody(t, resp, &updated)
	assert.Equal(t, "Groceries", updated.Note.Title)
	assert.Equal(t, created.Note.ID, updated.Note.ID)
}

func TestDeleteNoteIDInBody(t *testing.T) {
	fiberApp := newTestApp(t)
	token := signToken(t, "user-1")

	resp := doRequest(t, fiberApp, http.MethodPost, "/api/v1/notes", token, fiber.Map{
		"title":   "Shopping",
		"content": "milk",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Note *entities.Note `json:"note"`
	}
	decodeBody(t, resp, &created)

	resp = doRequest(t, fiberApp, http.MethodDelete, "/api/v1/notes", token, fiber.Map{
		"id": created.Note.ID,
	})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Повторное удаление того же ID.
	resp = doRequest(t, fiberApp, http.MethodDelete, "/api/v1/notes", token, fiber.Map{
		"id": created.Note.ID,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSearchNotes_HTTP(t *testing.T) {
	fiberApp := newTestApp(t)
	token := signToken(t, "user-1")

	for _, note := range []fiber.Map{
		{"title": "Grocery list", "content": "milk"},
		{"title": "Meeting", "content": "quarterly plan"},
	} {
		resp := doRequest(t, fiberApp, http.MethodPost, "/api/v1/notes", token, note)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := doRequest(t, fiberApp, http.MethodGet, "/api/v1/notes/search?q=grocery", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var found struct {
		Notes []*entities.Note `json:"notes"`
	}
	decodeBody(t, resp, &found)
	require.Len(t, found.Notes, 1)
	assert.Equal(t, "Grocery list", found.Notes[0].Title)
}

func TestCategoryDuplicateConflict(t *testing.T) {
	fiberApp := newTestApp(t)
	token := signToken(t, "user-1")

	resp := doRequest(t, fiberApp, http.MethodPost, "/api/v1/categories", token, fiber.Map{
		"name":  "Work",
		"color": "#ff0000",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, fiberApp, http.MethodPost, "/api/v1/categories", token, fiber.Map{
		"name":  "wOrK",
		"color": "#00ff00",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestChatWithoutToken(t *testing.T) {
	fiberApp := newTestApp(t)

	resp := doRequest(t, fiberApp, http.MethodPost, "/api/v1/chat", "", fiber.Map{
		"messages": []fiber.Map{
			{"role": "user", "content": "hello"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var chatResp struct {
		Content string `json:"content"`
	}
	decodeBody(t, resp, &chatResp)
	assert.NotEmpty(t, chatResp.Content)
}

func TestChatStreamPlainText(t *testing.T) {
	fiberApp := newTestApp(t)

	resp := doRequest(t, fiberApp, http.MethodPost, "/api/v1/chat?stream=1", "", fiber.Map{
		"messages": []fiber.Map{
			{"role": "user", "content": "hello"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain"))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestChatInvalidRole(t *testing.T) {
	fiberApp := newTestApp(t)

	resp := doRequest(t, fiberApp, http.MethodPost, "/api/v1/chat", "", fiber.Map{
		"messages": []fiber.Map{
			{"role": "moderator", "content": "hello"},
		},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUnknownRoute(t *testing.T) {
	fiberApp := newTestApp(t)

	resp := doRequest(t, fiberApp, http.MethodGet, "/api/v1/unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUserIsolationOverHTTP(t *testing.T) {
	fiberApp := newTestApp(t)
	tokenA := signToken(t, "user-a")
	tokenB := signToken(t, "user-b")

	resp := doRequest(t, fiberApp, http.MethodPost, "/api/v1/notes", tokenA, fiber.Map{
		"title":   "Private",
		"content": "secret",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, fiberApp, http.MethodGet, "/api/v1/notes", tokenB, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listed struct {
		Notes []*entities.Note `json:"notes"`
	}
	decodeBody(t, resp, &listed)
	assert.Empty(t, listed.Notes)
}
