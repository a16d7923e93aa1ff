// Package http содержит компоненты HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"

	"smartnote/internal/server/adapters/http/categories"
	"smartnote/internal/server/adapters/http/chat"
	"smartnote/internal/server/adapters/http/middleware"
	"smartnote/internal/server/adapters/http/notes"
	"smartnote/internal/server/app"
)

// SetupRouter настраивает маршрутизацию HTTP сервера.
func SetupRouter(fiberApp *fiber.App, jwtSecret string, notesUC *app.NoteUseCase, categoriesUC *app.CategoryUseCase, chatUC *app.ChatUseCase) {
	notesHandler := notes.NewHandler(notesUC)
	categoriesHandler := categories.NewHandler(categoriesUC)
	chatHandler := chat.NewHandler(chatUC)

	// Middleware для всех запросов.
	fiberApp.Use(middleware.NewLoggerMiddleware())
	fiberApp.Use(middleware.NewRecoveryMiddleware())
	fiberApp.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}))

	// API версии 1.
	apiV1 := fiberApp.Group("/api/v1")

	// Маршруты заметок (требуют авторизации).
	notesRoutes := apiV1.Group("/notes")
	notesRoutes.Use(middleware.NewAuthMiddleware(jwtSecret))
	notesRoutes.Get("/", notesHandler.ListNotes)
	notesRoutes.Get("/search", notesHandler.SearchNotes)
	notesRoutes.Post("/", notesHandler.CreateNote)
	notesRoutes.Put("/", notesHandler.UpdateNote)
	notesRoutes.Delete("/", notesHandler.DeleteNote)

	// Маршруты категорий (требуют авторизации).
	categoriesRoutes := apiV1.Group("/categories")
	categoriesRoutes.Use(middleware.NewAuthMiddleware(jwtSecret))
	categoriesRoutes.Get("/", categoriesHandler.ListCategories)
	categoriesRoutes.Post("/", categoriesHandler.CreateCategory)
	categoriesRoutes.Put("/", categoriesHandler.UpdateCategory)
	categoriesRoutes.Delete("/", categoriesHandler.DeleteCategory)

	// Чат принимает запросы и без токена: контекст заметок тогда не подбирается.
	chatRoutes := apiV1.Group("/chat")
	chatRoutes.Use(middleware.NewOptionalAuthMiddleware(jwtSecret))
	chatRoutes.Post("/", chatHandler.Chat)

	// Обработчик для несуществующих маршрутов.
	fiberApp.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
