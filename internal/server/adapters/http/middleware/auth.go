// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"smartnote/pkg/logger"
)

// Ключи Locals.
const (
	LocalsUserID      = "userID"
	LocalsUserContext = "userContext"
)

// Константы для логирования.
const (
	LogAuthMiddleware = "auth middleware"

	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorInvalidToken       = "invalid or expired token"
)

// ErrInvalidAlgorithm возвращается при неожиданном алгоритме подписи токена.
var ErrInvalidAlgorithm = errors.New("invalid signing algorithm")

// Claims адаптирует полезную нагрузку токена внешнего провайдера идентификации.
// Сервер использует только идентификатор пользователя.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// NewAuthMiddleware создает промежуточное ПО, требующее валидный bearer-токен.
func NewAuthMiddleware(secret string) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		userID, err := userIDFromHeader(ctx.Get("Authorization"), secret)
		if err != nil {
			log.Debug(requestCtx, err.Error())
			if sendErr := ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			}); sendErr != nil {
				return fmt.Errorf("failed to send unauthorized response: %w", sendErr)
			}
			return nil
		}

		userCtx := logger.NewRequestIDContext(requestCtx, "")
		userCtx = context.WithValue(userCtx, userContextKey, userID)

		ctx.Locals(LocalsUserID, userID)
		ctx.Locals(LocalsUserContext, userCtx)

		return ctx.Next()
	}
}

// NewOptionalAuthMiddleware создает промежуточное ПО, принимающее запросы
// и с токеном, и без него. Невалидный токен трактуется как его отсутствие.
func NewOptionalAuthMiddleware(secret string) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()

		userCtx := logger.NewRequestIDContext(requestCtx, "")
		if userID, err := userIDFromHeader(ctx.Get("Authorization"), secret); err == nil {
			userCtx = context.WithValue(userCtx, userContextKey, userID)
			ctx.Locals(LocalsUserID, userID)
		}
		ctx.Locals(LocalsUserContext, userCtx)

		return ctx.Next()
	}
}

// userContextKeyType - тип ключа контекста для идентификатора пользователя.
type userContextKeyType struct{}

var userContextKey = userContextKeyType{}

// userIDFromHeader проверяет заголовок Authorization и извлекает user_id.
func userIDFromHeader(header, secret string) (string, error) {
	if header == "" {
		return "", errors.New(ErrorNoAuthHeader)
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return "", errors.New(ErrorInvalidTokenFormat)
	}

	tokenString := strings.TrimPrefix(header, "Bearer ")

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", errors.New(ErrorInvalidToken)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", errors.New(ErrorInvalidToken)
	}

	return claims.UserID, nil
}
