package config

// AuthConfig представляет конфигурацию проверки bearer-токенов.
// Токены выпускает внешний провайдер идентификации; сервер только
// проверяет подпись и извлекает идентификатор пользователя.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"SERVER_JWT_SECRET" env-default:"dev-secret"`
}
