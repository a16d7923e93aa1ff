package config

// Бэкенды хранения.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// StorageConfig представляет конфигурацию хранилища.
// По умолчанию используется волатильное in-memory хранилище;
// postgres подключается для постоянного хранения.
type StorageConfig struct {
	Backend        string `yaml:"backend" env:"SERVER_STORAGE_BACKEND" env-default:"memory"`
	PostgresDSN    string `yaml:"postgres_dsn" env:"SERVER_POSTGRES_DSN" env-default:""`
	MinConns       int    `yaml:"min_conns" env:"SERVER_POSTGRES_MIN_CONNS" env-default:"1"`
	MaxConns       int    `yaml:"max_conns" env:"SERVER_POSTGRES_MAX_CONNS" env-default:"10"`
	MigrationsPath string `yaml:"migrations_path" env:"SERVER_MIGRATIONS_PATH" env-default:"file://migrations/server"`
}
