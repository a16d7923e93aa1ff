package config

// ChatConfig представляет конфигурацию клиента completion API.
// Пустой APIKey переводит чат в offline-режим с фиксированными ответами.
type ChatConfig struct {
	APIKey  string `yaml:"api_key" env:"CHAT_API_KEY" env-default:""`
	BaseURL string `yaml:"base_url" env:"CHAT_API_BASE_URL" env-default:""`
	Model   string `yaml:"model" env:"CHAT_MODEL" env-default:"gpt-4o-mini"`
}
