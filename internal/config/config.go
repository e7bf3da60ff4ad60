// config предоставляет структуру конфигурации клиента и функции
// загрузки из файла/переменных окружения с предсказуемым приоритетом.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация клиента.
// Источники значений (по убыванию приоритета):
//  1. явный путь через флаг --config;
//  2. путь в переменной окружения CONFIG_PATH;
//  3. файл .yaml из рабочей директории;
//  4. переменные окружения (cleanenv).
type Config struct {
	Env     string        `yaml:"env" env:"ENV" env-default:"local"`
	API     APIConfig     `yaml:"api"`
	Auth    AuthConfig    `yaml:"auth"`
	Offline OfflineConfig `yaml:"offline"`
	Store   StoreConfig   `yaml:"store"`
}

// APIConfig — параметры доступа к бэкенду платформы.
type APIConfig struct {
	// BaseURL — корневой URL бэкенда, например https://api.platform.local.
	BaseURL string `yaml:"base_url" env:"API_BASE_URL" env-required:"true"`
	// Timeout — таймаут одного HTTP-запроса.
	Timeout time.Duration `yaml:"timeout" env:"API_TIMEOUT" env-default:"15s"`
}

// AuthConfig — параметры фонового обновления access-токена.
type AuthConfig struct {
	// RefreshThreshold — запас валидности, при котором пора обновлять токен.
	RefreshThreshold time.Duration `yaml:"refresh_threshold" env:"AUTH_REFRESH_THRESHOLD" env-default:"5m"`
	// RefreshInterval — период проактивной проверки истечения токена.
	RefreshInterval time.Duration `yaml:"refresh_interval" env:"AUTH_REFRESH_INTERVAL" env-default:"1m"`
}

// OfflineConfig — параметры офлайн-режима и grace-периода.
type OfflineConfig struct {
	// GracePeriod — длительность окна, в течение которого офлайн-сессия
	// остаётся аутентифицированной на кэшированных данных.
	GracePeriod time.Duration `yaml:"grace_period" env:"OFFLINE_GRACE_PERIOD" env-default:"168h"`
	// PollInterval — период опроса связности.
	PollInterval time.Duration `yaml:"poll_interval" env:"OFFLINE_POLL_INTERVAL" env-default:"30s"`
	// ProbeTimeout — таймаут одной проверки достижимости.
	ProbeTimeout time.Duration `yaml:"probe_timeout" env:"OFFLINE_PROBE_TIMEOUT" env-default:"5s"`
	// ProbePath — путь health-эндпоинта для проверки достижимости.
	ProbePath string `yaml:"probe_path" env:"OFFLINE_PROBE_PATH" env-default:"/healthz"`
}

// StoreConfig — локальное хранилище учётных данных.
type StoreConfig struct {
	// Path — путь к файлу bbolt с токенами и кэшем пользователя.
	Path string `yaml:"path" env:"STORE_PATH" env-default:"session.db"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
// ВАЖНО: после чтения файла накладываем ENV-переменные поверх значений из YAML.
func Load(path string) (*Config, error) {
	var cfg Config

	// чтение файла + overlay ENV.
	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 1) Явный путь.
	if path != "" {
		c, err := tryRead(path)
		if err != nil {
			return nil, err
		}

		return c, nil
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		c, err := tryRead(envPath)
		if err != nil {
			return nil, err
		}

		return c, nil
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	return &cfg, nil
}
