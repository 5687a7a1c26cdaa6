// config предоставляет структуру конфигурации сервиса и функции
// загрузки из файла/переменных окружения с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация сервиса.
// Источники значений (по убыванию приоритета):
//  1. явный путь через флаг --config;
//  2. путь в переменной окружения CONFIG_PATH;
//  3. файл local.yaml из рабочей директории;
//  4. переменные окружения (cleanenv).
type Config struct {
	Env      string        `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig    `yaml:"http"`
	Auth     AuthConfig    `yaml:"auth"`
	DB       DBConfig      `yaml:"db"`
	Redis    RedisConfig   `yaml:"redis"`
	S3       S3Config      `yaml:"s3"`
	Media    MediaConfig   `yaml:"media"`
	Limits   LimitsConfig  `yaml:"limits"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
}

// HTTPConfig — сетевые настройки HTTP-сервера.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50090"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// AuthConfig содержит параметры выпуска и валидации токенов.
// Секреты access- и refresh-токенов различны: компрометация одного
// не даёт возможности подделать другой.
type AuthConfig struct {
	AccessSecret    string        `yaml:"access_secret" env:"ACCESS_TOKEN_SECRET" env-required:"true"`
	RefreshSecret   string        `yaml:"refresh_secret" env:"REFRESH_TOKEN_SECRET" env-required:"true"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl" env:"ACCESS_TOKEN_TTL" env-default:"15m"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" env:"REFRESH_TOKEN_TTL" env-default:"720h"`
	Issuer          string        `yaml:"issuer"   env:"ISSUER" env-default:"video-hosting"`
	Audience        []string      `yaml:"audience" env:"AUDIENCE" env-default:"video-hosting-api"`
}

// DBConfig — настройки подключения к MongoDB.
type DBConfig struct {
	URL string `yaml:"db_url" env:"DATABASE_URL" env-required:"true"`
}

// RedisConfig — настройки кэша refresh-токенов.
// Пустой URL означает, что кэш выключен (сервис работает без него).
type RedisConfig struct {
	URL string `yaml:"redis_url" env:"REDIS_URL"`
}

// S3Config — настройки медиахранилища (MinIO/S3-совместимое).
// PublicURL — базовый адрес, по которому объекты доступны на чтение;
// публичная ссылка формируется как <public_url>/<bucket>/<key>.
type S3Config struct {
	Endpoint     string `yaml:"endpoint" env:"S3_ENDPOINT" env-required:"true"`
	RootUser     string `yaml:"root_user" env:"S3_ROOT_USER" env-required:"true"`
	RootPassword string `yaml:"root_password" env:"S3_ROOT_PASSWORD" env-required:"true"`
	Bucket       string `yaml:"bucket" env:"S3_BUCKET" env-required:"true"`
	UseSSL       bool   `yaml:"use_ssl" env:"S3_USE_SSL" env-default:"false"`
	PublicURL    string `yaml:"public_url" env:"S3_PUBLIC_URL" env-required:"true"`
}

// MediaConfig — ограничения на загружаемые файлы.
type MediaConfig struct {
	ImageMaxSizeBytes int64    `yaml:"image_max_size_bytes" env:"IMAGE_MAX_SIZE_BYTES" env-default:"5242880"`
	ImageContentTypes []string `yaml:"image_content_types" env:"IMAGE_CONTENT_TYPES" env-separator:"," env-default:"image/jpeg,image/png,image/webp"`
	VideoMaxSizeBytes int64    `yaml:"video_max_size_bytes" env:"VIDEO_MAX_SIZE_BYTES" env-default:"1073741824"`
	VideoContentTypes []string `yaml:"video_content_types" env:"VIDEO_CONTENT_TYPES" env-separator:"," env-default:"video/mp4,video/webm"`
}

// LimitsConfig — ограничения постраничной выдачи.
type LimitsConfig struct {
	DefaultPageSize int64 `yaml:"default_page_size" env:"DEFAULT_PAGE_SIZE" env-default:"10"`
	MaxPageSize     int64 `yaml:"max_page_size" env:"MAX_PAGE_SIZE" env-default:"100"`
}

// TimeoutConfig — таймауты сервиса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"5s"`
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
