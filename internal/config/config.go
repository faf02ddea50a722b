package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"sseol-server/internal/utils"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Поддерживаемые провайдеры модели.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// Config содержит конфигурацию сервиса размещения изображений.
type Config struct {
	Env        string `envconfig:"ENV" default:"development"`
	ServerPort string `envconfig:"SERVER_PORT" default:"8080"`

	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`

	// Модель, принимающая решение о размещении
	OracleProvider        string        `envconfig:"ORACLE_PROVIDER" default:"gemini"`
	OracleModel           string        `envconfig:"ORACLE_MODEL" default:"gemini-2.5-flash"`
	OracleBaseURL         string        `envconfig:"ORACLE_BASE_URL"`
	OracleTimeout         time.Duration `envconfig:"ORACLE_TIMEOUT" default:"90s"`
	OracleTemperature     float32       `envconfig:"ORACLE_TEMPERATURE" default:"0.3"`
	OracleMinOutputTokens int           `envconfig:"ORACLE_MIN_OUTPUT_TOKENS" default:"2048"`
	OracleMaxOutputTokens int           `envconfig:"ORACLE_MAX_OUTPUT_TOKENS" default:"16384"`
	// Секретное поле БЕЗ envconfig тега
	OracleAPIKey string `ignored:"true"`

	// Описание изображений
	DescriberModel       string  `envconfig:"DESCRIBER_MODEL" default:"gemini-2.5-flash"`
	DescriberConcurrency int     `envconfig:"DESCRIBER_CONCURRENCY" default:"8"`
	DescriberRPS         float64 `envconfig:"DESCRIBER_RPS" default:"0"` // 0 - без ограничения
	MaxUploadBytes       int64   `envconfig:"MAX_UPLOAD_BYTES" default:"10485760"`

	// Кэш описаний (пустой адрес - кэш выключен)
	RedisAddr          string        `envconfig:"REDIS_ADDR"`
	RedisDB            int           `envconfig:"REDIS_DB" default:"0"`
	DescriptorCacheTTL time.Duration `envconfig:"DESCRIPTOR_CACHE_TTL" default:"24h"`
	// Секретное поле БЕЗ envconfig тега
	RedisPassword string `ignored:"true"`

	PricingFile string `envconfig:"PRICING_FILE"`
}

// GetAllowedOrigins разбивает CORSAllowedOrigins по запятой.
func (c *Config) GetAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
}

// LoadConfig загружает .env (если есть), переменные окружения и секреты.
func LoadConfig(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if _, err := os.Stat(envFilePath); err == nil {
			if err := godotenv.Load(envFilePath); err != nil {
				return nil, fmt.Errorf("error loading %s: %w", envFilePath, err)
			}
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing env vars: %w", err)
	}

	cfg.OracleProvider = strings.ToLower(strings.TrimSpace(cfg.OracleProvider))
	cfg.OracleAPIKey = utils.ReadSecretOrEnv("oracle_api_key", "ORACLE_API_KEY")
	cfg.RedisPassword = utils.ReadSecretOrEnv("redis_password", "REDIS_PASSWORD")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	switch c.OracleProvider {
	case ProviderGemini, ProviderOpenAI:
		if c.OracleAPIKey == "" {
			errs = append(errs, fmt.Errorf("oracle api key is required for provider %q", c.OracleProvider))
		}
	case ProviderOllama:
	default:
		errs = append(errs, fmt.Errorf("unknown ORACLE_PROVIDER %q", c.OracleProvider))
	}
	if c.OracleMinOutputTokens <= 0 || c.OracleMaxOutputTokens < c.OracleMinOutputTokens {
		errs = append(errs, fmt.Errorf("invalid output token bounds: min=%d max=%d", c.OracleMinOutputTokens, c.OracleMaxOutputTokens))
	}
	if c.DescriberConcurrency <= 0 {
		errs = append(errs, fmt.Errorf("DESCRIBER_CONCURRENCY must be positive, got %d", c.DescriberConcurrency))
	}
	return errors.Join(errs...)
}
