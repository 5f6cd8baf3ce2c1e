package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/rx3lixir/event-explorer/pkg/logger"
)

// AppConfig - корневая конфигурация сервиса
type AppConfig struct {
	HTTP       HTTPParams       `mapstructure:"http"`
	OpenSearch OpenSearchParams `mapstructure:"opensearch"`
	Postgres   PostgresParams   `mapstructure:"postgres"`
	Redis      RedisParams      `mapstructure:"redis"`
	Metrics    MetricsParams    `mapstructure:"metrics"`
	Logger     logger.Config    `mapstructure:"logger"`
}

// HTTPParams - настройки API сервера
type HTTPParams struct {
	Addr         string        `mapstructure:"addr" validate:"required"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// OpenSearchParams - настройки подключения к OpenSearch
type OpenSearchParams struct {
	URL                string        `mapstructure:"url" validate:"required,url"`
	IndexName          string        `mapstructure:"index_name" validate:"required"`
	Timeout            time.Duration `mapstructure:"timeout" validate:"required,min=1s"`
	MaxRetries         int           `mapstructure:"max_retries" validate:"min=0,max=5"`
	MaxIdleConns       int           `mapstructure:"max_idle_conns"`
	InsecureSkipVerify bool          `mapstructure:"insecure_skip_verify"`
}

// PostgresParams - настройки PostgreSQL (каталог событий).
// Пустой URL отключает загрузку данных из базы.
type PostgresParams struct {
	URL string `mapstructure:"url"`
}

// RedisParams - настройки кэша фасетов.
// Пустой Addr отключает кэширование.
type RedisParams struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// MetricsParams - настройки сервера метрик Prometheus
type MetricsParams struct {
	Addr string `mapstructure:"addr"`
}

// Load читает конфигурацию из файла (если есть) и переменных окружения
func Load() (*AppConfig, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	v.SetEnvPrefix("EXPLORER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Файл конфигурации опционален, окружения достаточно
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 15*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)

	v.SetDefault("opensearch.url", "http://localhost:9200")
	v.SetDefault("opensearch.index_name", "events")
	v.SetDefault("opensearch.timeout", 10*time.Second)
	v.SetDefault("opensearch.max_retries", 3)
	v.SetDefault("opensearch.max_idle_conns", 10)
	v.SetDefault("opensearch.insecure_skip_verify", true)

	v.SetDefault("postgres.url", "")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 5*time.Minute)

	v.SetDefault("metrics.addr", ":8091")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")
}
