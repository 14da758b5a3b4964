package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Postgres   PostgresConfig   `validate:"required"`
	Auth       AuthConfig       `validate:"required"`
	KPI        KPIConfig        `mapstructure:"kpi" validate:"required"`
	Event      EventConfig      `mapstructure:"event" validate:"required"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	Sentry     SentryConfig     `mapstructure:"sentry"`
	Cache      CacheConfig      `mapstructure:"cache"`
}

type DeploymentConfig struct {
	Mode types.RunMode `mapstructure:"mode" validate:"required"`
}

type ServerConfig struct {
	Address string `mapstructure:"address" validate:"required"`
	// PopulateRatePerMinute caps population requests per tenant
	PopulateRatePerMinute int `mapstructure:"populate_rate_per_minute" validate:"min=0"`
	PopulateBurst         int `mapstructure:"populate_burst" validate:"min=0"`
}

type LoggingConfig struct {
	Level types.LogLevel `mapstructure:"level" validate:"required"`
}

type PostgresConfig struct {
	Host                   string `mapstructure:"host" validate:"required"`
	Port                   int    `mapstructure:"port" validate:"required"`
	User                   string `mapstructure:"user" validate:"required"`
	Password               string `mapstructure:"password"`
	DBName                 string `mapstructure:"dbname" validate:"required"`
	SSLMode                string `mapstructure:"sslmode"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes"`
}

type AuthConfig struct {
	Secret        string `mapstructure:"secret" validate:"required"`
	TokenTTLHours int    `mapstructure:"token_ttl_hours"`
	// AllowCompanyHeader lets callers without a company claim pick one via X-Company-ID
	AllowCompanyHeader bool `mapstructure:"allow_company_header"`
}

type KPIConfig struct {
	TrendBucketMode  types.TrendBucketMode `mapstructure:"trend_bucket_mode" validate:"required"`
	TrendConcurrency int                   `mapstructure:"trend_concurrency" validate:"min=1"`
}

type CacheConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// TenantTTLSeconds bounds how long a tenant lookup is served from memory
	TenantTTLSeconds int `mapstructure:"tenant_ttl_seconds" validate:"min=0"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

func NewConfig() (*Configuration, error) {
	// a local .env is optional
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/biznes")

	v.SetEnvPrefix("BIZNES")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		fmt.Printf("No config file found, using defaults and environment\n")
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", types.ModeLocal)
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.populate_rate_per_minute", 6)
	v.SetDefault("server.populate_burst", 2)
	v.SetDefault("logging.level", types.LogLevelInfo)
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "biznes")
	v.SetDefault("postgres.dbname", "biznes")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_open_conns", 20)
	v.SetDefault("postgres.max_idle_conns", 5)
	v.SetDefault("postgres.conn_max_lifetime_minutes", 30)
	v.SetDefault("auth.token_ttl_hours", 24)
	v.SetDefault("kpi.trend_bucket_mode", types.TrendBucketCalendar)
	v.SetDefault("kpi.trend_concurrency", 4)
	v.SetDefault("event.publish_destination", types.PublishToMemory)
	v.SetDefault("event.topic", "kpi_events")
	v.SetDefault("event.consumer_enabled", true)
	v.SetDefault("event.max_retries", 3)
	v.SetDefault("event.initial_interval", "500ms")
	v.SetDefault("event.max_interval", "10s")
	v.SetDefault("kafka.client_id", "biznes-api")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.tenant_ttl_seconds", 60)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	if err := c.KPI.TrendBucketMode.Validate(); err != nil {
		return err
	}
	if c.Event.PublishDestination == types.PublishToKafka && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka brokers are required when publishing events to kafka")
	}
	return nil
}

// GetDefaultConfig returns a default configuration for local development.
// Scripts and tests use it when no config file is wired in.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080", PopulateRatePerMinute: 6, PopulateBurst: 2},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		KPI: KPIConfig{
			TrendBucketMode:  types.TrendBucketCalendar,
			TrendConcurrency: 4,
		},
		Event: EventConfig{
			PublishDestination: types.PublishToMemory,
			Topic:              "kpi_events",
			MaxRetries:         3,
			InitialInterval:    500 * time.Millisecond,
			MaxInterval:        10 * time.Second,
		},
		Cache: CacheConfig{Enabled: true, TenantTTLSeconds: 60},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
