package config

import (
	"time"

	"github.com/biznesassistant/biznesassistant/internal/types"
)

// EventConfig holds configuration for domain event publishing
type EventConfig struct {
	PublishDestination types.PublishDestination `mapstructure:"publish_destination" validate:"required,oneof=memory kafka"`
	Topic              string                   `mapstructure:"topic" validate:"required"`
	// ConsumerEnabled starts the in-process consumer that records population events
	ConsumerEnabled bool          `mapstructure:"consumer_enabled"`
	MaxRetries      int           `mapstructure:"max_retries" validate:"min=0"`
	InitialInterval time.Duration `mapstructure:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval"`
}

// KafkaConfig is only read when events are published to kafka
type KafkaConfig struct {
	Brokers       []string `mapstructure:"brokers"`
	ClientID      string   `mapstructure:"client_id"`
	ConsumerGroup string   `mapstructure:"consumer_group"`
	TLS           bool     `mapstructure:"tls"`
	UseSASL       bool     `mapstructure:"use_sasl"`
	SASLMechanism string   `mapstructure:"sasl_mechanism"`
	SASLUser      string   `mapstructure:"sasl_user"`
	SASLPassword  string   `mapstructure:"sasl_password"`
}
