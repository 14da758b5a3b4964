package kafka

import (
	"testing"

	"github.com/Shopify/sarama"
	"github.com/biznesassistant/biznesassistant/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestGetSaramaConfig(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Kafka.ClientID = "biznes-test"

	plain := GetSaramaConfig(cfg)
	assert.Equal(t, "biznes-test", plain.ClientID)
	assert.False(t, plain.Net.SASL.Enable)
	assert.True(t, plain.Producer.Return.Successes)
	assert.Equal(t, sarama.OffsetOldest, plain.Consumer.Offsets.Initial)

	cfg.Kafka.UseSASL = true
	cfg.Kafka.SASLMechanism = sarama.SASLTypePlaintext
	cfg.Kafka.SASLUser = "user"
	cfg.Kafka.SASLPassword = "secret"

	sasl := GetSaramaConfig(cfg)
	assert.True(t, sasl.Net.SASL.Enable)
	assert.True(t, sasl.Net.TLS.Enable)
	assert.Equal(t, sarama.SASLMechanism(sarama.SASLTypePlaintext), sasl.Net.SASL.Mechanism)
	assert.Equal(t, "user", sasl.Net.SASL.User)
}
