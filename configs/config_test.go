package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("OAUTH_PROVIDER_SECRET", "")
	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 100.0, cfg.Checkout.FlatShipping)
	assert.Equal(t, 5000.0, cfg.Checkout.FreeShippingThreshold)
	assert.Equal(t, 10*time.Second, cfg.Storefront.RequestTimeout)
	assert.Empty(t, cfg.OAuth.ProviderSecret)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("STOREFRONT_REQUEST_TIMEOUT", "3s")
	t.Setenv("STOREFRONT_BREAKER_COOLDOWN", "not-a-duration")
	t.Setenv("CHECKOUT_FLAT_SHIPPING", "60")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("OAUTH_PROVIDER_SECRET", "callback-secret")

	cfg := LoadConfig()

	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 3*time.Second, cfg.Storefront.RequestTimeout)
	assert.Equal(t, 30*time.Second, cfg.Storefront.BreakerCooldown)
	assert.Equal(t, 60.0, cfg.Checkout.FlatShipping)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "callback-secret", cfg.OAuth.ProviderSecret)
}
