package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deeplink/internal/platform/config"
)

func TestNewWithoutURL(t *testing.T) {
	client, err := New(config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, client, "no URL means no cache, not an error")
}

func TestNewRejectsMalformedURL(t *testing.T) {
	client, err := New(config.RedisConfig{URL: "not-a-redis-url"})
	require.Error(t, err)
	assert.Nil(t, client)
}

func TestPingTimeout(t *testing.T) {
	assert.Equal(t, 2*time.Second, pingTimeout(2*time.Second))
	assert.Equal(t, 5*time.Second, pingTimeout(0), "unset dial timeout falls back to a bounded default")
}
