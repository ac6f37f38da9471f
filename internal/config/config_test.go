package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT",
		"REDIS_DIAL_TIMEOUT", "REDIS_READ_TIMEOUT",
		"REDIS_WRITE_TIMEOUT", "REDIS_STREAM_MAXLEN",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.Redis.DialTimeout)
	assert.Equal(t, 3*time.Second, cfg.Redis.ReadTimeout)
	assert.Equal(t, 3*time.Second, cfg.Redis.WriteTimeout)
	assert.Equal(t, int64(10000), cfg.Redis.StreamMaxLen)
}

func TestLoad_RedisOverrides(t *testing.T) {
	t.Setenv("REDIS_DIAL_TIMEOUT", "250ms")
	t.Setenv("REDIS_READ_TIMEOUT", "1s")
	t.Setenv("REDIS_WRITE_TIMEOUT", "2s")
	t.Setenv("REDIS_STREAM_MAXLEN", "500")

	cfg := Load()

	assert.Equal(t, 250*time.Millisecond, cfg.Redis.DialTimeout)
	assert.Equal(t, time.Second, cfg.Redis.ReadTimeout)
	assert.Equal(t, 2*time.Second, cfg.Redis.WriteTimeout)
	assert.Equal(t, int64(500), cfg.Redis.StreamMaxLen)
}

func TestLoad_MalformedValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("REDIS_DIAL_TIMEOUT", "soon")
	t.Setenv("REDIS_STREAM_MAXLEN", "lots")

	cfg := Load()

	assert.Equal(t, 5*time.Second, cfg.Redis.DialTimeout)
	assert.Equal(t, int64(10000), cfg.Redis.StreamMaxLen)
}

func TestLoad_StreamTrimmingCanBeDisabled(t *testing.T) {
	t.Setenv("REDIS_STREAM_MAXLEN", "0")

	cfg := Load()
	assert.Equal(t, int64(0), cfg.Redis.StreamMaxLen)
}
