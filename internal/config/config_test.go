package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigDefaults(t *testing.T) {
	t.Setenv("DBType", "postgres")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example,https://b.example")

	cfg, err := ParseConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "postgres", cfg.DBType)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigins)
	assert.Equal(t, int64(1048576), cfg.MaxBodyBytes)
	assert.Equal(t, int64(10485760), cfg.MaxAttachmentBytes)
	assert.Equal(t, "local", cfg.StorageType)
	assert.Equal(t, 1440, cfg.JWTExpirationMinutes)
}

func TestParseConfigRejectsMalformedNumbers(t *testing.T) {
	t.Setenv("MAX_BODY_BYTES", "lots")

	_, err := ParseConfig()
	assert.Error(t, err)
}
