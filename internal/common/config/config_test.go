package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADMIN_IDS", "11,22")
	t.Setenv("CLAIM_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
	assert.Equal(t, 5*time.Second, cfg.Pacing.Claim)
	assert.Equal(t, 3*time.Second, cfg.Pacing.Short)
	assert.Equal(t, "https://{subdomain}.crew3.xyz", cfg.Platform.SiteURL)
	assert.Empty(t, cfg.Platform.ClaimToken)
	assert.True(t, cfg.IsAdmin(22))
	assert.False(t, cfg.IsAdmin(33))
}

func TestLoadRejectsUnknownAnswersBackend(t *testing.T) {
	t.Setenv("ANSWERS_BACKEND", "sheets")

	_, err := Load()
	require.Error(t, err)
}
