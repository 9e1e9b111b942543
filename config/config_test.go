package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "calmwave", cfg.DatabaseName)
	assert.Equal(t, 5, cfg.DashboardWindow)
	assert.False(t, cfg.StreakCountLeading)
	assert.False(t, cfg.BookingStrictTransitions)
	assert.Equal(t, 10*time.Minute, cfg.RatingCacheTTL)
	assert.Equal(t, time.Hour, cfg.ReminderLead)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_PORT", "9090")
	t.Setenv("STREAK_COUNT_LEADING", "true")
	t.Setenv("RATING_CACHE_TTL", "30s")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,192.168.1.1")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.AppPort)
	assert.True(t, cfg.StreakCountLeading)
	assert.Equal(t, 30*time.Second, cfg.RatingCacheTTL)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.1"}, cfg.TrustedProxies)
}
