package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://app@localhost:5432/app")
	t.Setenv("SUPABASE_URL", "https://proj.supabase.co")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "service-key")
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setRequired(t)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "3000", cfg.Port)
		assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
		assert.Equal(t, 100, cfg.RateLimitMax)
		assert.Equal(t, "https://proj.supabase.co", cfg.IdentityURL)
		assert.Equal(t, "service-key", cfg.IdentityKey)
	})

	t.Run("alternate identity names are accepted", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://app@localhost:5432/app")
		t.Setenv("IDENTITY_URL", "https://auth.example.com")
		t.Setenv("IDENTITY_KEY", "alt-key")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "https://auth.example.com", cfg.IdentityURL)
		assert.Equal(t, "alt-key", cfg.IdentityKey)
	})

	t.Run("supabase names win when both pairs are set", func(t *testing.T) {
		setRequired(t)
		t.Setenv("IDENTITY_URL", "https://auth.example.com")
		t.Setenv("IDENTITY_KEY", "alt-key")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "https://proj.supabase.co", cfg.IdentityURL)
	})

	t.Run("missing identity url fails", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://app@localhost:5432/app")
		t.Setenv("IDENTITY_KEY", "alt-key")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "identity provider URL missing")
	})

	t.Run("missing identity key fails", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://app@localhost:5432/app")
		t.Setenv("IDENTITY_URL", "https://auth.example.com")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "identity provider key missing")
	})
}
