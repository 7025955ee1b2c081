package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("POSTGRES_DSN", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.PostgresDSN)
}

func TestLoadConfig_RejectsNonNumericPort(t *testing.T) {
	t.Setenv("PORT", "http")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}

func TestLoadConfig_TrimsValues(t *testing.T) {
	t.Setenv("PORT", " 9090 ")
	t.Setenv("POSTGRES_DSN", " postgres://localhost/orders ")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres://localhost/orders", cfg.PostgresDSN)
}
