package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("GEMINI_API_KEY", "key")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.Equal(t, float32(0), cfg.Gemini.Temperature)
	assert.Equal(t, 0.3, cfg.Sidecar.SimilarityThreshold)
	assert.Equal(t, 24*time.Hour, cfg.Redis.SuspicionTTL)
	assert.Equal(t, "rgcn_seller_fraud.json", cfg.Model.WeightsPath)
}

func TestLoadMissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		unset   string
		wantErr string
	}{
		{"jwt", "JWT_SECRET", "missing jwt secret"},
		{"db password", "DB_PASSWORD", "missing database password"},
		{"gemini", "GEMINI_API_KEY", "missing gemini api key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.unset, "")

			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestLoadInvalidThreshold(t *testing.T) {
	setRequired(t)
	t.Setenv("SIMILARITY_THRESHOLD", "high")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadTrainerOnlyNeedsDatabase(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("DB_PASSWORD", "pw")

	cfg, err := LoadTrainer()
	require.NoError(t, err)
	assert.Equal(t, "pw", cfg.Database.Password)

	t.Setenv("DB_PASSWORD", "")
	_, err = LoadTrainer()
	assert.EqualError(t, err, "missing database password")
}
