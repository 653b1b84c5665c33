package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"SERVER_ADDRESS", "ENVIRONMENT", "DATA_DIR", "UPLOAD_DIR", "BASE_URL", "LOG_LEVEL", "ENABLE_CORS"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, "", cfg.BaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.EnableCORS)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DATA_DIR", "/var/lib/stockledger/data")
	t.Setenv("UPLOAD_DIR", "/var/lib/stockledger/uploads")
	t.Setenv("BASE_URL", "https://stock.example.com")
	t.Setenv("ENABLE_CORS", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ServerAddress)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "/var/lib/stockledger/data", cfg.DataDir)
	assert.Equal(t, "https://stock.example.com", cfg.BaseURL)
	assert.False(t, cfg.EnableCORS)
}

func TestLoadConfigRejectsBadBaseURL(t *testing.T) {
	t.Setenv("BASE_URL", "not a url")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BASE_URL")
}

func TestValidateRequiresDirectories(t *testing.T) {
	cfg := &Config{DataDir: "", UploadDir: "uploads"}
	assert.Error(t, cfg.Validate())

	cfg = &Config{DataDir: "data", UploadDir: ""}
	assert.Error(t, cfg.Validate())

	cfg = &Config{DataDir: "data", UploadDir: "uploads"}
	assert.NoError(t, cfg.Validate())
}

func TestGetEnvBoolVariants(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"0", false},
		{"anything", false},
	}
	for _, tt := range tests {
		t.Setenv("STOCKLEDGER_TEST_FLAG", tt.value)
		assert.Equal(t, tt.want, getEnvBool("STOCKLEDGER_TEST_FLAG", !tt.want), "value %q", tt.value)
	}
}
