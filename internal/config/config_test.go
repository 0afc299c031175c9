package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HOST", "PORT", "READ_TIMEOUT", "WRITE_TIMEOUT", "IDLE_TIMEOUT",
		"MAX_REQUEST_BODY_SIZE", "ENABLE_PPROF", "VENDOR_TIMEOUT",
		"OPENAI_API_KEY", "OPENAI_BASE_URL", "DEEPSEEK_API_KEY", "DEEPSEEK_API_URL",
		"GEMINI_API_KEY", "GEMINI_BASE_URL", "REMOVEBG_API_KEY", "REMOVEBG_API_URL",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_OUTPUT", "SERVICE_NAME", "ENVIRONMENT", "ENV",
		"VERSION", "MONGODB_URI",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:3000", cfg.Server.Address())
	assert.Equal(t, int64(DefaultMaxRequestBody), cfg.Server.MaxRequestBodySize)
	assert.False(t, cfg.Server.EnablePprof)

	assert.Equal(t, DefaultOpenAIBaseURL, cfg.Vendors.OpenAI.BaseURL)
	assert.Equal(t, DefaultDeepSeekURL, cfg.Vendors.DeepSeek.BaseURL)
	assert.Equal(t, DefaultRemoveBGURL, cfg.Vendors.RemoveBG.BaseURL)
	assert.Empty(t, cfg.Vendors.Gemini.BaseURL)
	assert.Equal(t, DefaultVendorTimeout, cfg.Vendors.OpenAI.Timeout)

	// No keys configured is a valid startup state
	assert.False(t, cfg.Vendors.OpenAI.HasKey())
	assert.False(t, cfg.Vendors.Gemini.HasKey())
	assert.False(t, cfg.Database.Enabled())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("WRITE_TIMEOUT", "90s")
	t.Setenv("VENDOR_TIMEOUT", "30")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:9999/v1/")
	t.Setenv("GEMINI_API_KEY", "gm-test")
	t.Setenv("ENABLE_PPROF", "true")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8081", cfg.Server.Address())
	assert.Equal(t, 90*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 30*time.Second, cfg.Vendors.OpenAI.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Vendors.RemoveBG.Timeout)
	assert.Equal(t, "http://localhost:9999/v1", cfg.Vendors.OpenAI.BaseURL)
	assert.True(t, cfg.Vendors.OpenAI.HasKey())
	assert.True(t, cfg.Vendors.Gemini.HasKey())
	assert.True(t, cfg.Server.EnablePprof)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Database.Enabled())
}

func TestLoadInvalid(t *testing.T) {
	testCases := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{name: "non numeric port", key: "PORT", value: "abc", wantErr: "invalid PORT"},
		{name: "port out of range", key: "PORT", value: "70000", wantErr: "Server.Port"},
		{name: "zero port", key: "PORT", value: "0", wantErr: "Server.Port"},
		{name: "bad duration", key: "READ_TIMEOUT", value: "soon", wantErr: "invalid READ_TIMEOUT"},
		{name: "zero vendor timeout", key: "VENDOR_TIMEOUT", value: "0", wantErr: "Timeout"},
		{name: "negative body limit", key: "MAX_REQUEST_BODY_SIZE", value: "-1", wantErr: "MaxRequestBodySize"},
		{name: "base url not a url", key: "REMOVEBG_API_URL", value: "not a url", wantErr: "RemoveBG.BaseURL"},
		{name: "unknown log level", key: "LOG_LEVEL", value: "verbose", wantErr: "Logging.Level"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			cfg, err := Load()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
	})

	t.Run("loads values without overriding the environment", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("RELAY_TEST_FROM_FILE=file\nRELAY_TEST_PRESET=file\n"), 0600))

		t.Setenv("RELAY_TEST_PRESET", "process")
		t.Cleanup(func() { os.Unsetenv("RELAY_TEST_FROM_FILE") })

		require.NoError(t, LoadEnvFile(path))
		assert.Equal(t, "file", os.Getenv("RELAY_TEST_FROM_FILE"))
		assert.Equal(t, "process", os.Getenv("RELAY_TEST_PRESET"))
	})
}

func TestGetEnvBool(t *testing.T) {
	testCases := []struct {
		value    string
		fallback bool
		expected bool
	}{
		{"true", false, true},
		{"ON", false, true},
		{"0", true, false},
		{"no", true, false},
		{"maybe", true, true},
		{"", false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			t.Setenv("RELAY_TEST_BOOL", tc.value)
			assert.Equal(t, tc.expected, GetEnvBool("RELAY_TEST_BOOL", tc.fallback))
		})
	}
}
