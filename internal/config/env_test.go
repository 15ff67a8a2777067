package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DEPLOY_MODE", "AZURE_API_KEY", "FANOLAB_API_KEY", "OPENAI_API_KEY",
		"AZURE_POSTGRES_CONNECTION", "ON_PREMISES_POSTGRES_CONNECTION",
		"MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY",
		"MINIO_BUCKET", "MINIO_USE_SSL", "REDIS_ADDR", "VOICE_ENCODER_URL",
		"SQLITE_PATH",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestGetEnvModeSelection(t *testing.T) {
	testCases := []struct {
		name        string
		mode        string
		cloudDSN    string
		onPremDSN   string
		expectError bool
		expectDSN   string
	}{
		{
			name:      "default mode is on_cloud",
			mode:      "",
			cloudDSN:  "postgres://cloud/db",
			onPremDSN: "postgres://local/db",
			expectDSN: "postgres://cloud/db",
		},
		{
			name:      "on_premises selects local DSN",
			mode:      "on_premises",
			cloudDSN:  "postgres://cloud/db",
			onPremDSN: "postgres://local/db",
			expectDSN: "postgres://local/db",
		},
		{
			name:        "unknown mode rejected",
			mode:        "hybrid",
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resetEnv(t)
			t.Setenv("DEPLOY_MODE", tc.mode)
			t.Setenv("AZURE_POSTGRES_CONNECTION", tc.cloudDSN)
			t.Setenv("ON_PREMISES_POSTGRES_CONNECTION", tc.onPremDSN)

			env, err := GetEnv()
			if tc.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectDSN, env.PostgresDSN)
		})
	}
}

func TestGetEnvRejectsBadOpenAIKey(t *testing.T) {
	resetEnv(t)
	t.Setenv("OPENAI_API_KEY", "not-a-key")

	_, err := GetEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestGetEnvLocalDefaults(t *testing.T) {
	resetEnv(t)

	env, err := GetEnv()
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", env.MinioEndpoint)
	assert.Equal(t, "meetscribe-clips", env.MinioBucket)
	assert.Equal(t, "localhost:6379", env.RedisAddr)
}

func TestRequireProviderKeys(t *testing.T) {
	resetEnv(t)

	env, err := GetEnv()
	require.NoError(t, err)
	assert.Error(t, RequireProviderKeys(env))

	env.FanoLabAPIKey = "token"
	assert.NoError(t, RequireProviderKeys(env))
}
