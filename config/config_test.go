package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MemoryBackendDefaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.Equal(t, 5*time.Second, cfg.Store.Timeout)
	assert.Equal(t, "dev-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)
	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:5173")
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_FirestoreRequiresCredentials(t *testing.T) {
	t.Setenv("STORE_BACKEND", "firestore")
	t.Setenv("FIREBASE_CREDENTIALS_PATH", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FIREBASE_CREDENTIALS_PATH")
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_SecretFallbackIsDevelopmentOnly(t *testing.T) {
	for _, env := range []string{"staging", "prod", "test"} {
		t.Run(env, func(t *testing.T) {
			t.Setenv("STORE_BACKEND", "memory")
			t.Setenv("APP_ENV", env)
			t.Setenv("JWT_SECRET", "")

			cfg, err := Load()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "JWT_SECRET")
		})
	}
}

func TestLoad_TrustedProxies(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("APP_ENV", "development")

	t.Setenv("TRUSTED_PROXIES", "")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Server.TrustedProxies)

	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 127.0.0.1")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.Server.TrustedProxies)

	t.Setenv("TRUSTED_PROXIES", "not-an-ip")
	_, err = Load()
	assert.ErrorContains(t, err, "TRUSTED_PROXIES")
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server: ServerConfig{Port: "8080"},
			Store:  StoreConfig{Backend: BackendMemory, Timeout: time.Second},
			Auth:   AuthConfig{JWTSecret: "s", TokenTTL: time.Hour},
			App:    AppConfig{Timezone: "UTC"},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("postgres without dsn", func(t *testing.T) {
		cfg := base()
		cfg.Store.Backend = BackendPostgres
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := base()
		cfg.Store.Backend = "mongo"
		assert.Error(t, cfg.Validate())
	})

	t.Run("empty secret", func(t *testing.T) {
		cfg := base()
		cfg.Auth.JWTSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad timezone", func(t *testing.T) {
		cfg := base()
		cfg.App.Timezone = "Mars/Olympus"
		assert.Error(t, cfg.Validate())
	})
}

func TestGetEnvAsList(t *testing.T) {
	t.Setenv("TEST_LIST", " a, ,b ,c")
	assert.Equal(t, []string{"a", "b", "c"}, getEnvAsList("TEST_LIST", nil))
	assert.Equal(t, []string{"x"}, getEnvAsList("TEST_LIST_MISSING", []string{"x"}))
}
