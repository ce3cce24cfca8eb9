package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithEnvironment(t *testing.T) {
	t.Setenv("APP_DATABASE_DSN", "host=localhost user=shop dbname=shop sslmode=disable")
	t.Setenv("APP_AUTH_JWT_SECRET", "secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, "shop-admin", cfg.ServiceName)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "host=localhost user=shop dbname=shop sslmode=disable", cfg.Database.DSN)
	assert.Equal(t, 8*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, int64(1<<20), cfg.Storage.MaxImageBytes)
	assert.Equal(t, "admin@gmail.com", cfg.Seed.AdminEmail)
	assert.True(t, cfg.Seed.Enabled)
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
service_name = "shop-admin-test"

[http]
port = 9090
read_timeout = "5s"

[database]
driver = "mysql"
dsn = "shop:shop@tcp(localhost:3306)/shop?parseTime=true"

[auth]
jwt_secret = "file-secret"

[kafka]
brokers = ["localhost:9092"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "shop-admin-test", cfg.ServiceName)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			ServiceName: "shop-admin",
			HTTP:        HTTPConfig{Port: 8080},
			Database:    DatabaseConfig{Driver: "postgres", DSN: "dsn"},
			Auth:        AuthConfig{JWTSecret: "secret"},
			Storage:     StorageConfig{MaxImageBytes: 1 << 20},
		}
	}

	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing service name", func(c *Config) { c.ServiceName = "" }, "service_name is required"},
		{"bad port", func(c *Config) { c.HTTP.Port = 70000 }, "invalid HTTP port"},
		{"bad driver", func(c *Config) { c.Database.Driver = "sqlserver" }, "unsupported database driver"},
		{"missing dsn", func(c *Config) { c.Database.DSN = "" }, "database DSN is required"},
		{"missing secret", func(c *Config) { c.Auth.JWTSecret = "" }, "jwt_secret is required"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}
