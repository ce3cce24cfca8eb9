package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun_ReturnsStartupErrors(t *testing.T) {
	testCases := []struct {
		name        string
		config      string
		errContains string
	}{
		{
			name: "Invalid config",
			config: `
[database]
driver = "oracle"
dsn = "x"

[auth]
jwt_secret = "secret"
`,
			errContains: "unsupported database driver",
		},
		{
			name: "Database unreachable",
			config: `
[logger]
level = "error"

[database]
driver = "postgres"
dsn = "host=127.0.0.1 port=1 user=shop dbname=shop sslmode=disable connect_timeout=1"

[auth]
jwt_secret = "secret"
`,
			errContains: "database:",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			path := writeConfig(t, tc.config)

			// Act
			err := run(context.Background(), path)

			// Assert
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errContains)
		})
	}
}
