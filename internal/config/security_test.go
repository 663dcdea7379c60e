package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConfigSecurityValidation exercises the security checks applied to
// user-controlled paths in the configuration.
func TestConfigSecurityValidation(t *testing.T) {
	traversalPaths := []string{
		"../outside",
		"../../etc",
		"notes/../../secrets",
		"./notes/../../../root",
	}

	for _, path := range traversalPaths {
		t.Run("notes dir "+path, func(t *testing.T) {
			viper.Reset()
			viper.Set("notes.dir", path)

			config, err := Load()
			assert.Error(t, err)
			assert.Nil(t, config)
			assert.Contains(t, err.Error(), "traversal")
		})
	}

	injectionPaths := []string{
		"notes;rm -rf /",
		"notes|cat /etc/passwd",
		"notes$(whoami)",
		"notes`id`",
		"notes&background",
	}

	for _, path := range injectionPaths {
		t.Run("notes dir "+path, func(t *testing.T) {
			viper.Reset()
			viper.Set("notes.dir", path)

			config, err := Load()
			assert.Error(t, err)
			assert.Nil(t, config)
			assert.Contains(t, err.Error(), "dangerous character")
		})
	}
}

func TestLogFileDirSecurity(t *testing.T) {
	viper.Reset()
	viper.Set("log.file", "../../var/log")

	config, err := Load()
	assert.Error(t, err)
	assert.Nil(t, config)
}

func TestValidatePathDirect(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"relative path", "./notes", false},
		{"plain name", "notes", false},
		{"nested path", "notes/chapter-one", false},
		{"absolute path allowed", "/home/user/notes", false},
		{"empty path", "", true},
		{"parent traversal", "../notes", true},
		{"hidden traversal", "notes/../../other", true},
		{"semicolon", "notes;ls", true},
		{"backtick", "notes`id`", true},
		{"dollar", "notes$HOME", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePath(tt.path)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
