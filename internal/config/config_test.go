package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setup       func()
		expectError bool
		check       func(t *testing.T, config *Config)
	}{
		{
			name: "successful load with defaults",
			setup: func() {
				viper.Reset()
			},
			expectError: false,
			check: func(t *testing.T, config *Config) {
				assert.Equal(t, "./notes", config.Notes.Dir)
				assert.Equal(t, []string{"README.md", "*.draft.md"}, config.Notes.ExcludePatterns)
				assert.Equal(t, "auto", config.Render.Style)
				assert.Equal(t, 0, config.Render.Width)
				assert.False(t, config.Render.Raw)
				assert.Equal(t, 1, config.Game.Low)
				assert.Equal(t, 100, config.Game.High)
				assert.Equal(t, "normal", config.Game.Difficulty)
				assert.Equal(t, "info", config.Log.Level)
				assert.Equal(t, "text", config.Log.Format)
			},
		},
		{
			name: "successful load with custom notes dir",
			setup: func() {
				viper.Reset()
				viper.Set("notes.dir", "./chapters")
				viper.Set("notes.exclude_patterns", []string{"*.tmp.md"})
			},
			expectError: false,
			check: func(t *testing.T, config *Config) {
				assert.Equal(t, "./chapters", config.Notes.Dir)
				assert.Equal(t, []string{"*.tmp.md"}, config.Notes.ExcludePatterns)
			},
		},
		{
			name: "explicitly empty notes dir means bundled only",
			setup: func() {
				viper.Reset()
				viper.Set("notes.dir", "")
			},
			expectError: false,
			check: func(t *testing.T, config *Config) {
				assert.Empty(t, config.Notes.Dir)
			},
		},
		{
			name: "custom game range",
			setup: func() {
				viper.Reset()
				viper.Set("game.low", 10)
				viper.Set("game.high", 50)
				viper.Set("game.difficulty", "hard")
			},
			expectError: false,
			check: func(t *testing.T, config *Config) {
				assert.Equal(t, 10, config.Game.Low)
				assert.Equal(t, 50, config.Game.High)
				assert.Equal(t, "hard", config.Game.Difficulty)
			},
		},
		{
			name: "inverted game range rejected",
			setup: func() {
				viper.Reset()
				viper.Set("game.low", 100)
				viper.Set("game.high", 1)
			},
			expectError: true,
		},
		{
			name: "equal game bounds rejected",
			setup: func() {
				viper.Reset()
				viper.Set("game.low", 50)
				viper.Set("game.high", 50)
			},
			expectError: true,
		},
		{
			name: "unknown style rejected",
			setup: func() {
				viper.Reset()
				viper.Set("render.style", "solarized")
			},
			expectError: true,
		},
		{
			name: "negative width rejected",
			setup: func() {
				viper.Reset()
				viper.Set("render.width", -10)
			},
			expectError: true,
		},
		{
			name: "unknown difficulty rejected",
			setup: func() {
				viper.Reset()
				viper.Set("game.difficulty", "nightmare")
			},
			expectError: true,
		},
		{
			name: "unknown log format rejected",
			setup: func() {
				viper.Reset()
				viper.Set("log.format", "xml")
			},
			expectError: true,
		},
		{
			name: "notes dir with traversal rejected",
			setup: func() {
				viper.Reset()
				viper.Set("notes.dir", "../../etc")
			},
			expectError: true,
		},
		{
			name: "invalid viper config",
			setup: func() {
				viper.Reset()
				// Set invalid configuration that would cause unmarshal to fail
				viper.Set("game.low", "not_a_number")
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			config, err := Load()

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, config)
			} else {
				require.NoError(t, err)
				require.NotNil(t, config)
				if tt.check != nil {
					tt.check(t, config)
				}
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	viper.Reset()

	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, ".primer.yml")
	content := `notes:
  dir: "./chapters"
  exclude_patterns:
    - "README.md"
render:
  style: dark
  width: 100
game:
  low: 1
  high: 500
  difficulty: easy
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	viper.SetConfigFile(configFile)
	require.NoError(t, viper.ReadInConfig())

	config, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "./chapters", config.Notes.Dir)
	assert.Equal(t, []string{"README.md"}, config.Notes.ExcludePatterns)
	assert.Equal(t, "dark", config.Render.Style)
	assert.Equal(t, 100, config.Render.Width)
	assert.Equal(t, 1, config.Game.Low)
	assert.Equal(t, 500, config.Game.High)
	assert.Equal(t, "easy", config.Game.Difficulty)
	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
}

func TestValidateConfigWithDetails(t *testing.T) {
	t.Run("valid config has no issues", func(t *testing.T) {
		config := &Config{
			Notes:  NotesConfig{Dir: t.TempDir(), ExcludePatterns: []string{"README.md"}},
			Render: RenderConfig{Style: "auto", Width: 80},
			Game:   GameConfig{Low: 1, High: 100, Difficulty: "normal"},
			Log:    LogConfig{Level: "info", Format: "text"},
		}

		result := ValidateConfigWithDetails(config)
		assert.True(t, result.Valid)
		assert.False(t, result.HasErrors())
	})

	t.Run("missing notes dir warns", func(t *testing.T) {
		config := &Config{
			Notes:  NotesConfig{Dir: "./definitely-not-here", ExcludePatterns: []string{"README.md"}},
			Render: RenderConfig{Style: "auto"},
			Game:   GameConfig{Low: 1, High: 100, Difficulty: "normal"},
			Log:    LogConfig{Level: "info", Format: "text"},
		}

		result := ValidateConfigWithDetails(config)
		assert.True(t, result.Valid)
		assert.True(t, result.HasWarnings())

		found := false
		for _, w := range result.Warnings {
			if w.Field == "notes.dir" && strings.Contains(w.Message, "does not exist") {
				found = true
			}
		}
		assert.True(t, found, "expected a missing-directory warning")
	})

	t.Run("inverted game range is an error", func(t *testing.T) {
		config := &Config{
			Notes:  NotesConfig{Dir: t.TempDir(), ExcludePatterns: []string{"README.md"}},
			Render: RenderConfig{Style: "auto"},
			Game:   GameConfig{Low: 100, High: 1, Difficulty: "normal"},
			Log:    LogConfig{Level: "info", Format: "text"},
		}

		result := ValidateConfigWithDetails(config)
		assert.False(t, result.Valid)
		assert.True(t, result.HasErrors())
	})

	t.Run("tiny game span warns", func(t *testing.T) {
		config := &Config{
			Notes:  NotesConfig{Dir: t.TempDir(), ExcludePatterns: []string{"README.md"}},
			Render: RenderConfig{Style: "auto"},
			Game:   GameConfig{Low: 1, High: 5, Difficulty: "normal"},
			Log:    LogConfig{Level: "info", Format: "text"},
		}

		result := ValidateConfigWithDetails(config)
		assert.True(t, result.Valid)
		assert.True(t, result.HasWarnings())
	})

	t.Run("unknown style is an error with suggestions", func(t *testing.T) {
		config := &Config{
			Notes:  NotesConfig{Dir: t.TempDir(), ExcludePatterns: []string{"README.md"}},
			Render: RenderConfig{Style: "solarized"},
			Game:   GameConfig{Low: 1, High: 100, Difficulty: "normal"},
			Log:    LogConfig{Level: "info", Format: "text"},
		}

		result := ValidateConfigWithDetails(config)
		assert.False(t, result.Valid)
		require.NotEmpty(t, result.Errors)
		assert.NotEmpty(t, result.Errors[0].Suggestions)

		out := result.String()
		assert.Contains(t, out, "render.style")
		assert.Contains(t, out, "💡")
	})

	t.Run("narrow width warns", func(t *testing.T) {
		config := &Config{
			Notes:  NotesConfig{Dir: t.TempDir(), ExcludePatterns: []string{"README.md"}},
			Render: RenderConfig{Style: "auto", Width: 20},
			Game:   GameConfig{Low: 1, High: 100, Difficulty: "normal"},
			Log:    LogConfig{Level: "info", Format: "text"},
		}

		result := ValidateConfigWithDetails(config)
		assert.True(t, result.Valid)
		assert.True(t, result.HasWarnings())
	})
}

func TestWizardRun(t *testing.T) {
	// Accept every default by sending blank lines; decline the custom
	// pattern loop and the log file prompt with explicit answers.
	answers := strings.Join([]string{
		"",  // notes dir -> ./notes
		"",  // exclude README.md -> y
		"",  // exclude *.draft.md -> y
		"n", // add custom exclusion -> no
		"",  // style -> auto
		"",  // width -> 0
		"",  // raw -> n
		"",  // low -> 1
		"",  // high -> 100
		"",  // difficulty -> normal
		"",  // level -> info
		"",  // format -> text
		"n", // log file -> no
	}, "\n") + "\n"

	wizard := NewConfigWizardWithReader(strings.NewReader(answers))
	config, err := wizard.Run()
	require.NoError(t, err)

	assert.Equal(t, "./notes", config.Notes.Dir)
	assert.Equal(t, []string{"README.md", "*.draft.md"}, config.Notes.ExcludePatterns)
	assert.Equal(t, "auto", config.Render.Style)
	assert.Equal(t, 1, config.Game.Low)
	assert.Equal(t, 100, config.Game.High)
	assert.Equal(t, "normal", config.Game.Difficulty)
	assert.Equal(t, "info", config.Log.Level)
	assert.Empty(t, config.Log.File)
}

func TestWizardYAMLRoundTrip(t *testing.T) {
	wizard := NewConfigWizardWithReader(strings.NewReader(""))
	wizard.config = &Config{
		Notes:  NotesConfig{Dir: "./notes", ExcludePatterns: []string{"README.md"}},
		Render: RenderConfig{Style: "dark", Width: 100, Raw: false},
		Game:   GameConfig{Low: 1, High: 100, Difficulty: "normal"},
		Log:    LogConfig{Level: "info", Format: "text"},
	}

	content := wizard.generateYAMLConfig()

	viper.Reset()
	viper.SetConfigType("yaml")
	require.NoError(t, viper.ReadConfig(strings.NewReader(content)))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, wizard.config.Notes.Dir, loaded.Notes.Dir)
	assert.Equal(t, wizard.config.Render.Style, loaded.Render.Style)
	assert.Equal(t, wizard.config.Game.High, loaded.Game.High)
}
