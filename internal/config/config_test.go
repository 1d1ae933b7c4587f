package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withConfigPath points ConfigPath at a temp file for the duration of a test
func withConfigPath(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")

	original := ConfigPath
	ConfigPath = func() string { return path }
	t.Cleanup(func() { ConfigPath = original })

	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "card", cfg.CardTag)
	assert.Equal(t, "cards-deck", cfg.DeckKey)
	assert.Equal(t, "tags", cfg.TagsKey)
	assert.Equal(t, "flashcards", cfg.TagPrefix)
	assert.Equal(t, "?", cfg.Separator)
	assert.Equal(t, []string{".md"}, cfg.Extensions)
	assert.NotEmpty(t, cfg.StateFile)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "valid config", modify: func(*Config) {}},
		{name: "empty state_file", modify: func(c *Config) { c.StateFile = "" }, wantErr: true},
		{name: "unknown log level", modify: func(c *Config) { c.LogLevel = "loud" }, wantErr: true},
		{name: "empty card_tag", modify: func(c *Config) { c.CardTag = " " }, wantErr: true},
		{name: "card_tag with hash", modify: func(c *Config) { c.CardTag = "#card" }, wantErr: true},
		{name: "empty separator", modify: func(c *Config) { c.Separator = "" }, wantErr: true},
		{name: "no extensions", modify: func(c *Config) { c.Extensions = nil }, wantErr: true},
		{name: "extension without dot", modify: func(c *Config) { c.Extensions = []string{"md"} }, wantErr: true},
		{name: "custom vocabulary", modify: func(c *Config) { c.CardTag = "flashcard"; c.Separator = "??" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	withConfigPath(t)

	testCfg := DefaultConfig()
	testCfg.TagPrefix = "sr"
	testCfg.Extensions = []string{".md", ".markdown"}
	testCfg.LogFile = filepath.Join(t.TempDir(), "migrate.log")

	require.NoError(t, testCfg.Save())

	loaded, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sr", loaded.TagPrefix)
	assert.Equal(t, []string{".md", ".markdown"}, loaded.Extensions)
	assert.Equal(t, testCfg.LogFile, loaded.LogFile)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("card_tag: flashcard\nlog_level: debug\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "flashcard", cfg.CardTag)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "cards-deck", cfg.DeckKey)
	assert.Equal(t, "?", cfg.Separator)

	opts := cfg.MigrateOptions()
	assert.Equal(t, "flashcard", opts.CardTag)
	assert.Equal(t, "flashcards", opts.TagPrefix)
}

func TestLoadNonExistentConfig(t *testing.T) {
	withConfigPath(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")

	require.NoError(t, os.WriteFile(path, []byte("extensions: [md]\n"), 0644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "invalid configuration")

	require.NoError(t, os.WriteFile(path, []byte("card_tag: [unclosed\n"), 0644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestHasExtension(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.HasExtension("notes/a.md"))
	assert.True(t, cfg.HasExtension("notes/A.MD"))
	assert.False(t, cfg.HasExtension("notes/a.org"))
	assert.False(t, cfg.HasExtension("notes/README"))
}

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("~/test")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(homeDir, "test"), got)

	got, err = expandPath("~")
	require.NoError(t, err)
	assert.Equal(t, homeDir, got)

	got, err = expandPath("")
	require.NoError(t, err)
	assert.Empty(t, got)
}
