package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	clearPadifyEnv(t)
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, "auto", cfg.Background)
	assert.Nil(t, cfg.Pad)
}

func TestLoadConfigFromFile(t *testing.T) {
	clearPadifyEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	content := "PADIFY_BG=#112233\nPADIFY_PAD=40\nPADIFY_NO_CROP=true\nPADIFY_DEBUG_CROP=1\nPREVIEW_BACKEND=Kitty\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "#112233", cfg.Background)
	require.NotNil(t, cfg.Pad)
	assert.Equal(t, uint32(40), *cfg.Pad)
	assert.True(t, cfg.NoCrop)
	assert.True(t, cfg.DebugCrop)
	assert.False(t, cfg.Preview)
	assert.Equal(t, "kitty", cfg.PreviewBackend)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	clearPadifyEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PADIFY_BG=white\nPADIFY_PAD=40\n"), 0o644))
	t.Setenv(EnvBackground, "transparent")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "transparent", cfg.Background)
	require.NotNil(t, cfg.Pad)
	assert.Equal(t, uint32(40), *cfg.Pad)
}

func TestLoadConfigBlankEnvFallsBackToFile(t *testing.T) {
	clearPadifyEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PADIFY_PAD=40\nPADIFY_BG=black\n"), 0o644))
	t.Setenv(EnvPad, "")
	t.Setenv(EnvBackground, "   ")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Pad)
	assert.Equal(t, uint32(40), *cfg.Pad)
	assert.Equal(t, "black", cfg.Background)
}

func TestConfigFromEnvInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"negative pad", map[string]string{EnvPad: "-1"}},
		{"pad overflow", map[string]string{EnvPad: "4294967296"}},
		{"bad bool", map[string]string{EnvNoCrop: "maybe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := configFromEnv(func(k string) (string, bool) {
				v, ok := tt.env[k]
				return v, ok
			})
			assert.Error(t, err)
		})
	}
}
