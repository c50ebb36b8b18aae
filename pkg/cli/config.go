package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment keys read by LoadConfig. Values in the process environment win
// over values from the .env file.
const (
	EnvBackground     = "PADIFY_BG"
	EnvPad            = "PADIFY_PAD"
	EnvNoCrop         = "PADIFY_NO_CROP"
	EnvDebugCrop      = "PADIFY_DEBUG_CROP"
	EnvPreview        = "PADIFY_PREVIEW"
	EnvDebug          = "PADIFY_DEBUG"
	EnvPreviewBackend = "PREVIEW_BACKEND"
)

// Config holds defaults for a padify run. Command-line flags override it.
type Config struct {
	Background     string
	Pad            *uint32
	NoCrop         bool
	DebugCrop      bool
	Preview        bool
	Debug          bool
	PreviewBackend string
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{Background: "auto"}
}

// LoadConfig reads an optional dotenv file and the process environment.
// A missing file is not an error. A blank process variable does not hide
// the file's value.
func LoadConfig(envFile string) (*Config, error) {
	fileEnv := map[string]string{}
	if envFile != "" {
		m, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", envFile, err)
		}
		if m != nil {
			fileEnv = m
		}
	}
	return configFromEnv(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok
	})
}

func configFromEnv(lookup func(string) (string, bool)) (*Config, error) {
	cfg := DefaultConfig()
	if v, ok := lookup(EnvBackground); ok && strings.TrimSpace(v) != "" {
		cfg.Background = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvPad); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvPad, v, err)
		}
		pad := uint32(n)
		cfg.Pad = &pad
	}
	bools := []struct {
		key string
		dst *bool
	}{
		{EnvNoCrop, &cfg.NoCrop},
		{EnvDebugCrop, &cfg.DebugCrop},
		{EnvPreview, &cfg.Preview},
		{EnvDebug, &cfg.Debug},
	}
	for _, b := range bools {
		v, ok := lookup(b.key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", b.key, v, err)
		}
		*b.dst = parsed
	}
	if v, ok := lookup(EnvPreviewBackend); ok {
		cfg.PreviewBackend = strings.ToLower(strings.TrimSpace(v))
	}
	return cfg, nil
}
