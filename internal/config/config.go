package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/samber/lo"
)

const (
	DefaultPort = 8000

	BannerBox   = "box"
	BannerPlain = "plain"

	FormatJSON = "json"
	FormatText = "text"
)

var (
	ErrInvalidPort            = errors.New("port out of range")
	ErrEmptyRoot              = errors.New("root directory is empty")
	ErrInvalidDefaultDocument = errors.New("default document must be a plain file name")
	ErrInvalidBannerStyle     = errors.New("unknown banner style")
	ErrInvalidLogFormat       = errors.New("unknown log format")
)

type Config struct {
	Server ServerConfig      `toml:"server"`
	Banner BannerConfig      `toml:"banner"`
	Log    LogConfig         `toml:"log"`
	MIME   map[string]string `toml:"mime"`
}

type ServerConfig struct {
	Addr            string `toml:"addr"`
	Port            int    `toml:"port"`
	Root            string `toml:"root"`
	DefaultDocument string `toml:"default_document"`
	AccessLog       bool   `toml:"access_log"`
}

// ListenAddr returns the host:port pair to bind.
func (s ServerConfig) ListenAddr() string {
	return net.JoinHostPort(s.Addr, strconv.Itoa(s.Port))
}

type BannerConfig struct {
	Style string `toml:"style"`
	Title string `toml:"title"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the configuration used when nothing else is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:      DefaultPort,
			Root:      ".",
			AccessLog: true,
		},
		Banner: BannerConfig{
			Style: BannerPlain,
		},
		Log: LogConfig{
			Level:  "info",
			Format: FormatJSON,
		},
	}
}

// Load decodes the TOML file at path on top of base.
// Keys that do not map to a field are rejected.
func Load(path string, base Config) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg := base
	if err := toml.NewDecoder(f).DisallowUnknownFields().Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate reports the first problem found in c.
func (c Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Server.Port)
	}

	if strings.TrimSpace(c.Server.Root) == "" {
		return ErrEmptyRoot
	}

	if doc := c.Server.DefaultDocument; doc != "" {
		if strings.ContainsAny(doc, `/\`) || doc == "." || doc == ".." {
			return fmt.Errorf("%w: %q", ErrInvalidDefaultDocument, doc)
		}
	}

	if !lo.Contains([]string{BannerBox, BannerPlain}, c.Banner.Style) {
		return fmt.Errorf("%w: %q", ErrInvalidBannerStyle, c.Banner.Style)
	}

	if !lo.Contains([]string{FormatJSON, FormatText}, c.Log.Format) {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Log.Format)
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}

	return nil
}

// SlogLevel parses Level ("debug", "info", "warn", "error").
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}

// ExecutableDir returns the directory holding the running binary.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}

	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	return filepath.Dir(exe), nil
}
