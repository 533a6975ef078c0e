// Package config loads postserve configuration from a YAML file, optional
// .env files and a few environment overrides.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/postserve/internal/foundation/errors"
)

// DefaultPath is the config file used when none is given.
const DefaultPath = "config.yaml"

// Environment variables applied after the file is read.
const (
	EnvRemoteURL  = "REMOTE_MARKDOWN_PATH"
	EnvContentDir = "POSTSERVE_CONTENT_DIR"
	EnvAddr       = "POSTSERVE_ADDR"
)

// envFiles are loaded in order; variables already set are never replaced.
var envFiles = []string{".env", ".env.local"}

// Config is the full postserve configuration.
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Local    LocalConfig    `yaml:"local"`
	Remote   RemoteConfig   `yaml:"remote"`
	Manifest ManifestConfig `yaml:"manifest"`
	Resolver ResolverConfig `yaml:"resolver"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SiteConfig describes the blog itself; used by the page and the feed.
type SiteConfig struct {
	Title       string `yaml:"title"`
	BaseURL     string `yaml:"base_url"`
	Description string `yaml:"description"`
	// Language is a BCP 47 tag.
	Language string `yaml:"language"`
}

// LocalConfig points at the bundled content directory.
type LocalConfig struct {
	Directory string `yaml:"directory"`
}

// RemoteConfig points at the remote content host. An empty BaseURL disables it.
type RemoteConfig struct {
	BaseURL string `yaml:"base_url"`
}

type ManifestConfig struct {
	RequireUpdated bool `yaml:"require_updated"`
}

// ResolverConfig controls how a requested slug is matched to a post.
type ResolverConfig struct {
	MatchContentRef bool   `yaml:"match_content_ref"`
	Extension       string `yaml:"extension"`
}

type MarkdownConfig struct {
	UnsafeHTML bool `yaml:"unsafe_html"`
	HeadingIDs bool `yaml:"heading_ids"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr      string `yaml:"addr"`
	StaticDir string `yaml:"static_dir"`
	Metrics   bool   `yaml:"metrics"`
}

type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Default returns the configuration used for anything the file leaves out.
func Default() *Config {
	return &Config{
		Site: SiteConfig{
			Title:    "Blog",
			BaseURL:  "http://localhost:8000",
			Language: "en",
		},
		Local:    LocalConfig{Directory: "./raw"},
		Resolver: ResolverConfig{MatchContentRef: true, Extension: ".md"},
		Markdown: MarkdownConfig{HeadingIDs: true},
		Server: ServerConfig{
			Addr:      ":8000",
			StaticDir: "./static",
			Metrics:   true,
		},
		Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
	}
}

// Load reads configPath on top of the defaults. A missing file is not an
// error: defaults and environment overrides still apply.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFiles(envFiles...); err != nil {
		return nil, err
	}

	cfg := Default()
	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults and environment only
	case err != nil:
		return nil, derrors.ConfigError("failed to read config file").
			WithCause(err).
			WithContext("path", configPath).
			Build()
	default:
		// Expand environment variables in the YAML content
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
			return nil, derrors.ConfigError("failed to parse config file").
				WithCause(err).
				WithContext("path", configPath).
				Build()
		}
	}

	cfg.applyEnv()
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnvFiles loads each file that exists. godotenv never overrides
// variables that are already set.
func loadEnvFiles(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return derrors.ConfigError("failed to load env file").
				WithCause(err).
				WithContext("path", path).
				Build()
		}
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvRemoteURL); v != "" {
		c.Remote.BaseURL = v
	}
	if v := os.Getenv(EnvContentDir); v != "" {
		c.Local.Directory = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
}

func (c *Config) normalize() {
	c.Remote.BaseURL = strings.TrimSpace(c.Remote.BaseURL)
	c.Local.Directory = strings.TrimSpace(c.Local.Directory)
	c.Site.Language = strings.TrimSpace(c.Site.Language)
	if c.Resolver.Extension != "" && !strings.HasPrefix(c.Resolver.Extension, ".") {
		c.Resolver.Extension = "." + c.Resolver.Extension
	}
	c.Logging.Level = NormalizeLogLevel(string(c.Logging.Level))
	c.Logging.Format = NormalizeLogFormat(string(c.Logging.Format))
	if tag, err := c.LanguageTag(); err == nil && c.Site.Language != "" {
		c.Site.Language = tag.String()
	}
}
