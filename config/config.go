package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding configuration keys,
// e.g. SCREENPLAY_BROWSER_TYPE for browser.type.
const EnvPrefix = "SCREENPLAY"

// BrowserTypes lists the supported Playwright browser engines.
var BrowserTypes = []string{"chromium", "firefox", "webkit"}

// Config is the configuration of browser tests and reports.
type Config struct {
	Browser      BrowserConfig      `mapstructure:"browser" yaml:"browser"`
	Capture      CaptureConfig      `mapstructure:"capture" yaml:"capture"`
	SessionState SessionStateConfig `mapstructure:"session_state" yaml:"session_state"`
	Report       ReportConfig       `mapstructure:"report" yaml:"report"`
	Log          LogConfig          `mapstructure:"log" yaml:"log"`
	TodoMVC      TodoMVCConfig      `mapstructure:"todomvc" yaml:"todomvc"`
}

type BrowserConfig struct {
	// Type is one of chromium, firefox or webkit.
	Type     string         `mapstructure:"type" yaml:"type"`
	Headless bool           `mapstructure:"headless" yaml:"headless"`
	SlowMo   time.Duration  `mapstructure:"slow_mo" yaml:"slow_mo"`
	Viewport ViewportConfig `mapstructure:"viewport" yaml:"viewport"`
	// DefaultTimeout applies to all page actions, 0 keeps the Playwright default.
	DefaultTimeout time.Duration `mapstructure:"default_timeout" yaml:"default_timeout"`
	// BaseURL resolves relative URLs of navigation and API requests.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

type ViewportConfig struct {
	Width  int `mapstructure:"width" yaml:"width"`
	Height int `mapstructure:"height" yaml:"height"`
}

type CaptureConfig struct {
	// Capacity bounds the captured network requests and console messages per browser context.
	Capacity uint64 `mapstructure:"capacity" yaml:"capacity"`
}

type SessionStateConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

type ReportConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Dir     string `mapstructure:"dir" yaml:"dir"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

type TodoMVCConfig struct {
	URL string `mapstructure:"url" yaml:"url"`
}

// SetDefaults initializes default values for all configuration keys.
func SetDefaults(v *viper.Viper) {
	// -- Browser --
	v.SetDefault("browser.type", "chromium")
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.slow_mo", "0s")
	v.SetDefault("browser.default_timeout", "0s")
	v.SetDefault("browser.viewport.width", 1280)
	v.SetDefault("browser.viewport.height", 720)
	v.SetDefault("browser.base_url", "")

	// -- Capture --
	v.SetDefault("capture.capacity", 1000)

	// -- Session state --
	v.SetDefault("session_state.dir", ".screenplay/session-state")

	// -- Report --
	v.SetDefault("report.enabled", true)
	v.SetDefault("report.dir", ".screenplay/reports")

	// -- Log --
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// -- TodoMVC --
	v.SetDefault("todomvc.url", "https://todomvc.com/examples/react/dist/")
}

// NewDefaultConfig creates a configuration populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// NewViper creates a viper instance with defaults, the optional screenplay.yaml and environment overrides.
// The config file is searched in the working directory and in $SCREENPLAY_CONFIG.
func NewViper() (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetConfigName("screenplay")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir := os.Getenv(EnvPrefix + "_CONFIG"); dir != "" {
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	bindEnv(v)
	return v, nil
}

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// HEADLESS=false is the established switch to watch tests in a browser window
	_ = v.BindEnv("browser.headless", EnvPrefix+"_BROWSER_HEADLESS", "HEADLESS")
}

// Load reads the configuration from all sources.
func Load() (*Config, error) {
	v, err := NewViper()
	if err != nil {
		return nil, err
	}
	return NewConfigFromViper(v)
}

// NewConfigFromViper creates a validated configuration from a viper instance.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	if !slices.Contains(BrowserTypes, c.Browser.Type) {
		return fmt.Errorf("browser.type must be one of %s, got %q", strings.Join(BrowserTypes, ", "), c.Browser.Type)
	}
	if c.Browser.Viewport.Width < 0 || c.Browser.Viewport.Height < 0 {
		return fmt.Errorf("browser.viewport must not be negative")
	}
	if c.Browser.SlowMo < 0 || c.Browser.DefaultTimeout < 0 {
		return fmt.Errorf("browser.slow_mo and browser.default_timeout must not be negative")
	}
	if c.Capture.Capacity == 0 {
		return fmt.Errorf("capture.capacity must be a positive integer")
	}
	if c.SessionState.Dir == "" {
		return fmt.Errorf("session_state.dir is required")
	}
	if c.Report.Enabled && c.Report.Dir == "" {
		return fmt.Errorf("report.dir is required when reports are enabled")
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}
