// Package config loads charscope configuration from defaults, the YAML config
// file, and CHARSCOPE_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. CHARSCOPE_API_BASE_URL.
const EnvPrefix = "CHARSCOPE"

// Defaults.
const (
	DefaultBaseURL            = "https://rickandmortyapi.com/api/character"
	DefaultTimeout            = 15 * time.Second
	DefaultUserAgent          = "charscope"
	DefaultSpeciesConcurrency = 4
	DefaultOutputFormat       = "table"
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "json"

	maxSpeciesConcurrency = 32
)

// Validation errors.
var (
	ErrInvalidBaseURL     = errors.New("api.base_url must be an absolute http(s) URL")
	ErrInvalidTimeout     = errors.New("api.timeout must be > 0")
	ErrInvalidConcurrency = fmt.Errorf("species.concurrency must be between 1 and %d", maxSpeciesConcurrency)
)

// Config is the full charscope configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"     yaml:"api"`
	Species SpeciesConfig `mapstructure:"species" yaml:"species"`
	Output  OutputConfig  `mapstructure:"output"  yaml:"output"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// path is the file the configuration was read from (may not exist).
	path string
}

// APIConfig controls the character-listing endpoint.
type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url"   yaml:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"    yaml:"timeout"`
	UserAgent string        `mapstructure:"user_agent" yaml:"user_agent"`
}

// SpeciesConfig controls the species catalog crawl.
type SpeciesConfig struct {
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
}

// OutputConfig controls non-interactive rendering.
type OutputConfig struct {
	DefaultFormat string `mapstructure:"default_format" yaml:"default_format"`
}

// Defaults returns a Config populated with built-in defaults.
func Defaults() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   DefaultBaseURL,
			Timeout:   DefaultTimeout,
			UserAgent: DefaultUserAgent,
		},
		Species: SpeciesConfig{Concurrency: DefaultSpeciesConcurrency},
		Output:  OutputConfig{DefaultFormat: DefaultOutputFormat},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
			File:   DefaultLogFile(),
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("api.user_agent", d.API.UserAgent)
	v.SetDefault("species.concurrency", d.Species.Concurrency)
	v.SetDefault("output.default_format", d.Output.DefaultFormat)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.file", d.Logging.File)
}

// Load reads configuration from path (or the default config file when path is
// empty). A missing file is not an error; defaults and env still apply.
func Load(path string) (*Config, error) {
	if path == "" {
		path = FilePath()
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config %s: %w", path, err)
	}
	cfg.path = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the file this configuration was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Validate checks the configuration for values the client cannot work with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidTimeout, c.API.Timeout)
	}
	return ValidateConcurrency(c.Species.Concurrency)
}

// ValidateConcurrency checks a species crawl concurrency against the allowed range.
func ValidateConcurrency(n int) error {
	if n < 1 || n > maxSpeciesConcurrency {
		return fmt.Errorf("%w: got %d", ErrInvalidConcurrency, n)
	}
	return nil
}

//nolint:gochecknoglobals // Process-wide configuration shared by all commands.
var (
	globalMu     sync.RWMutex
	globalConfig *Config
)

// SetGlobalConfig installs cfg as the process-wide configuration.
func SetGlobalConfig(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig = cfg
}

// GetGlobalConfig returns the process-wide configuration, falling back to
// defaults when nothing has been loaded yet.
func GetGlobalConfig() *Config {
	globalMu.RLock()
	cfg := globalConfig
	globalMu.RUnlock()
	if cfg != nil {
		return cfg
	}
	return Defaults()
}

// ResetGlobalConfigForTest clears the process-wide configuration.
func ResetGlobalConfigForTest() {
	SetGlobalConfig(nil)
}
