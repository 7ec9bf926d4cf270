package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Duration wraps [time.Duration] so intervals can be written as "24h" or
// "90s" strings in the TOML file.
type Duration time.Duration

// UnmarshalText implements [encoding.TextUnmarshaler] for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("%w: bad duration %q: %w", ErrInvalidConfig, string(text), err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements [encoding.TextMarshaler] for TOML encoding.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the wrapped [time.Duration].
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Resolver ResolverConfig `toml:"resolver"`
	Cookies  CookiesConfig  `toml:"cookies"`
	Client   ClientConfig   `toml:"client"`
	API      APIConfig      `toml:"api"`
	Database DatabaseConfig `toml:"database"`
}

// ResolverConfig controls URL/query resolution behavior.
type ResolverConfig struct {
	Name               string `toml:"name"`
	MaxCollectionItems int    `toml:"max_collection_items"`
	ConcurrentBatch    bool   `toml:"concurrent_batch"`
}

// CookiesConfig controls the cookie lifecycle manager.
type CookiesConfig struct {
	Path            string   `toml:"path"`
	RefreshInterval Duration `toml:"refresh_interval"`
	RefreshLead     Duration `toml:"refresh_lead"`
	AutoRefresh     bool     `toml:"auto_refresh"`
	Headless        bool     `toml:"headless"`
	NavTimeout      Duration `toml:"nav_timeout"`
	LoginTimeout    Duration `toml:"login_timeout"`
	LoginPoll       Duration `toml:"login_poll"`
}

// ClientConfig contains passthrough options for the authenticated stream client.
type ClientConfig struct {
	Timeout      Duration `toml:"timeout"`
	MaxIdleConns int      `toml:"max_idle_conns"`
	MaxRedirects int      `toml:"max_redirects"`
	LocalAddr    string   `toml:"local_addr"`
	ProxyURL     string   `toml:"proxy_url"`
}

// APIConfig contains YouTube Music API client settings.
type APIConfig struct {
	ProxyURL          string  `toml:"proxy_url"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// DatabaseConfig contains song cache database settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
