package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lestrrat-go/strftime"
	yaml "gopkg.in/yaml.v3"

	"github.com/kerbaras/tracker/pkg/data"
	"github.com/kerbaras/tracker/pkg/sources"
)

const (
	DefaultTimeout    = 10 * time.Second
	DefaultDateFormat = "%m/%d/%Y"
	DefaultLinkPrefix = "/blog-posts/"
)

type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type StorageConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

type BlogConfig struct {
	LinkPrefix string `yaml:"link_prefix"`
}

type Config struct {
	API        APIConfig     `yaml:"api"`
	Storage    StorageConfig `yaml:"storage"`
	DateFormat string        `yaml:"date_format"`
	LogFile    string        `yaml:"log_file"`
	Blog       BlogConfig    `yaml:"blog"`

	dateFormatter *strftime.Strftime
}

func Default() *Config {
	c := &Config{}
	if err := c.fill(); err != nil {
		panic(err)
	}
	return c
}

// Load reads the YAML file at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	c := &Config{}
	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(raw, c); err != nil {
			return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
		}
	}

	if err := c.fill(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return c, nil
}

func (c *Config) fill() error {
	if c.API.BaseURL == "" {
		c.API.BaseURL = sources.DefaultJikanURL
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = DefaultTimeout
	}

	if c.Storage.Driver == "" {
		c.Storage.Driver = data.DriverDuckDB
	}
	if c.Storage.Driver != data.DriverDuckDB && c.Storage.Driver != data.DriverSQLite {
		return fmt.Errorf("storage.driver must be %q or %q, got %q", data.DriverDuckDB, data.DriverSQLite, c.Storage.Driver)
	}
	if c.Storage.Path == "" {
		c.Storage.Path = filepath.Join(dataDir(), StorageName)
	}
	c.Storage.Path = expandHome(c.Storage.Path)

	if c.LogFile == "" {
		c.LogFile = filepath.Join(dataDir(), LogName)
	}
	c.LogFile = expandHome(c.LogFile)

	if c.DateFormat == "" {
		c.DateFormat = DefaultDateFormat
	}
	f, err := strftime.New(c.DateFormat)
	if err != nil {
		return fmt.Errorf("date_format: %w", err)
	}
	c.dateFormatter = f

	if c.Blog.LinkPrefix == "" {
		c.Blog.LinkPrefix = DefaultLinkPrefix
	}
	return nil
}

// FormatDate renders t with the configured date_format.
func (c *Config) FormatDate(t time.Time) string {
	return c.dateFormatter.FormatString(t)
}

func (c *Config) Dump() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
