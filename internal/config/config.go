// Package config loads settings for the report CLI and HTTP service.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	reportpdf "github.com/porticus-lab/go-report-pdf"
	"github.com/porticus-lab/go-report-pdf/capture"
)

// EnvPrefix prefixes environment overrides, e.g. VINSCAN_CHROME_NO_SANDBOX.
const EnvPrefix = "VINSCAN"

type Config struct {
	ProductName string       `mapstructure:"product_name"`
	Attribution string       `mapstructure:"attribution"`
	FilePrefix  string       `mapstructure:"file_prefix"`
	OutputDir   string       `mapstructure:"output_dir"`
	Listen      string       `mapstructure:"listen"`
	LogLevel    string       `mapstructure:"log_level"`
	Chrome      ChromeConfig `mapstructure:"chrome"`
}

type ChromeConfig struct {
	Path         string        `mapstructure:"path"`
	NoSandbox    bool          `mapstructure:"no_sandbox"`
	AutoDownload bool          `mapstructure:"auto_download"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("product_name", "VINScan Pro")
	v.SetDefault("attribution", "Generated by VINScan Pro Analytics")
	v.SetDefault("file_prefix", "VINScan")
	v.SetDefault("output_dir", ".")
	v.SetDefault("listen", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("chrome.path", "")
	v.SetDefault("chrome.no_sandbox", false)
	v.SetDefault("chrome.auto_download", false)
	v.SetDefault("chrome.timeout", 30*time.Second)
}

// Load reads the config file at path, if any, and applies environment
// overrides on top of the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Level parses LogLevel.
func (c *Config) Level() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// ReportOptions converts the branding settings into generator options.
func (c *Config) ReportOptions() []reportpdf.Option {
	return []reportpdf.Option{
		reportpdf.WithProductName(c.ProductName),
		reportpdf.WithAttribution(c.Attribution),
		reportpdf.WithFilePrefix(c.FilePrefix),
	}
}

// CaptureOptions converts the chrome settings into capturer options.
func (c *Config) CaptureOptions() []capture.Option {
	opts := []capture.Option{capture.WithTimeout(c.Chrome.Timeout)}
	if c.Chrome.Path != "" {
		opts = append(opts, capture.WithChromePath(c.Chrome.Path))
	}
	if c.Chrome.NoSandbox {
		opts = append(opts, capture.WithNoSandbox())
	}
	if c.Chrome.AutoDownload {
		opts = append(opts, capture.WithAutoDownload())
	}
	return opts
}
