package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	BaseUrl           string
	GrainSize         float64
	Overscan          int
	PollInterval      time.Duration
	FrameInterval     time.Duration
	HttpTimeout       time.Duration
	SnapshotDirectory string
	LogFile           string
	LogLevel          string
	Confirmations     bool
}

// config key -> flag name
var configFlags = map[string]string{
	"base_url":       "base-url",
	"grain_size":     "grain-size",
	"overscan":       "overscan",
	"poll_interval":  "poll-interval",
	"frame_interval": "frame-interval",
	"http_timeout":   "http-timeout",
	"snapshot_dir":   "snapshot-dir",
	"log_file":       "log-file",
	"log_level":      "log-level",
	"confirmations":  "confirmations",
}

func defaultRcPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".grainviewrc")
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("base_url", defaultBaseUrl)
	v.SetDefault("grain_size", defaultGrainSize)
	v.SetDefault("overscan", defaultOverscan)
	v.SetDefault("poll_interval", defaultPollInterval)
	v.SetDefault("frame_interval", defaultFrameInterval)
	v.SetDefault("http_timeout", defaultHttpTimeout)
	v.SetDefault("snapshot_dir", "")
	v.SetDefault("log_file", "~/.grainview.log")
	v.SetDefault("log_level", "info")
	v.SetDefault("confirmations", true)

	v.SetEnvPrefix("GRAINVIEW")
	v.AutomaticEnv()
	return v
}

func addConfigFlags(flags *pflag.FlagSet) {
	flags.String("config", defaultRcPath(), "config file (key = value)")
	flags.String("base-url", defaultBaseUrl, "canvas service base URL")
	flags.Float64("grain-size", defaultGrainSize, "world units per grain")
	flags.Int("overscan", defaultOverscan, "grains fetched beyond each viewport edge")
	flags.Duration("poll-interval", defaultPollInterval, "how often the visible region is checked for a refetch")
	flags.Duration("frame-interval", defaultFrameInterval, "how often results are applied and the view redrawn")
	flags.Duration("http-timeout", defaultHttpTimeout, "timeout for a single canvas request")
	flags.String("snapshot-dir", "", "directory for PNG snapshots")
	flags.String("log-file", "~/.grainview.log", "log file, empty to disable logging")
	flags.String("log-level", "info", "log level")
	flags.Bool("confirmations", true, "ask before quitting")
}

func bindConfigFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for key, name := range configFlags {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// loadConfig merges flags, GRAINVIEW_* environment variables, the rc file
// and defaults, in that order of precedence. A missing rc file is not an
// error.
func loadConfig(v *viper.Viper, rcPath string) (*Config, error) {
	if rcPath != "" {
		if _, err := os.Stat(rcPath); err == nil {
			v.SetConfigFile(rcPath)
			v.SetConfigType("properties")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read %s: %w", rcPath, err)
			}
		}
	}

	config := &Config{
		BaseUrl:           v.GetString("base_url"),
		GrainSize:         v.GetFloat64("grain_size"),
		Overscan:          v.GetInt("overscan"),
		PollInterval:      v.GetDuration("poll_interval"),
		FrameInterval:     v.GetDuration("frame_interval"),
		HttpTimeout:       v.GetDuration("http_timeout"),
		SnapshotDirectory: expandPath(v.GetString("snapshot_dir")),
		LogFile:           expandPath(v.GetString("log_file")),
		LogLevel:          v.GetString("log_level"),
		Confirmations:     v.GetBool("confirmations"),
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func expandPath(value string) string {
	if value == "" {
		return value
	}
	if strings.HasPrefix(value, "~") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return value
		}
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

func (c *Config) Validate() error {
	var errs []error
	u, err := url.Parse(c.BaseUrl)
	if err != nil {
		errs = append(errs, fmt.Errorf("base_url: %w", err))
	} else if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		errs = append(errs, fmt.Errorf("base_url: %q is not an http(s) url", c.BaseUrl))
	}
	if c.GrainSize <= 0 {
		errs = append(errs, fmt.Errorf("grain_size must be positive, got %v", c.GrainSize))
	}
	if c.Overscan < 0 {
		errs = append(errs, fmt.Errorf("overscan must not be negative, got %d", c.Overscan))
	}
	if c.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("poll_interval must be positive, got %v", c.PollInterval))
	}
	if c.FrameInterval <= 0 {
		errs = append(errs, fmt.Errorf("frame_interval must be positive, got %v", c.FrameInterval))
	}
	if c.HttpTimeout <= 0 {
		errs = append(errs, fmt.Errorf("http_timeout must be positive, got %v", c.HttpTimeout))
	}
	return errors.Join(errs...)
}

func (c *Config) SnapshotPath(filename string) string {
	if c.SnapshotDirectory == "" {
		return filename
	}
	os.MkdirAll(c.SnapshotDirectory, 0755)
	return filepath.Join(c.SnapshotDirectory, filename)
}
