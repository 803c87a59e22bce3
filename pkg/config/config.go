package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Source struct {
		Type        string        `yaml:"type"`
		CSVPath     string        `yaml:"csv_path"`
		LoadTimeout time.Duration `yaml:"load_timeout"`
	} `yaml:"source"`
	ClickHouse struct {
		Host        string        `yaml:"host"`
		Port        int           `yaml:"port"`
		Database    string        `yaml:"database"`
		Table       string        `yaml:"table"`
		User        string        `yaml:"user"`
		Password    string        `yaml:"password"`
		DialTimeout time.Duration `yaml:"dial_timeout"`
		ReadTimeout time.Duration `yaml:"read_timeout"`
	} `yaml:"clickhouse"`
	Dashboard struct {
		// Assumed fraction of guests who never leave a review. Review
		// counts undercount real stays by 1/(1-share).
		NonReviewingGuestShare float64 `yaml:"non_reviewing_guest_share"`
		MapZoom                float64 `yaml:"map_zoom"`
		HistogramBinDays       int     `yaml:"histogram_bin_days"`
		Colors                 struct {
			EntireHome  string `yaml:"entire_home"`
			PrivateRoom string `yaml:"private_room"`
			SharedRoom  string `yaml:"shared_room"`
		} `yaml:"colors"`
	} `yaml:"dashboard"`
	Cache struct {
		SnapshotTTL time.Duration `yaml:"snapshot_ttl"`
		Redis       struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Events struct {
		Enabled      bool          `yaml:"enabled"`
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic"`
		RequiredAcks int           `yaml:"required_acks"`
		Compression  string        `yaml:"compression"`
		MaxAttempts  int           `yaml:"max_attempts"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"events"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("SOURCE"); v != "" {
		c.Source.Type = v
	}
	if v := os.Getenv("LISTINGS_CSV"); v != "" {
		c.Source.CSVPath = v
	}
	if v := os.Getenv("CLICKHOUSE_HOST"); v != "" {
		c.ClickHouse.Host = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Events.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Events.Topic = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Source.LoadTimeout == 0 {
		c.Source.LoadTimeout = 30 * time.Second
	}
	if c.Dashboard.NonReviewingGuestShare == 0 {
		c.Dashboard.NonReviewingGuestShare = 0.65
	}
	if c.Dashboard.MapZoom == 0 {
		c.Dashboard.MapZoom = 13
	}
	if c.Dashboard.HistogramBinDays == 0 {
		c.Dashboard.HistogramBinDays = 30
	}
	if c.Dashboard.Colors.EntireHome == "" {
		c.Dashboard.Colors.EntireHome = "red"
	}
	if c.Dashboard.Colors.PrivateRoom == "" {
		c.Dashboard.Colors.PrivateRoom = "green"
	}
	if c.Dashboard.Colors.SharedRoom == "" {
		c.Dashboard.Colors.SharedRoom = "blue"
	}
	if c.Cache.SnapshotTTL == 0 {
		c.Cache.SnapshotTTL = time.Minute
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Source.Type != "csv" && c.Source.Type != "clickhouse" {
		return fmt.Errorf("source.type must be 'csv' or 'clickhouse', got '%s'", c.Source.Type)
	}
	if c.Source.Type == "csv" && c.Source.CSVPath == "" {
		return fmt.Errorf("source.csv_path is required for csv source")
	}
	if c.Source.Type == "clickhouse" && c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required for clickhouse source")
	}
	if s := c.Dashboard.NonReviewingGuestShare; s < 0 || s >= 1 {
		return fmt.Errorf("dashboard.non_reviewing_guest_share must be in [0, 1), got %v", s)
	}
	if c.Dashboard.HistogramBinDays < 1 || c.Dashboard.HistogramBinDays > 365 {
		return fmt.Errorf("dashboard.histogram_bin_days must be in [1, 365], got %d", c.Dashboard.HistogramBinDays)
	}
	if c.Events.Enabled {
		if len(c.Events.Brokers) == 0 {
			return fmt.Errorf("events.brokers cannot be empty when events are enabled")
		}
		if c.Events.Topic == "" {
			return fmt.Errorf("events.topic is required when events are enabled")
		}
	}
	return nil
}
