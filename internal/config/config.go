package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"

	"reelstore/internal/models"
)

const (
	defaultOrderExpiry   = 30 * time.Minute
	defaultSweepInterval = 30 * time.Minute
	defaultCurrency      = "INR"
)

// Gateway verification modes.
const (
	GatewaySignature = "signature"
	GatewayStatus    = "status"
)

type Config struct {
	Server struct {
		Address string `yaml:"address"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"server"`

	Gateway struct {
		Mode      string `yaml:"mode"`
		BaseURL   string `yaml:"base_url"`
		KeyID     string `yaml:"key_id"`
		KeySecret string `yaml:"key_secret"`
	} `yaml:"gateway"`

	Orders struct {
		ExpiryMinutes int `yaml:"expiry_minutes"`
		SweepMinutes  int `yaml:"sweep_minutes"`
	} `yaml:"orders"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Content struct {
		Dir string `yaml:"dir"`
		S3  struct {
			AccessKey string `yaml:"access_key"`
			SecretKey string `yaml:"secret_key"`
			Region    string `yaml:"region"`
			Endpoint  string `yaml:"endpoint"`
			Bucket    string `yaml:"bucket"`
			Prefix    string `yaml:"prefix"`
		} `yaml:"s3"`
	} `yaml:"content"`

	SMTP struct {
		Host       string `yaml:"host"`
		Port       int    `yaml:"port"`
		Username   string `yaml:"username"`
		Password   string `yaml:"password"`
		From       string `yaml:"from"`
		AdminEmail string `yaml:"admin_email"`
	} `yaml:"smtp"`

	Admin struct {
		Key string `yaml:"key"`
	} `yaml:"admin"`

	Currency     string `yaml:"currency"`
	SnapshotPath string `yaml:"snapshot_path"`

	Packages []models.PackageConfig `yaml:"packages"`
}

// Load reads the YAML config file and applies environment overrides for the
// secrets that should not live in the file.
func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if v := os.Getenv("GATEWAY_KEY_ID"); v != "" {
		cfg.Gateway.KeyID = v
	}
	if v := os.Getenv("GATEWAY_KEY_SECRET"); v != "" {
		cfg.Gateway.KeySecret = v
	}
	if v := os.Getenv("ADMIN_KEY"); v != "" {
		cfg.Admin.Key = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.SMTP.Password = v
	}
	if v := os.Getenv("S3_ACCESS_KEY"); v != "" {
		cfg.Content.S3.AccessKey = v
	}
	if v := os.Getenv("S3_SECRET_KEY"); v != "" {
		cfg.Content.S3.SecretKey = v
	}
	if v := os.Getenv("ORDER_EXPIRY_MINUTES"); v != "" {
		mins, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse ORDER_EXPIRY_MINUTES: %w", err)
		}
		cfg.Orders.ExpiryMinutes = mins
	}

	if cfg.Gateway.Mode == "" {
		cfg.Gateway.Mode = GatewaySignature
	}
	if cfg.Gateway.Mode != GatewaySignature && cfg.Gateway.Mode != GatewayStatus {
		return Config{}, fmt.Errorf("gateway.mode must be %q or %q, got %q", GatewaySignature, GatewayStatus, cfg.Gateway.Mode)
	}
	if cfg.Gateway.KeyID == "" || cfg.Gateway.KeySecret == "" {
		return Config{}, fmt.Errorf("gateway key_id/key_secret are required")
	}
	if cfg.Currency == "" {
		cfg.Currency = defaultCurrency
	}
	if cfg.Orders.ExpiryMinutes <= 0 {
		cfg.Orders.ExpiryMinutes = int(defaultOrderExpiry / time.Minute)
	}
	if cfg.Orders.SweepMinutes <= 0 {
		cfg.Orders.SweepMinutes = int(defaultSweepInterval / time.Minute)
	}
	if len(cfg.Packages) == 0 {
		return Config{}, fmt.Errorf("at least one package must be configured")
	}
	for _, p := range cfg.Packages {
		if p.ID == "" || p.Price <= 0 || len(p.Items) == 0 {
			return Config{}, fmt.Errorf("package %q: id, positive price and items are required", p.ID)
		}
	}
	if cfg.Content.Dir == "" && cfg.Content.S3.Bucket == "" {
		return Config{}, fmt.Errorf("content.dir or content.s3.bucket is required")
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost:4002"
	}

	return cfg, nil
}

func (c Config) OrderExpiry() time.Duration {
	return time.Duration(c.Orders.ExpiryMinutes) * time.Minute
}

func (c Config) SweepInterval() time.Duration {
	return time.Duration(c.Orders.SweepMinutes) * time.Minute
}
