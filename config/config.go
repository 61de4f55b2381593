package config

import (
	"fmt"
	"time"

	pkgconfig "wbsplanner/pkg/config"
)

// Config is the server and worker configuration.
type Config struct {
	DB     pkgconfig.DBConfig     `yaml:"db"`
	MQ     pkgconfig.MQConfig     `yaml:"mq"`
	Redis  pkgconfig.RedisConfig  `yaml:"redis"`
	JWT    pkgconfig.JWTConfig    `yaml:"jwt"`
	Server pkgconfig.ServerConfig `yaml:"server"`
	Log    pkgconfig.LogConfig    `yaml:"log"`
	Otel   pkgconfig.OtelConfig   `yaml:"otel"`
	Seed   SeedConfig             `yaml:"seed"`
	Worker WorkerConfig           `yaml:"worker"`
}

// SeedConfig describes the admin account created on first start.
type SeedConfig struct {
	AdminUsername string `yaml:"admin_username"`
	AdminPassword string `yaml:"admin_password"`
	AdminEmail    string `yaml:"admin_email"`
}

type WorkerConfig struct {
	Queue      string        `yaml:"queue"`
	MaxRetries int64         `yaml:"max_retries"`
	DedupTTL   time.Duration `yaml:"dedup_ttl"`
}

// Load reads $CONFIG_DIR (default "config") for the $CONFIG_ENV environment
// and applies the DB_*, REDIS_*, MQ_URL, JWT_SECRET and SERVER_PORT overrides.
func Load() (*Config, error) {
	cfg := Default()
	dir := pkgconfig.GetEnv("CONFIG_DIR", "config")
	if err := pkgconfig.Decode(pkgconfig.GetConfigEnv(), dir, cfg); err != nil {
		return nil, fmt.Errorf("load config from %s: %w", dir, err)
	}

	pkgconfig.OverrideDBFromEnv(&cfg.DB)
	pkgconfig.OverrideMQFromEnv(&cfg.MQ)
	pkgconfig.OverrideRedisFromEnv(&cfg.Redis)
	pkgconfig.OverrideJWTFromEnv(&cfg.JWT)
	pkgconfig.OverrideServerFromEnv(&cfg.Server)

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt.secret must be set")
	}
	return cfg, nil
}

// Default values used when a key is absent from the yaml files.
func Default() *Config {
	return &Config{
		DB: pkgconfig.DBConfig{
			Host:          "localhost",
			Port:          5432,
			User:          "wbs",
			Name:          "wbs",
			SlowThreshold: 100 * time.Millisecond,
		},
		Redis:  pkgconfig.RedisConfig{TTL: 5 * time.Minute},
		JWT:    pkgconfig.JWTConfig{TTL: 24 * time.Hour},
		Server: pkgconfig.ServerConfig{Port: "8000"},
		Seed: SeedConfig{
			AdminUsername: "admin",
			AdminPassword: "admin123",
			AdminEmail:    "admin@example.com",
		},
		Worker: WorkerConfig{
			Queue:      "wbs.report-cache",
			MaxRetries: 5,
			DedupTTL:   time.Hour,
		},
	}
}
