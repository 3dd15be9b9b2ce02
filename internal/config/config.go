package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Site     SiteConfig     `toml:"site"`
	Holds    HoldsConfig    `toml:"holds"`
	Redis    RedisConfig    `toml:"redis"`
	Webhooks WebhooksConfig `toml:"webhooks"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к Postgres
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SiteConfig настройки площадки
// Timezone - таймзона, в которой живут расписания, cutoff и дедлайны отмены
type SiteConfig struct {
	Timezone string `toml:"timezone"`
}

// HoldsConfig настройки системы холдов
// Enabled=false отключает холды: защита от перепродажи деградирует
// до атомарной проверки занятости на коммите
type HoldsConfig struct {
	Enabled              bool `toml:"enabled"`
	TTLMinutes           int  `toml:"ttl_minutes"`
	SweepIntervalMinutes int  `toml:"sweep_interval_minutes"`
}

// RedisConfig настройки Redis для кеша доступности
// TTL - страховка на случай пропущенной инвалидации по событиям
type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	DB         int    `toml:"db"`
	TTLMinutes int    `toml:"ttl_minutes"`
}

// WebhooksConfig настройки приема вебхуков коммерции
type WebhooksConfig struct {
	OrderSecret string `toml:"order_secret"`
}

// Load загружает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Site.Timezone == "" {
		cfg.Site.Timezone = "Europe/Rome"
	}
	if cfg.Holds.TTLMinutes == 0 {
		cfg.Holds.TTLMinutes = 15
	}
	if cfg.Holds.SweepIntervalMinutes == 0 {
		cfg.Holds.SweepIntervalMinutes = 5
	}
	if cfg.Redis.TTLMinutes == 0 {
		cfg.Redis.TTLMinutes = 10
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "experience-booking-service"
	}
	if cfg.Logs.Level == "" {
		cfg.Logs.Level = "info"
	}
}

func validate(cfg *Config) error {
	if cfg.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if cfg.Database.DBName == "" {
		return fmt.Errorf("config: database.dbname is required")
	}
	if cfg.Holds.TTLMinutes < 1 {
		return fmt.Errorf("config: holds.ttl_minutes must be positive, got %d", cfg.Holds.TTLMinutes)
	}
	if cfg.Holds.SweepIntervalMinutes < 1 {
		return fmt.Errorf("config: holds.sweep_interval_minutes must be positive, got %d", cfg.Holds.SweepIntervalMinutes)
	}
	return nil
}
