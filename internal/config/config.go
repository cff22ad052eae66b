package config

import (
	"fmt"
	"time"
)

// Store drivers.
const (
	DriverSQLite = "sqlite"
	DriverBadger = "badger"
)

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	LogFormat         string        `mapstructure:"log_format" yaml:"log_format"`
	StoreDriver       string        `mapstructure:"store_driver" yaml:"store_driver"`
	DatabasePath      string        `mapstructure:"database_path" yaml:"database_path"`
	BadgerPath        string        `mapstructure:"badger_path" yaml:"badger_path"`
	ReaperInterval    time.Duration `mapstructure:"reaper_interval" yaml:"reaper_interval"`
	StaleTimeout      time.Duration `mapstructure:"stale_timeout" yaml:"stale_timeout"`
	HistoryMaxLimit   int           `mapstructure:"history_max_limit" yaml:"history_max_limit"`
	CORSAllowOrigin   string        `mapstructure:"cors_allow_origin" yaml:"cors_allow_origin"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":5000",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		LogFormat:         "console",
		StoreDriver:       DriverSQLite,
		DatabasePath:      "presencechat.db",
		BadgerPath:        "presencechat-badger",
		ReaperInterval:    15 * time.Second,
		StaleTimeout:      10 * time.Second,
		HistoryMaxLimit:   0,
		CORSAllowOrigin:   "*",
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.LogFormat != "" {
		c.LogFormat = other.LogFormat
	}
	if other.StoreDriver != "" {
		c.StoreDriver = other.StoreDriver
	}
	if other.DatabasePath != "" {
		c.DatabasePath = other.DatabasePath
	}
	if other.BadgerPath != "" {
		c.BadgerPath = other.BadgerPath
	}
	if other.ReaperInterval != 0 {
		c.ReaperInterval = other.ReaperInterval
	}
	if other.StaleTimeout != 0 {
		c.StaleTimeout = other.StaleTimeout
	}
	if other.HistoryMaxLimit != 0 {
		c.HistoryMaxLimit = other.HistoryMaxLimit
	}
	if other.CORSAllowOrigin != "" {
		c.CORSAllowOrigin = other.CORSAllowOrigin
	}
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverSQLite, DriverBadger:
	default:
		return fmt.Errorf("unknown store_driver %q", c.StoreDriver)
	}
	if c.ReaperInterval <= 0 {
		return fmt.Errorf("reaper_interval must be positive")
	}
	if c.StaleTimeout <= 0 {
		return fmt.Errorf("stale_timeout must be positive")
	}
	if c.HistoryMaxLimit < 0 {
		return fmt.Errorf("history_max_limit must not be negative")
	}
	return nil
}
