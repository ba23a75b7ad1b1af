// Package config loads runtime configuration for the FitQuest terminal client.
//
// Sources, later ones win:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags.
//
// Supported flags
//
//	-a string   base URL of the FitQuest HTTP API
//	-i int      online status check interval (seconds)
//	-t int      per-request timeout (seconds)
//
// The JSON file uses timex.Duration for intervals, so values can be strings
// like "3s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:4000",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s"
//	}
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the client.
type Config struct {
	ServerURL           string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
}

// LoadDefaults populates c with defaults matching a local server.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:4000"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig builds a Config from defaults, the JSON file and flags.
func LoadConfig() *Config {
	return loadConfig(os.Args[1:])
}

func loadConfig(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
