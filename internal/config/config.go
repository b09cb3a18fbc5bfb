// Package config provides functionality for managing configuration options
// for the application using command-line flags and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"strconv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Address defines the server's listening address (ip:port).
	Address string `json:"address"`

	// DatabasePath is the path to the SQLite database file.
	DatabasePath string `json:"database_path"`

	// JWTSecret signs and verifies bearer tokens. Environment only,
	// never read from the config file; the server refuses to start without it.
	JWTSecret string `json:"-"`

	// TokenTTLHours bounds the lifetime of issued tokens.
	TokenTTLHours int `json:"token_ttl_hours"`

	// AllowedOrigins is a comma-separated list of CORS origins.
	AllowedOrigins string `json:"allowed_origins"`

	// Config is the path to the Config file.
	Config string `json:"-"`
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Address, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabasePath, "d", "tasks.db", "path to sqlite database file")
	flag.IntVar(&options.TokenTTLHours, "ttl", 12, "token lifetime in hours")
	flag.StringVar(&options.AllowedOrigins, "origins", "", "comma-separated CORS origins")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Address = serverAddress
	}
	if databasePath := os.Getenv("DATABASE_PATH"); databasePath != "" {
		options.DatabasePath = databasePath
	}
	if ttl := os.Getenv("TOKEN_TTL_HOURS"); ttl != "" {
		if hours, err := strconv.Atoi(ttl); err == nil && hours > 0 {
			options.TokenTTLHours = hours
		}
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		options.AllowedOrigins = origins
	}
	options.JWTSecret = os.Getenv("JWT_SECRET")

	return options
}
