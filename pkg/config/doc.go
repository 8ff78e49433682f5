// Package config loads application configuration from environment
// variables into annotated Go structs.
//
// It composes github.com/joho/godotenv (optional .env files) with
// github.com/caarlos0/env/v11 (struct tag parsing) behind a minimal API.
//
// # Usage
//
//	type ServerConfig struct {
//	    Addr string `env:"SERVER_ADDR" envDefault:":8080"`
//	    TLS  bool   `env:"SERVER_TLS" envDefault:"false"`
//	}
//
//	var cfg ServerConfig
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// Load reads the default .env file once per process if one exists; use
// LoadEnv to pull in additional files explicitly before parsing. Errors
// wrap the package sentinels, so callers can branch with errors.Is.
package config
