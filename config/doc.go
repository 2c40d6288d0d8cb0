// Package config provides the process configuration for the maze runner.
//
// The config package handles:
//   - Reading settings from environment variables
//   - Defaults suitable for local development
//   - Startup validation of every knob
//
// Configuration Sources:
//
// All settings come from the environment, optionally seeded from a .env
// file loaded by the binary before parsing. Each field of Config documents
// its variable name and default.
//
// Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//	srv := api.NewServer(gameService, cfg.Addr())
package config
