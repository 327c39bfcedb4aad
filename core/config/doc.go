// Package config provides configuration management for the Item Catalog.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, admin token)
//   - Database: MySQL or SQLite connection details
//   - Storage: MinIO credentials and the raw dump archive bucket
//   - Log: Logging level and format
//   - Catalog: ingestion and list cache settings (origin hash salt, cache TTL, page size)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
