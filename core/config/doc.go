// Package config provides configuration management for cellular.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults come from the `default` struct tags of each
// section.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP port and API key
//   - Log: Logging level and format
//   - Storage: S3/MinIO credentials and bucket for the "storage" resource source
//   - Database: Connection details for the "database" resource source
//   - Resources: The ordered resource search path (dir, embed, storage, database)
//   - Plane: Names of the plane configuration resources
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Resources.Sources)
package config
