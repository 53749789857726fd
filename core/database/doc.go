// Package database handles database connections.
//
// It wraps GORM to open MySQL (or SQLite, for local development) connections
// based on the application's configuration. The connection backs the
// "database" resource source, which serves resources from a table.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
