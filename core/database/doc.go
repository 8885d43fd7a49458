// Package database handles the optional telemetry history database.
//
// It wraps GORM and configures either MySQL or a local SQLite file from the
// application's configuration. The diagnostics server works without it; callers
// treat connection failures as warnings.
//
// # Connect
//
// ConnectOptional returns ErrDisabled when database.enabled is false. Connect selects
// the dialector from database.driver, tunes the pool and pings the server.
//
// # Schema Inspection
//
// TableColumns and MissingColumns read the live schema (PRAGMA table_info on SQLite,
// SHOW COLUMNS on MySQL) so the recorder can warn about a table that predates the
// current sample model.
//
// # Usage
//
//	db, err := database.ConnectOptional(cfg.Database)
//	if errors.Is(err, database.ErrDisabled) {
//	    // run without history
//	}
package database
