// Package config provides configuration management for particle-wui.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults live in the `default` struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: diagnostics server (port, max_queued, max_threads, idle_timeout, disabled, content_root)
//   - Scheduler: frame loop pacing (max_fps, idle_sleep)
//   - Telemetry: sample recording and websocket streaming
//   - Storage: S3/MinIO credentials and the bucket mirroring the content root
//   - Log: Logging level and format
//   - Database: optional telemetry history store (mysql or sqlite)
//
// Environment variables use the SECTION_KEY form, e.g. SERVER_PORT or SCHEDULER_MAX_FPS.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
