// Package models defines the GORM models of the telemetry history.
package models
