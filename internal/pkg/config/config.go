// Package config exposes typed, read-only access to process configuration.
//
// Values come from a YAML file and can be overridden by environment variables
// (a key such as "jwt.secret" maps to JWT_SECRET). The application reads what
// it needs once at startup and hands plain values to constructors.
package config

import (
	"io"
	"time"
)

// TimeConfig defines helpers for retrieving durations stored as integers.
type TimeConfig interface {
	// GetSecond returns the integer value of key as seconds.
	GetSecond(key string) time.Duration
	// GetMinute returns the integer value of key as minutes.
	GetMinute(key string) time.Duration
	// GetHour returns the integer value of key as hours.
	GetHour(key string) time.Duration
	// GetDay returns the integer value of key as days (24h).
	GetDay(key string) time.Duration
}

// Config defines a set of methods for retrieving configuration values of various types.
// Missing keys yield the zero value of the requested type.
type Config interface {
	io.Closer
	TimeConfig

	GetInt(key string) int
	GetInt32(key string) int32
	GetInt64(key string) int64
	GetUint(key string) uint
	GetFloat64(key string) float64
	GetBool(key string) bool
	GetString(key string) string

	// GetBinary returns the value of key decoded from base64.
	GetBinary(key string) []byte

	// GetArray returns the value of key split on commas, with blanks removed.
	// Configuration value is stored with format <element1>,<element2>,...
	GetArray(key string) []string
}
