package config

import (
	"os"
	"strconv"
)

// Environment variables that override the built-in flag defaults.
const (
	EnvQuality = "HEIC2JPG_QUALITY"
	EnvWorkers = "HEIC2JPG_WORKERS"
)

// EnvInt returns the integer value of key, or defaultValue when the variable
// is unset or not an integer.
func EnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
