package concurrency

import (
	"os"
	"runtime"
	"strconv"
)

// ConfigSource indicates where the configuration came from
type ConfigSource string

const (
	ConfigSourceEnvVar     ConfigSource = "environment_variable"
	ConfigSourceAutoDetect ConfigSource = "auto_detect"
)

// Config holds concurrency configuration parameters
type Config struct {
	// MaxConcurrent is the global bound on in-flight item executions
	MaxConcurrent int
	// Workers is the default worker count for parallel batch execution
	Workers int
	// Source records where MaxConcurrent came from
	Source ConfigSource
	// EffectiveCPUs is the CPU count visible to the runtime (respects GOMAXPROCS)
	EffectiveCPUs int
}

// LoadConfig loads concurrency configuration with priority:
// env vars > auto-detection.
//
// Recognized variables: DAEDALUS_MAX_CONCURRENT, DAEDALUS_WORKERS.
func LoadConfig() *Config {
	config := &Config{
		EffectiveCPUs: runtime.GOMAXPROCS(0),
	}

	if maxConcurrent := getEnvInt("DAEDALUS_MAX_CONCURRENT", 0); maxConcurrent > 0 {
		config.MaxConcurrent = maxConcurrent
		config.Source = ConfigSourceEnvVar
	} else {
		config.MaxConcurrent = config.EffectiveCPUs * 2
		config.Source = ConfigSourceAutoDetect
	}
	if config.MaxConcurrent < 1 {
		config.MaxConcurrent = 1
	}

	if workers := getEnvInt("DAEDALUS_WORKERS", 0); workers > 0 {
		config.Workers = workers
	} else {
		config.Workers = config.EffectiveCPUs
	}
	if config.Workers < 1 {
		config.Workers = 1
	}

	return config
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
