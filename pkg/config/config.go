// Package config holds the benchmark suite configuration.
//
// Configuration is layered: built-in defaults, then an optional YAML
// file, then environment variables. A .env file in the working
// directory is honored for the environment layer.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the YAML file consulted when MACHMARK_CONFIG is unset.
const DefaultFile = "machmark.yml"

// Config holds every tunable of the benchmark suite.
type Config struct {
	FibN          int    `yaml:"fibN"`
	PrimeN        int    `yaml:"primeN"`
	MatrixSize    int    `yaml:"matrixSize"`
	MatrixEnabled bool   `yaml:"matrixEnabled"`
	MemoryMB      int    `yaml:"memoryMB"`
	DiskMB        int    `yaml:"diskMB"`
	DiskBlockKB   int    `yaml:"diskBlockKB"`
	DiskTest      bool   `yaml:"diskTest"`
	ReportPath    string `yaml:"reportPath"`
	LogLevel      string `yaml:"logLevel"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		FibN:          35,
		PrimeN:        1000000,
		MatrixSize:    2000,
		MatrixEnabled: true,
		MemoryMB:      1024,
		DiskMB:        1024,
		DiskBlockKB:   4,
		DiskTest:      true,
		ReportPath:    "performance_report.txt",
		LogLevel:      "info",
	}
}

// Load builds the effective configuration: defaults, then the YAML file
// if present, then environment variables. A missing YAML file is not an
// error; a malformed one is.
func Load() (Config, error) {
	cfg := Defaults()

	// Pick up a .env file if there is one; absence is the normal case.
	_ = godotenv.Load()

	path := getEnv("MACHMARK_CONFIG", DefaultFile)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.FibN = getEnvInt("MACHMARK_FIB_N", cfg.FibN)
	cfg.PrimeN = getEnvInt("MACHMARK_PRIME_N", cfg.PrimeN)
	cfg.MatrixSize = getEnvInt("MACHMARK_MATRIX_SIZE", cfg.MatrixSize)
	cfg.MatrixEnabled = getEnvBool("MACHMARK_MATRIX_ENABLED", cfg.MatrixEnabled)
	cfg.MemoryMB = getEnvInt("MACHMARK_MEMORY_MB", cfg.MemoryMB)
	cfg.DiskMB = getEnvInt("MACHMARK_DISK_MB", cfg.DiskMB)
	cfg.DiskBlockKB = getEnvInt("MACHMARK_DISK_BLOCK_KB", cfg.DiskBlockKB)
	cfg.DiskTest = getEnvBool("MACHMARK_DISK_TEST", cfg.DiskTest)
	cfg.ReportPath = getEnv("MACHMARK_REPORT_PATH", cfg.ReportPath)
	cfg.LogLevel = getEnv("MACHMARK_LOG_LEVEL", cfg.LogLevel)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}
