package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultListenAddr = "127.0.0.1:8765"
	DefaultLogLevel   = "info"
)

// Config holds the settings shared by the pdfsat binaries
type Config struct {
	StateDB    string
	RedisURL   string
	ListenAddr string
	PopplerDir string
	LogLevel   string
	LogFile    string

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3UseSSL    bool
}

// Load reads the environment, after applying an optional .env file from the
// working directory. Variables already set take precedence over the file.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the environment without looking for a .env file
func FromEnv() Config {
	return Config{
		StateDB:     getenv("PDFSAT_STATE_DB", filepath.Join(dataHome(), "pdfsat", "session.db")),
		RedisURL:    getenv("PDFSAT_REDIS_URL", ""),
		ListenAddr:  getenv("PDFSAT_LISTEN", DefaultListenAddr),
		PopplerDir:  getenv("PDFSAT_POPPLER_DIR", ""),
		LogLevel:    getenv("PDFSAT_LOG_LEVEL", DefaultLogLevel),
		LogFile:     getenv("PDFSAT_LOG_FILE", filepath.Join(stateHome(), "pdfsat", "pdfsat.log")),
		S3Endpoint:  getenv("PDFSAT_S3_ENDPOINT", ""),
		S3AccessKey: getenv("PDFSAT_S3_ACCESS_KEY", ""),
		S3SecretKey: getenv("PDFSAT_S3_SECRET_KEY", ""),
		S3UseSSL:    getenvBool("PDFSAT_S3_USE_SSL", true),
	}
}

// UseRedis reports whether sessions should be kept in Redis instead of SQLite
func (c Config) UseRedis() bool {
	return c.RedisURL != ""
}

func dataHome() string {
	return xdgDir("XDG_DATA_HOME", ".local", "share")
}

func stateHome() string {
	return xdgDir("XDG_STATE_HOME", ".local", "state")
}

func xdgDir(env string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(append([]string{home}, fallback...)...)
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
