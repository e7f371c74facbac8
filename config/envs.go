package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP          string // Host IP for the server
	RESTPort        int    // Port for the REST API
	DBHost          string // Hostname or IP address for the database
	DBPort          int    // Port number for the database
	DBUser          string // Username for the database
	DBPassword      string // Password for the database
	DBName          string // Name of the database
	RedisAddr       string // Address (host:port) of the Redis server
	RedisPassword   string // Password for Redis, empty when auth is disabled
	RedisDB         int    // Redis logical database index
	GinMode         string // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret       string // Secret key for JWT signing
	JWTIssuer       string // Issuer claim for JWTs
	MaxCells        int    // Largest width*height*depth a request may carve
	CacheTTLSeconds int    // Lifetime of cached generation results
	HistoryTTL      int    // Lifetime, in seconds, of the recent-generation history
}

// Envs holds the application's configuration once Load has succeeded.
var Envs Config

// Load reads the configuration from the environment, after loading a .env file if one
// exists, and stores it in Envs. Every missing or malformed variable is reported.
func Load() error {
	r := &envReader{}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		r.errs = append(r.errs, fmt.Errorf("loading .env: %w", err))
	}

	cfg := Config{
		HostIP:          r.mustGetEnv("HOST_IP"),
		RESTPort:        r.mustGetEnvAsInt("REST_PORT"),
		DBHost:          r.mustGetEnv("DB_HOST"),
		DBPort:          r.mustGetEnvAsInt("DB_PORT"),
		DBUser:          r.mustGetEnv("DB_USER"),
		DBPassword:      r.mustGetEnv("DB_PASS"),
		DBName:          r.mustGetEnv("DB_NAME"),
		RedisAddr:       r.mustGetEnv("REDIS_ADDR"),
		RedisPassword:   getEnvWithDefault("REDIS_PASSWORD", ""),
		RedisDB:         r.getEnvAsIntWithDefault("REDIS_DB", 0),
		GinMode:         getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:       r.mustGetEnv("JWT_SECRET"),
		JWTIssuer:       r.mustGetEnv("JWT_ISSUER"),
		MaxCells:        r.getEnvAsIntWithDefault("MAZE_MAX_CELLS", 1_000_000),
		CacheTTLSeconds: r.getEnvAsIntWithDefault("MAZE_CACHE_TTL", 600),
		HistoryTTL:      r.getEnvAsIntWithDefault("MAZE_HISTORY_TTL", 86400),
	}
	if err := errors.Join(r.errs...); err != nil {
		return err
	}

	Envs = cfg
	return nil
}

// envReader collects the problems found while reading variables.
type envReader struct {
	errs []error
}

// mustGetEnv retrieves the value of an environment variable and records an error if it is not set.
func (r *envReader) mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		r.errs = append(r.errs, fmt.Errorf("environment variable %s is not set", key))
	}
	return value
}

// mustGetEnvAsInt is mustGetEnv for integer values.
func (r *envReader) mustGetEnvAsInt(key string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		r.errs = append(r.errs, fmt.Errorf("environment variable %s is not set", key))
		return 0
	}
	return r.atoi(key, valueStr)
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault is getEnvWithDefault for integer values. A set value that does
// not parse is an error, same as for the required variables.
func (r *envReader) getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return r.atoi(key, valueStr)
}

func (r *envReader) atoi(key, valueStr string) int {
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("environment variable %s must be an integer: %w", key, err))
	}
	return value
}
