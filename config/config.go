package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends for users and stream counters.
const (
	StorageMongo  = "mongo"
	StorageMySQL  = "mysql"
	StorageMemory = "memory"
)

// Relay token backends.
const (
	RelayMemory = "memory"
	RelayRedis  = "redis"
)

// Config stores the application configuration.
type Config struct {
	Port string

	StorageDriver string
	MongoURI      string
	MongoDB       string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string

	JWTSecret string
	TokenTTL  time.Duration

	RelayDriver   string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	LogLevel string
	LogFile  string
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// godotenv.Load() will not override existing env vars.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env, relying on existing environment variables and defaults.")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() *Config {
	mongoURI := getEnv("MONGO_URI", "mongodb://127.0.0.1:27017")

	return &Config{
		Port:          getEnv("PORT", "5000"),
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageMongo)),
		MongoURI:      mongoURI,
		MongoDB:       getEnv("MONGO_DB", databaseFromURI(mongoURI)),
		DBHost:        getEnv("DB_HOST", "127.0.0.1"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        getEnv("DB_USER", "root"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        getEnv("DB_NAME", "musichub"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenTTL:      getEnvDuration("TOKEN_TTL", 7*24*time.Hour),
		RelayDriver:   strings.ToLower(getEnv("RELAY_DRIVER", RelayMemory)),
		RedisHost:     getEnv("REDIS_HOST", "127.0.0.1"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		LogLevel:      strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFile:       os.Getenv("LOG_FILE"),
	}
}

// databaseFromURI returns the database named in the URI path, or "test"
// which is what the Mongo shell and most drivers default to.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "test"
	}
	if name := strings.Trim(u.Path, "/"); name != "" {
		return name
	}
	return "test"
}

// Validate checks the settings that the server cannot start without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	switch c.StorageDriver {
	case StorageMongo, StorageMySQL, StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	switch c.RelayDriver {
	case RelayMemory, RelayRedis:
	default:
		return fmt.Errorf("unknown RELAY_DRIVER %q", c.RelayDriver)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// MySQLDSN builds the GORM MySQL DSN.
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// RedisAddr joins the redis host and port.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}
