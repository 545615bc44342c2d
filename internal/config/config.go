package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the worry service configuration
type Config struct {
	Port               string
	Env                string
	ProjectID          string
	GeminiAPIKey       string
	GeminiModel        string
	IdentitySigningKey string
	Attestation        AttestationConfig
	MaxInstances       int
	Database           DatabaseConfig
}

// AttestationConfig holds attestation exchange settings
type AttestationConfig struct {
	SiteKey string
	Secret  string
	TTL     time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// ClientConfig holds the terminal client configuration
type ClientConfig struct {
	APIURL   string
	DataPath string
	SiteKey  string
	Env      string
	LogFile  string
}

// Load reads server configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("APP_ENV", "production"),
		ProjectID:          getEnv("PROJECT_ID", "baku-worry-eater"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		IdentitySigningKey: os.Getenv("IDENTITY_SIGNING_KEY"),
		Attestation: AttestationConfig{
			SiteKey: os.Getenv("ATTESTATION_SITE_KEY"),
			Secret:  os.Getenv("ATTESTATION_SECRET"),
			TTL:     getEnvDuration("ATTESTATION_TTL", time.Hour),
		},
		MaxInstances: getEnvInt("MAX_INSTANCES", 10),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "baku"),
			User:     getEnv("DB_USER", "baku"),
			Password: os.Getenv("DB_PASSWORD"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required fields
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.IdentitySigningKey == "" {
		return fmt.Errorf("IDENTITY_SIGNING_KEY is required")
	}
	if c.Attestation.SiteKey == "" {
		return fmt.Errorf("ATTESTATION_SITE_KEY is required")
	}
	if c.Attestation.Secret == "" {
		return fmt.Errorf("ATTESTATION_SECRET is required")
	}
	if c.Attestation.TTL <= 0 {
		return fmt.Errorf("ATTESTATION_TTL must be positive")
	}
	if c.MaxInstances <= 0 {
		return fmt.Errorf("MAX_INSTANCES must be positive")
	}
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	return nil
}

// IsDevelopment reports whether verbose development behaviour is enabled
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

// LoadClient reads terminal client configuration from environment variables
func LoadClient() (*ClientConfig, error) {
	_ = godotenv.Load()

	cfg := &ClientConfig{
		APIURL:   getEnv("BAKU_API_URL", "http://localhost:8080"),
		DataPath: getEnv("BAKU_DATA_PATH", defaultDataPath()),
		SiteKey:  os.Getenv("BAKU_SITE_KEY"),
		Env:      getEnv("APP_ENV", "production"),
		LogFile:  getEnv("BAKU_LOG_FILE", os.DevNull),
	}

	if cfg.APIURL == "" {
		return nil, fmt.Errorf("BAKU_API_URL is required")
	}

	return cfg, nil
}

// IsDevelopment reports whether verbose development messages are shown
func (c *ClientConfig) IsDevelopment() bool {
	return c.Env == "development"
}

func defaultDataPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "baku.db"
	}
	return dir + string(os.PathSeparator) + "baku" + string(os.PathSeparator) + "baku.db"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
