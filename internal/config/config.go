package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxBodyBytes int64
	MaxWorkers   int

	// Logging configuration
	LogFormat string
	LogLevel  string
	LogBodies bool

	// HTTP edge configuration
	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
	MetricsNamespace   string

	// Document rendering configuration
	FontPath     string
	BoldFontPath string
	CourtesyLine string
	PDFCompress  bool
	MaxLogoBytes int64

	// Company profile storage
	PostgresURL string
	ProfileDir  string

	// Logo storage
	S3Endpoint        string
	S3AccessKeyID     string
	S3AccessKeySecret string
	S3Bucket          string
	S3Region          string
	LogoDir           string
	LogoCacheTTL      time.Duration
}

// UseS3 reports whether enough S3 settings are present to store logos remotely
func (c *Config) UseS3() bool {
	return c.S3Bucket != "" && c.S3AccessKeyID != "" && c.S3AccessKeySecret != ""
}

// UsePostgres reports whether company profiles live in PostgreSQL
func (c *Config) UsePostgres() bool {
	return c.PostgresURL != ""
}

// LoadConfig loads the application configuration from environment variables
func LoadConfig() (*Config, error) {
	loadDotEnv()

	config := FromEnv()

	// Validate critical configuration
	validateConfig(config)

	return config, nil
}

// loadDotEnv loads .env from the project root next to the binary, falling
// back to the working directory.
func loadDotEnv() {
	execPath, err := os.Executable()
	if err != nil {
		log.Printf("Warning: Could not determine executable path: %v", err)
	}

	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(execPath)))
	envPath := filepath.Join(projectRoot, ".env")

	if err := godotenv.Load(envPath); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading .env file. Using environment variables.")
		} else {
			log.Println("Loaded environment variables from current directory .env file")
		}
	} else {
		log.Printf("Loaded environment variables from %s", envPath)
	}
}

// FromEnv builds a Config from the current environment without touching .env files
func FromEnv() *Config {
	return &Config{
		Port:         getEnvInt("PORT", 8080),
		ReadTimeout:  getEnvDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getEnvDuration("WRITE_TIMEOUT", 30*time.Second),
		MaxBodyBytes: int64(getEnvInt("MAX_BODY_BYTES", 8<<20)),
		MaxWorkers:   getEnvInt("MAX_WORKERS", 5),

		LogFormat: getEnvString("LOG_FORMAT", "json"),
		LogLevel:  getEnvString("LOG_LEVEL", "info"),
		LogBodies: getEnvBool("LOG_BODIES", false),

		CORSAllowedOrigins: getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RateLimitRPS:       getEnvFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 40),
		MetricsNamespace:   getEnvString("METRICS_NAMESPACE", "gst_invoice"),

		FontPath:     os.Getenv("PDF_FONT_PATH"),
		BoldFontPath: os.Getenv("PDF_BOLD_FONT_PATH"),
		CourtesyLine: getEnvString("PDF_COURTESY_LINE", "Thank you for your business."),
		PDFCompress:  getEnvBool("PDF_COMPRESS", true),
		MaxLogoBytes: int64(getEnvInt("MAX_LOGO_BYTES", 5<<20)),

		PostgresURL: os.Getenv("POSTGRES_DB_URL"),
		ProfileDir:  getEnvString("PROFILE_DIR", "data/companies"),

		S3Endpoint:        os.Getenv("S3_ENDPOINT"),
		S3AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		S3AccessKeySecret: os.Getenv("S3_ACCESS_KEY_SECRET"),
		S3Bucket:          os.Getenv("S3_BUCKET"),
		S3Region:          getEnvString("S3_REGION", "ap-south-1"),
		LogoDir:           getEnvString("LOGO_DIR", "data/logos"),
		LogoCacheTTL:      getEnvDuration("LOGO_CACHE_TTL", time.Hour),
	}
}

// validateConfig checks if critical configuration values are set and logs warnings if they're missing
func validateConfig(config *Config) {
	if config.FontPath == "" {
		log.Println("Warning: No PDF_FONT_PATH provided. Invoices use the built-in font and label amounts INR.")
	}

	if !config.UsePostgres() {
		log.Printf("Warning: No POSTGRES_DB_URL provided. Company profiles are stored in %s.", config.ProfileDir)
	}

	if !config.UseS3() {
		if config.S3Bucket != "" {
			log.Println("Warning: S3_BUCKET is set but S3 credentials are missing.")
		}
		log.Printf("Warning: S3 is not configured. Logos are stored in %s.", config.LogoDir)
	}

	if config.RateLimitRPS <= 0 {
		log.Println("Warning: RATE_LIMIT_RPS is not positive. Rate limiting is disabled.")
	}
}

// getEnvInt gets an integer from an environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvFloat gets a float from an environment variable with a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Invalid value for %s: %s, using default: %g", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvDuration accepts Go durations ("90s") or a bare number of seconds
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	if seconds, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(seconds) * time.Second
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid value for %s: %s, using default: %s", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvBool gets a boolean from an environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	valueStr = strings.ToLower(valueStr)
	return valueStr == "true" || valueStr == "1" || valueStr == "yes"
}

// getEnvString gets a string from an environment variable with a default value
func getEnvString(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvStringSlice gets a string slice from a comma-separated environment variable
func getEnvStringSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	return values
}
