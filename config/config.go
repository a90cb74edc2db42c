package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joho/godotenv"
)

// Config is everything the application reads from the environment
type Config struct {
	Env string

	DBDriver    string
	DatabaseURL string
	SQLitePath  string
	DBSSLMode   string
	DBTimeZone  string

	RedisAddr     string
	RedisUser     string
	RedisPassword string

	JWTSecret string
	TokenTTL  time.Duration

	Port          string
	CORSOrigins   []string
	CloudinaryURL string

	LogDir   string
	LogLevel string

	HotelLocation *time.Location
}

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: could not load .env file, using process environment: %v", err)
	}
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads .env (if present) and the process environment
func Load() *Config {
	LoadEnv()

	cfg := &Config{
		Env:           getEnvDefault("ENV", "dev"),
		DBDriver:      getEnvDefault("DB_DRIVER", "postgres"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SQLitePath:    getEnvDefault("SQLITE_PATH", "hotel.db"),
		DBSSLMode:     getEnvDefault("DB_SSLMODE", "disable"),
		DBTimeZone:    getEnvDefault("DB_TIMEZONE", "UTC"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisUser:     os.Getenv("REDIS_USER"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		Port:          getEnvDefault("PORT", "8083"),
		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),
		LogDir:        os.Getenv("LOG_DIR"),
		LogLevel:      getEnvDefault("LOG_LEVEL", "info"),
	}

	ttl, err := strconv.Atoi(getEnvDefault("TOKEN_TTL_MINUTES", "1440"))
	if err != nil || ttl <= 0 {
		log.Printf("Warning: invalid TOKEN_TTL_MINUTES, using 1440")
		ttl = 1440
	}
	cfg.TokenTTL = time.Duration(ttl) * time.Minute

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	cfg.HotelLocation = time.UTC
	if tz := os.Getenv("HOTEL_TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			log.Printf("Warning: unknown HOTEL_TIMEZONE %q, using UTC", tz)
		} else {
			cfg.HotelLocation = loc
		}
	}

	if cfg.JWTSecret == "" {
		log.Printf("Warning: JWT_SECRET is empty, tokens are signed with an insecure default")
		cfg.JWTSecret = "change-me"
	}

	return cfg
}

// ConnectCloudinary returns nil when CLOUDINARY_URL is not set; photo upload is then disabled
func ConnectCloudinary(cfg *Config) (*cloudinary.Cloudinary, error) {
	if cfg.CloudinaryURL == "" {
		return nil, nil
	}
	return cloudinary.NewFromURL(cfg.CloudinaryURL)
}
