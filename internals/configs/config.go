package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	JWTSecret      string
	AccessTokenTTL time.Duration
	UploadRoot     string
	AppEnv         string
)

const accessTTLDefault = 7 * 24 * time.Hour

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, using system ENV")
	} else {
		log.Println("✅ .env file loaded")
	}

	AppEnv = GetEnv("APP_ENV", "development")
	JWTSecret = GetEnv("JWT_SECRET")
	UploadRoot = GetEnv("UPLOAD_ROOT", "uploads")

	AccessTokenTTL = accessTTLDefault
	if raw := GetEnv("JWT_EXPIRES_HOURS"); raw != "" {
		if hours, err := strconv.Atoi(raw); err == nil && hours > 0 {
			AccessTokenTTL = time.Duration(hours) * time.Hour
		}
	}

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set!")
	} else {
		log.Println("✅ JWT_SECRET loaded.")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// IsDevelopment reports whether the app runs in development mode.
// Error responses include internal detail only in this mode.
func IsDevelopment() bool {
	return AppEnv != "production"
}
