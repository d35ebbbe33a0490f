package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"foodiego-api/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens, read from env or fallback
var JWTSecret = []byte(getEnv("JWT_SECRET", "foodiego_super_secret_2024"))

// Settings holds everything read from the environment at startup.
type Settings struct {
	Port            string
	DBPath          string
	MaxLoginFails   int
	LockoutDuration time.Duration
	RateLimit       int
	RateWindow      time.Duration
	SMTPHost        string
	SMTPPort        int
	SMTPUser        string
	SMTPPass        string
	EmailFrom       string
}

// Load reads .env (if present) and assembles runtime settings.
func Load() Settings {
	if err := godotenv.Load(); err == nil {
		// .env overrides only apply to values read after this point
		JWTSecret = []byte(getEnv("JWT_SECRET", "foodiego_super_secret_2024"))
	}

	return Settings{
		Port:            getEnv("PORT", "8080"),
		DBPath:          getEnv("DB_PATH", "foodiego.db"),
		MaxLoginFails:   getEnvInt("MAX_LOGIN_FAILS", 5),
		LockoutDuration: time.Duration(getEnvInt("LOCKOUT_MINUTES", 15)) * time.Minute,
		RateLimit:       getEnvInt("RATE_LIMIT", 60),
		RateWindow:      time.Duration(getEnvInt("RATE_WINDOW_SECONDS", 60)) * time.Second,
		SMTPHost:        getEnv("EMAIL_HOST", "smtp.gmail.com"),
		SMTPPort:        getEnvInt("EMAIL_PORT", 587),
		SMTPUser:        getEnv("EMAIL_USER", ""),
		SMTPPass:        getEnv("EMAIL_PASS", ""),
		EmailFrom:       getEnv("EMAIL_FROM", "FoodieGo <noreply@foodiego.com>"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func InitDB(path string) {
	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate all models
	err = DB.AutoMigrate(
		&models.User{},
		&models.WalletTransaction{},
		&models.Food{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
		&models.ChatMessage{},
		&models.Promotion{},
		&models.Review{},
		&models.EventBooking{},
		&models.Counter{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	if err := models.EnsureCounter(DB, models.OrderNumberSeq); err != nil {
		log.Fatal("Failed to seed order number counter:", err)
	}

	log.Println("✅ Database connected and migrated successfully")
}
