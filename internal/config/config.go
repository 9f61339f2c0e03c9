package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
)

type Config struct {
	DatabaseURL   string
	JWTSecret     []byte
	RefreshSecret []byte
	StripeKey     string
	PublicURL     string
	UploadDir     string
	SMTPAddr      string
	SMTPUser      string
	SMTPPassword  string
	MailFrom      string
	KafkaAddress  string
	ESURL         string
	ESUser        string
	ESPassword    string
	SearchIndex   string
	Port          string
	LogLevel      string
}

func must(v string, name string) string {
	if v == "" {
		log.Fatalf("missing required env %s", name)
	}
	return v
}

func getenvDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	return &Config{
		DatabaseURL:   getenvDefault("DATABASE_URL", "storefront.db"),
		JWTSecret:     []byte(must(os.Getenv("JWT_SECRET"), "JWT_SECRET")),
		RefreshSecret: []byte(must(os.Getenv("REFRESH_SECRET"), "REFRESH_SECRET")),
		StripeKey:     os.Getenv("STRIPE_API_KEY"),
		PublicURL:     getenvDefault("PUBLIC_URL", "http://127.0.0.1:8080"),
		UploadDir:     getenvDefault("UPLOAD_DIR", "static/uploads"),
		SMTPAddr:      getenvDefault("SMTP_ADDR", "smtp.gmail.com:587"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		MailFrom:      getenvDefault("MAIL_FROM", os.Getenv("SMTP_USER")),
		KafkaAddress:  os.Getenv("KAFKA_ADDRESS"),
		ESURL:         os.Getenv("ES_URL"),
		ESUser:        os.Getenv("ES_USER"),
		ESPassword:    os.Getenv("ES_PASSWORD"),
		SearchIndex:   getenvDefault("SEARCH_INDEX", "items"),
		Port:          getenvDefault("SERVER_PORT", "8080"),
		LogLevel:      getenvDefault("LOG_LEVEL", "info"),
	}
}

func configurePool(sqlDB *sql.DB) {
	const (
		maxOpenConns    = 20
		maxIdleConns    = 10
		connMaxLifetime = 30 * time.Minute
		connMaxIdleTime = 5 * time.Minute
	)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
}

// InitDB opens the database named by dsn: a postgres:// URL, or the path of
// an embedded sqlite file otherwise.
func InitDB(ctx context.Context, dsn string) (*gorm.DB, error) {
	usePostgres := strings.HasPrefix(dsn, "postgres://")

	var dial gorm.Dialector
	if usePostgres {
		dial = postgres.Open(dsn)
	} else {
		dial = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dial, &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}

	if usePostgres {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("db handle: %w", err)
		}
		configurePool(sqlDB)

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := sqlDB.PingContext(pingCtx); err != nil {
			return nil, fmt.Errorf("db ping: %w", err)
		}
	}

	if err := db.AutoMigrate(&models.Item{}, &models.User{}, &models.CartItem{}, &models.RefreshToken{}); err != nil {
		return nil, fmt.Errorf("db migrate: %w", err)
	}

	return db, nil
}
