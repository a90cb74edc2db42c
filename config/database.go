package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"hotel-manager/models"
)

func getDBConfigByEnv(cfg *Config) (string, error) {
	if cfg.DatabaseURL != "" {
		return cfg.DatabaseURL, nil
	}

	var user, password, host, port, name string

	switch cfg.Env {
	case "dev", "test":
		user = os.Getenv("DEV_DB_USER")
		password = os.Getenv("DEV_DB_PASSWORD")
		host = os.Getenv("DEV_DB_HOST")
		port = os.Getenv("DEV_DB_PORT")
		name = os.Getenv("DEV_DB_NAME")
	case "qc":
		user = os.Getenv("QC_DB_USER")
		password = os.Getenv("QC_DB_PASSWORD")
		host = os.Getenv("QC_DB_HOST")
		port = os.Getenv("QC_DB_PORT")
		name = os.Getenv("QC_DB_NAME")
	case "prod":
		user = os.Getenv("PROD_DB_USER")
		password = os.Getenv("PROD_DB_PASSWORD")
		host = os.Getenv("PROD_DB_HOST")
		port = os.Getenv("PROD_DB_PORT")
		name = os.Getenv("PROD_DB_NAME")
	default:
		return "", fmt.Errorf("unknown environment: %s", cfg.Env)
	}

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		host, user, password, name, port, cfg.DBSSLMode, cfg.DBTimeZone), nil
}

func gormConfig(env string) *gorm.Config {
	level := gormlogger.Warn
	if env == "dev" {
		level = gormlogger.Info
	}
	return &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// ConnectDB opens the database selected by DB_DRIVER (postgres or sqlite)
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	if cfg.DBDriver == "sqlite" {
		db, err := OpenSQLite(cfg.SQLitePath, gormConfig(cfg.Env))
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		log.Printf("Connected to sqlite database %s", cfg.SQLitePath)
		return db, nil
	}

	dsn, err := getDBConfigByEnv(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig(cfg.Env))
	if err != nil {
		return nil, fmt.Errorf("fail to connect to db: %w", err)
	}

	log.Println("Successfully connected to db")
	return db, nil
}

// OpenSQLite opens a sqlite database. A single connection keeps writers serialized,
// which is also what in-memory databases need to be shared across goroutines.
func OpenSQLite(dsn string, gc *gorm.Config) (*gorm.DB, error) {
	if gc == nil {
		gc = &gorm.Config{TranslateError: true, Logger: gormlogger.Default.LogMode(gormlogger.Silent)}
	}
	db, err := gorm.Open(sqlite.Open(dsn), gc)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table the application uses
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Room{},
		&models.Reservation{},
	)
}
