package database

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"time"

	"shipops-app/config"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var validDBName = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// NewGormConfig logger gorm hanya menampilkan warning dan query lambat
func NewGormConfig() *gorm.Config {
	gormLogger := logger.New(
		log.New(os.Stdout, "[GORM] ", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
	return &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	}
}

func getDSNAndDialector(dbName string) (string, gorm.Dialector, error) {
	switch config.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			config.DBHost, config.DBUser, config.DBPassword, dbName, config.DBPort)
		return dsn, postgres.Open(dsn), nil
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			config.DBUser, config.DBPassword, config.DBHost, config.DBPort, dbName)
		return dsn, mysql.Open(dsn), nil
	case "mssql":
		dsn := fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=%s",
			config.DBUser, config.DBPassword, config.DBHost, config.DBPort, dbName)
		return dsn, sqlserver.Open(dsn), nil
	case "sqlite":
		dsn := config.DBPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
		return dsn, sqlite.Open(dsn), nil
	default:
		return "", nil, fmt.Errorf("unsupported DB_DRIVER: %s", config.DBDriver)
	}
}

// OpenDatabase membuka koneksi ke database utama aplikasi
func OpenDatabase() (*gorm.DB, error) {
	return OpenDatabaseConnection(config.DBName)
}

func OpenDatabaseConnection(dbName string) (*gorm.DB, error) {
	_, dialector, err := getDSNAndDialector(dbName)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, NewGormConfig())
	if err != nil {
		return nil, fmt.Errorf("open %s database %s: %w", config.DBDriver, dbName, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if config.DBDriver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	return db, nil
}

// EnsureDatabaseExists membuat database kalau belum ada. sqlite membuat file sendiri.
func EnsureDatabaseExists(dbName string) error {
	if !validDBName.MatchString(dbName) {
		return fmt.Errorf("invalid database name: %q", dbName)
	}

	var dialector gorm.Dialector
	// Connect tanpa nama database
	switch config.DBDriver {
	case "postgres":
		dialector = postgres.Open(fmt.Sprintf("host=%s user=%s password=%s dbname=postgres port=%s sslmode=disable",
			config.DBHost, config.DBUser, config.DBPassword, config.DBPort))
	case "mysql":
		dialector = mysql.Open(fmt.Sprintf("%s:%s@tcp(%s:%s)/?charset=utf8mb4&parseTime=True&loc=Local",
			config.DBUser, config.DBPassword, config.DBHost, config.DBPort))
	case "mssql":
		dialector = sqlserver.Open(fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=master",
			config.DBUser, config.DBPassword, config.DBHost, config.DBPort))
	case "sqlite":
		return nil
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", config.DBDriver)
	}

	db, err := gorm.Open(dialector, NewGormConfig())
	if err != nil {
		return fmt.Errorf("connect to DB server: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	exists, err := checkDatabaseExists(db, dbName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	log.Printf("Database %s belum ada, membuat database baru", dbName)
	return db.Exec("CREATE DATABASE " + dbName).Error
}

func checkDatabaseExists(db *gorm.DB, dbName string) (bool, error) {
	var count int64
	switch config.DBDriver {
	case "postgres":
		err := db.Raw("SELECT COUNT(*) FROM pg_database WHERE datname = ?", dbName).Scan(&count).Error
		return count > 0, err
	case "mysql":
		err := db.Raw("SELECT COUNT(*) FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?", dbName).Scan(&count).Error
		return count > 0, err
	case "mssql":
		err := db.Raw("SELECT COUNT(*) FROM master.sys.databases WHERE name = ?", dbName).Scan(&count).Error
		return count > 0, err
	default:
		return false, fmt.Errorf("unsupported DB driver")
	}
}
