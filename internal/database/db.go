package database

import (
	"errors"
	"sync"
	"time"

	"quizgen/config"
	"quizgen/pkg/logger"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// ErrDisabled is returned by GetDB when database.enabled is false.
var ErrDisabled = errors.New("database is disabled")

var (
	DB *gorm.DB
	mu sync.Mutex
)

// connect opens the DB, registers read replicas and applies pool configuration
func connect() (*gorm.DB, error) {
	cfg := config.Cfg.Database

	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}
	if config.Cfg.LogLevel == config.Debug {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}
	db, err := gorm.Open(mysql.Open(config.Cfg.Dns), gormCfg)
	if err != nil {
		return nil, err
	}

	if len(cfg.Replicas) > 0 {
		replicas := make([]gorm.Dialector, 0, len(cfg.Replicas))
		for _, dsn := range cfg.Replicas {
			replicas = append(replicas, mysql.Open(dsn))
		}
		resolver := dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		})
		if err := db.Use(resolver); err != nil {
			return nil, err
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	lifetime := time.Duration(cfg.MaxLifetime) * time.Minute
	sqlDB.SetConnMaxIdleTime(lifetime)
	sqlDB.SetConnMaxLifetime(lifetime)

	return db, nil
}

// ensureConnection verifies DB connectivity and reconnects if needed
func ensureConnection() error {
	if DB != nil {
		sqlDB, err := DB.DB()
		if err == nil && sqlDB.Ping() == nil {
			return nil
		}
		logger.Warn("database: connection lost, reconnecting")
	}
	db, err := connect()
	if err != nil {
		logger.Error(err, "database: failed to connect to database")
		return err
	}
	DB = db
	return nil
}

// GetDB returns a healthy *gorm.DB, connecting on first use
func GetDB() (*gorm.DB, error) {
	if !config.Cfg.Database.Enabled {
		return nil, ErrDisabled
	}
	mu.Lock()
	defer mu.Unlock()
	if err := ensureConnection(); err != nil {
		return nil, err
	}
	return DB, nil
}

// Close releases the pool, if one was opened.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	DB = nil
	return sqlDB.Close()
}
