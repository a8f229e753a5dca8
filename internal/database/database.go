// Package database handles database connections and migrations.
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"notewall/internal/config"
	"notewall/internal/logger"
	"notewall/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormZapLogger routes GORM logs through the application's zap logger.
type GormZapLogger struct {
	Config gormlogger.Config
}

// LogMode sets the logging level and returns a new interface instance.
func (l *GormZapLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	newlogger := *l
	newlogger.Config.LogLevel = level
	return &newlogger
}

// Info logs an informational message.
func (l *GormZapLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.Config.LogLevel >= gormlogger.Info {
		logger.S.Infof(msg, data...)
	}
}

// Warn logs a warning message.
func (l *GormZapLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.Config.LogLevel >= gormlogger.Warn {
		logger.S.Warnf(msg, data...)
	}
}

func (l *GormZapLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.Config.LogLevel >= gormlogger.Error {
		logger.S.Errorf(msg, data...)
	}
}

// Trace logs SQL statements together with execution time.
func (l *GormZapLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.Config.LogLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && l.Config.LogLevel >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		logger.L.Error("query error",
			zap.String("sql", sql),
			zap.Int64("rows", rows),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
	case elapsed > l.Config.SlowThreshold && l.Config.SlowThreshold != 0 && l.Config.LogLevel >= gormlogger.Warn:
		logger.L.Warn("slow query",
			zap.String("sql", sql),
			zap.Int64("rows", rows),
			zap.Duration("elapsed", elapsed),
		)
	case l.Config.LogLevel >= gormlogger.Info:
		logger.L.Debug("query",
			zap.String("sql", sql),
			zap.Int64("rows", rows),
			zap.Duration("elapsed", elapsed),
		)
	}
}

// Models lists every persisted entity in migration order.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Tag{},
		&models.Note{},
		&models.Comment{},
		&models.Vote{},
		&models.Report{},
		&models.Notification{},
		&models.Favorite{},
	}
}

// Connect opens a database connection using the provided configuration and returns the gorm DB instance.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	sslMode := cfg.DBSSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		sslMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: &GormZapLogger{Config: gormlogger.Config{
			SlowThreshold: 500 * time.Millisecond,
			LogLevel:      gormlogger.Warn,
		}},
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(Models()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.L.Info("database connected and migrated")
	return db, nil
}
