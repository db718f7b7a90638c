package configs

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	maxRetries = 10
	retryDelay = 5 * time.Second
)

func Dialect(env ENV) (gorm.Dialector, error) {
	switch env.DBType {
	case "mysql":
		return mysql.Open(fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC&clientFoundRows=true",
			env.DBUser, env.DBPass, env.DBHost, env.DBPort, env.DBName,
		)), nil
	case "postgres":
		return postgres.Open(fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			env.DBHost, env.DBUser, env.DBPass, env.DBName, env.DBPort, env.DBSSL,
		)), nil
	case "sqlite":
		return sqlite.Open(env.DBName + ".db"), nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", env.DBType)
	}
}

// OpenConnection opens the database and pings it, retrying while the server
// comes up.
func OpenConnection(env ENV, logger *zap.Logger) (*gorm.DB, error) {
	dialector, err := Dialect(env)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		logger.Info("connecting to database",
			zap.String("type", env.DBType),
			zap.String("host", env.DBHost),
			zap.Int("attempt", i+1),
		)

		db, err := gorm.Open(dialector, &gorm.Config{
			Logger: NewGormLogger(logger),
			NowFunc: func() time.Time {
				return time.Now().UTC()
			},
		})
		if err == nil {
			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				pingErr = sqlDB.Ping()
				if pingErr == nil {
					logger.Info("database connection successful")
					return db, nil
				}
			}
			lastErr = pingErr
			logger.Warn("failed to ping database", zap.Error(pingErr), zap.Duration("retry_in", retryDelay))
		} else {
			lastErr = err
			logger.Warn("failed to open database", zap.Error(err), zap.Duration("retry_in", retryDelay))
		}

		time.Sleep(retryDelay)
	}

	return nil, fmt.Errorf("failed to connect to the database after %d retries: %w", maxRetries, lastErr)
}
