package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewMySQL returns a connected GORM DB instance. Query logging follows the
// runtime mode: full statements in development, warnings only in production.
func NewMySQL(dsn string, production bool) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevelFor(production)),
	})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}

func logLevelFor(production bool) logger.LogLevel {
	if production {
		return logger.Warn
	}
	return logger.Info
}
