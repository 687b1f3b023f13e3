package database

import (
	"log"
	"os"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New opens a gorm handle for the configured dialect. The archive and
// library schemas are managed outside this service so no migration is
// performed here.
func New(dialect string, dsn string) (*gorm.DB, error) {
	switch dialect {
	case "postgres":
		return NewPostgres(dsn)
	case "mysql":
		return NewMySQL(dsn)
	default:
		return nil, errors.Errorf("unknown database dialect: %s", dialect)
	}
}

func newGormLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             300 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
}
