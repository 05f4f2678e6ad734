package initializers

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newGormLogger reports slow queries and real failures. Lookups that find
// nothing are an expected outcome for callers and are not logged.
func newGormLogger(w io.Writer) logger.Interface {
	return logger.New(log.New(w, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// ConnectToDB opens the database named by DBDriver/DBURL. sqlite is used for
// local runs and tests; it is limited to one connection so in-memory
// databases are shared by every query.
func ConnectToDB(cfg Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{Logger: newGormLogger(os.Stdout)}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.DBDriver {
	case "sqlite":
		dsn := cfg.DBURL
		if dsn == "" {
			dsn = "file:farmlink.db?_foreign_keys=on"
		}
		db, err = gorm.Open(sqlite.Open(dsn), gormConfig)
		if err == nil {
			sqlDB, dbErr := db.DB()
			if dbErr != nil {
				return nil, dbErr
			}
			sqlDB.SetMaxOpenConns(1)
		}
	case "mysql", "":
		if cfg.DBURL == "" {
			return nil, fmt.Errorf("DB_URL is required for mysql")
		}
		db, err = gorm.Open(mysql.Open(cfg.DBURL), gormConfig)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("Connected to database", "driver", cfg.DBDriver)
	return db, nil
}
