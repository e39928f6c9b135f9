package db

import (
	"context"
	"database/sql"
	"log"
	"time"

	"eco3/configs"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Db struct {
	DB *gorm.DB
}

func NewDb(cfg *configs.Config) *Db {
	base, err := openWithRetry(cfg.DSN(), 8, 2*time.Second)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	sqlDB, _ := base.DB()
	sqlDB.SetMaxOpenConns(40)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return &Db{DB: base}
}

// openWithRetry backs off exponentially (capped at 8s) until the
// database answers a ping.
func openWithRetry(dsn string, attempts int, sleep time.Duration) (*gorm.DB, error) {
	var last error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			time.Sleep(sleep)
			if sleep < 8*time.Second {
				sleep *= 2
			}
		}
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err != nil {
			last = err
			continue
		}
		sqlDB, err := db.DB()
		if err != nil {
			last = err
			continue
		}
		if err := ping(sqlDB, 2*time.Second); err != nil {
			last = err
			continue
		}
		return db, nil
	}
	return nil, last
}

func ping(sqlDB *sql.DB, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
