package db

import (
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqliteParams make every transaction take the write lock at BEGIN and wait
// for it, instead of upgrading a read lock at the first write and failing
// with "database is locked" when another connection got there first.
const sqliteParams = "_txlock=immediate&_busy_timeout=5000&_journal_mode=WAL"

// SQLiteDSN appends sqliteParams to a file path or DSN.
func SQLiteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path + "&" + sqliteParams
	}
	return path + "?" + sqliteParams
}

// Open picks the dialector by driver name: "mysql" uses dsn as a MySQL DSN,
// "sqlite" uses it as a file path.
func Open(driver, dsn string, log *zap.Logger) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch driver {
	case "sqlite":
		dial = sqlite.Open(SQLiteDSN(dsn))
	default:
		dial = mysql.Open(dsn)
	}
	db, err := OpenGormWithDialector(dial)
	if err != nil {
		return nil, err
	}
	if log != nil {
		log.Info("gorm: connected", zap.String("driver", db.Dialector.Name()))
	}
	return db, nil
}

func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// surface unique violations as gorm.ErrDuplicatedKey
		TranslateError: true,
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}
