package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/talkincode/toughcrm/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqliteMemory = ":memory:"

// getDatabase opens the configured database and applies the pool settings.
// It panics when the connection cannot be established.
func getDatabase(cfg config.DBConfig, workdir string) *gorm.DB {
	dialector, err := getDialector(cfg, workdir)
	if err != nil {
		panic(err)
	}

	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:      logger.Default.LogMode(logLevel),
		PrepareStmt: false,
	})
	if err != nil {
		panic(fmt.Errorf("open %s database: %w", cfg.Type, err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	if isSqlite(cfg.Type) {
		// sqlite serialises writers; one connection also keeps :memory: databases shared
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxConn)
		sqlDB.SetMaxIdleConns(cfg.IdleConn)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}
	return db
}

func getDialector(cfg config.DBConfig, workdir string) (gorm.Dialector, error) {
	switch strings.ToLower(cfg.Type) {
	case "postgres", "":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			cfg.Host, cfg.Port, cfg.User, cfg.Passwd, cfg.Name)
		return postgres.Open(dsn), nil
	case "sqlite", "sqlite3":
		path := sqlitePath(cfg.Name, workdir)
		if path != sqliteMemory {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, err
			}
		}
		return sqlite.Open(path), nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.Type)
	}
}

// sqlitePath resolves a database name to a file under <workdir>/data.
func sqlitePath(name, workdir string) string {
	switch {
	case name == "" || name == sqliteMemory:
		return sqliteMemory
	case filepath.IsAbs(name):
		return name
	case strings.HasSuffix(name, ".db"):
		return filepath.Join(workdir, "data", name)
	default:
		return filepath.Join(workdir, "data", name+".db")
	}
}

func isSqlite(dbtype string) bool {
	t := strings.ToLower(dbtype)
	return t == "sqlite" || t == "sqlite3"
}
