package database

import (
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"kazanion/config"
)

// 支持的驱动名称
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// NewConnection 按配置的驱动创建数据库连接
func NewConnection(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dsn, err := buildDSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Connect(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		// 内存库每个连接都是独立的数据库
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(orDefault(cfg.MaxOpenConns, 25))
		db.SetMaxIdleConns(orDefault(cfg.MaxIdleConns, 10))
		db.SetConnMaxLifetime(5 * time.Minute)
		db.SetConnMaxIdleTime(5 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	return db, nil
}

// buildDSN 构建DSN (Data Source Name)
func buildDSN(cfg config.DatabaseConfig) (string, error) {
	if cfg.DSN != "" {
		return cfg.DSN, nil
	}
	switch cfg.Driver {
	case DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=true&loc=Local&clientFoundRows=true",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName), nil
	case DriverPostgres:
		return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName), nil
	case DriverSQLite:
		return fmt.Sprintf("file:%s.db?_foreign_keys=on&_busy_timeout=5000", cfg.DBName), nil
	default:
		return "", fmt.Errorf("不支持的数据库驱动: %s", cfg.Driver)
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
