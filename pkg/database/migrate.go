package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

//go:embed migrations
var migrationFS embed.FS

// dialectDir 驱动对应的迁移目录
func dialectDir(driver string) (string, error) {
	switch driver {
	case DriverMySQL:
		return "migrations/mysql", nil
	case DriverPostgres:
		return "migrations/postgres", nil
	case DriverSQLite:
		return "migrations/sqlite", nil
	default:
		return "", fmt.Errorf("不支持的数据库驱动: %s", driver)
	}
}

// Migrate 按文件名顺序执行当前驱动的建表脚本，脚本本身可重复执行
func Migrate(ctx context.Context, db *sqlx.DB) error {
	dir, err := dialectDir(db.DriverName())
	if err != nil {
		return err
	}

	entries, err := fs.ReadDir(migrationFS, dir)
	if err != nil {
		return fmt.Errorf("读取迁移目录失败: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		raw, err := migrationFS.ReadFile(dir + "/" + name)
		if err != nil {
			return fmt.Errorf("读取迁移文件 %s 失败: %w", name, err)
		}
		for _, stmt := range splitStatements(string(raw)) {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("执行迁移 %s 失败: %w", name, err)
			}
		}
	}
	return nil
}

// splitStatements 按分号拆分脚本，忽略注释行和空语句
func splitStatements(script string) []string {
	var b strings.Builder
	for _, line := range strings.Split(script, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	var stmts []string
	for _, part := range strings.Split(b.String(), ";") {
		if s := strings.TrimSpace(part); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
