package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	"kazanion/internal/apperr"
)

// DBTX 是 *sqlx.DB 和 *sqlx.Tx 的公共方法集
type DBTX interface {
	sqlx.ExtContext
	DriverName() string
	Rebind(query string) string
}

// Page 分页参数
type Page struct {
	Offset int
	Limit  int
}

// base 所有存储库共用的查询辅助，SQL统一用 ? 占位符书写
type base struct {
	q DBTX
}

func (b base) get(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return sqlx.GetContext(ctx, b.q, dest, b.q.Rebind(query), args...)
}

func (b base) selectAll(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return sqlx.SelectContext(ctx, b.q, dest, b.q.Rebind(query), args...)
}

func (b base) exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return b.q.ExecContext(ctx, b.q.Rebind(query), args...)
}

// execAffected 执行语句并返回影响行数
func (b base) execAffected(ctx context.Context, query string, args ...interface{}) (int64, error) {
	res, err := b.exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// insert 执行INSERT并返回自增ID，PostgreSQL 使用 RETURNING
func (b base) insert(ctx context.Context, query string, args ...interface{}) (int64, error) {
	if b.q.DriverName() == "pgx" {
		var id int64
		err := b.q.QueryRowxContext(ctx, b.q.Rebind(query+" RETURNING id"), args...).Scan(&id)
		return id, err
	}

	res, err := b.exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// count 执行 COUNT 查询
func (b base) count(ctx context.Context, query string, args ...interface{}) (int64, error) {
	var n int64
	err := b.get(ctx, &n, query, args...)
	return n, err
}

// notFound 将 sql.ErrNoRows 转换为业务错误
func notFound(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(msg)
	}
	return err
}

// deleteByID 硬删除一行，不存在时返回 NotFound
func (b base) deleteByID(ctx context.Context, table string, id int64, msg string) error {
	n, err := b.execAffected(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound(msg)
	}
	return nil
}

// IsUniqueViolation 判断是否为唯一约束冲突，兼容三种驱动
func IsUniqueViolation(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// Transactor 开启事务
type Transactor struct {
	db *sqlx.DB
}

// NewTransactor 创建事务管理器
func NewTransactor(db *sqlx.DB) *Transactor {
	return &Transactor{db: db}
}

// WithinTx 在事务中执行fn，fn返回错误或panic时回滚
func (t *Transactor) WithinTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

var errNoRows = sql.ErrNoRows
