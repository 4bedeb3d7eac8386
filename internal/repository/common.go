package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// queryRower pool 與 tx 共用的查詢介面
type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}

// updateBuilder 組出動態 UPDATE 的 SET 子句，只包含有給值的欄位
type updateBuilder struct {
	sets   []string
	args   []interface{}
	argPos int
}

func newUpdateBuilder() *updateBuilder {
	return &updateBuilder{argPos: 1}
}

func (b *updateBuilder) set(column string, value interface{}) {
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", column, b.argPos))
	b.args = append(b.args, value)
	b.argPos++
}

func (b *updateBuilder) empty() bool {
	return len(b.sets) == 0
}

// build 產生 UPDATE 語句，最後一個參數固定為 id
func (b *updateBuilder) build(table string, id interface{}, returning string) (string, []interface{}) {
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		table, strings.Join(b.sets, ", "), b.argPos, returning)
	return query, append(b.args, id)
}

// nonNilStrings text[] 欄位為 NOT NULL，nil slice 寫成空陣列
func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
