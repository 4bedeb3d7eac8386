package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// FakeTx 只實作 Commit / Rollback，其餘方法呼叫會 panic
type FakeTx struct {
	pgx.Tx
	Committed  bool
	RolledBack bool
	CommitErr  error
}

func (tx *FakeTx) Commit(ctx context.Context) error {
	if tx.CommitErr != nil {
		return tx.CommitErr
	}
	tx.Committed = true
	return nil
}

func (tx *FakeTx) Rollback(ctx context.Context) error {
	if !tx.Committed {
		tx.RolledBack = true
	}
	return nil
}

type FakeDB struct {
	Tx       *FakeTx
	BeginErr error
	Begins   int
}

func NewFakeDB() *FakeDB {
	return &FakeDB{Tx: &FakeTx{}}
}

func (db *FakeDB) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	db.Begins++
	if db.BeginErr != nil {
		return nil, db.BeginErr
	}
	return db.Tx, nil
}
