package testutil

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/horizon/internal/db"
)

// ErrInjected is returned by FailOnNthExecUoW when Err is unset.
var ErrInjected = errors.New("injected exec failure")

// FailOnNthExecUoW runs each unit of work through the real SQLite unit of
// work, but the FailOn-th ExecContext call (counting from 1) fails with Err.
// Reads are not counted. Use it to prove multi-write operations roll back.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn db.TxFunc) error {
	injected := u.Err
	if injected == nil {
		injected = ErrInjected
	}
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingExec{DBTX: tx, failOn: u.FailOn, err: injected})
	})
}

// failingExec is only used from one goroutine per transaction.
type failingExec struct {
	db.DBTX
	calls  int
	failOn int
	err    error
}

func (f *failingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.calls++
	if f.calls == f.failOn {
		return nil, fmt.Errorf("exec #%d: %w", f.calls, f.err)
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
