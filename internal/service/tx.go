package service

import (
	"context"
	"database/sql"
	"time"
)

// TxRunner wraps a workflow body in a single atomic unit. On a nil
// return from fn the transaction commits; on any error it rolls back
// and the originating error is re-raised to the caller. Runners do
// not retry: retries are the caller's responsibility and must
// re-validate preconditions, since uniqueness checks may have
// changed.
type TxRunner interface {
	InTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

// txState tracks the lifecycle of one transactional unit:
// Idle -> InProgress -> Committed | RolledBack. Both end states are
// terminal; a rolled-back unit never commits and vice versa.
type txState int

const (
	txIdle txState = iota
	txInProgress
	txCommitted
	txRolledBack
)

// txn is one unit of work in flight.
type txn struct {
	tx    *sql.Tx
	state txState
}

// rollback aborts the unit if it is still in progress. Safe to call
// after commit; it then does nothing.
func (t *txn) rollback() {
	if t.state == txInProgress {
		_ = t.tx.Rollback()
		t.state = txRolledBack
	}
}

// commit finalizes the unit. Only an in-progress unit can commit.
func (t *txn) commit() error {
	if t.state != txInProgress {
		return sql.ErrTxDone
	}
	if err := t.tx.Commit(); err != nil {
		t.state = txRolledBack
		return err
	}
	t.state = txCommitted
	return nil
}

// Coordinator is the TxRunner backed by the MySQL pool. Each InTx
// call opens exactly one transaction; transactions never nest.
// Every unit runs under a bounded context so that an unresponsive
// store fails with the Timeout kind instead of hanging the request.
type Coordinator struct {
	DB      *sql.DB
	Timeout time.Duration
}

// NewCoordinator returns a Coordinator with the given per-unit
// timeout. A zero timeout disables the bound.
func NewCoordinator(db *sql.DB, timeout time.Duration) *Coordinator {
	return &Coordinator{DB: db, Timeout: timeout}
}

// InTx runs fn inside one transaction. Validation failures inside fn
// abort the unit before any write commits; no partial state is ever
// visible to other readers.
func (c *Coordinator) InTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return storeErr(err)
	}
	t := &txn{tx: tx, state: txInProgress}
	defer t.rollback()

	if err := fn(tx); err != nil {
		t.rollback()
		// re-raise the originating error unchanged
		return err
	}
	if err := t.commit(); err != nil {
		return storeErr(err)
	}
	return nil
}

var _ TxRunner = (*Coordinator)(nil)
