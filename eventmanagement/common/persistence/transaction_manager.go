// Package persistence manages one database/sql transaction at a time for operations that must be atomic.
package persistence

import (
	"context"
	"database/sql"
	"errors"
	"sync"
)

var (
	ErrNilDB               = errors.New("database must not be nil")
	ErrTransactionActive   = errors.New("a transaction is already active")
	ErrNoActiveTransaction = errors.New("no active transaction")
	ErrBeginTransaction    = errors.New("beginning transaction failed")
	ErrCommitTransaction   = errors.New("committing transaction failed")
	ErrRollbackTransaction = errors.New("rolling back transaction failed")
)

// TransactionManager owns at most one active *sql.Tx. It is safe for concurrent use.
type TransactionManager struct {
	db *sql.DB
	mu sync.Mutex
	tx *sql.Tx
}

func NewTransactionManager(db *sql.DB) (*TransactionManager, error) {
	if db == nil {
		return nil, ErrNilDB
	}

	return &TransactionManager{db: db}, nil
}

// Begin starts a transaction, only one can be active at a time.
func (m *TransactionManager) Begin(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.tx != nil {
		return ErrTransactionActive
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Join(ErrBeginTransaction, err)
	}

	m.tx = tx

	return nil
}

func (m *TransactionManager) Commit() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.tx == nil {
		return ErrNoActiveTransaction
	}

	tx := m.tx
	m.tx = nil

	if err := tx.Commit(); err != nil {
		return errors.Join(ErrCommitTransaction, err)
	}

	return nil
}

// RollbackIfActive rolls back the active transaction, it does nothing if there is none.
func (m *TransactionManager) RollbackIfActive() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.tx == nil {
		return nil
	}

	tx := m.tx
	m.tx = nil

	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return errors.Join(ErrRollbackTransaction, err)
	}

	return nil
}

// Tx returns the active transaction or nil.
func (m *TransactionManager) Tx() *sql.Tx {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.tx
}

func (m *TransactionManager) Active() bool {
	return m.Tx() != nil
}

// Close rolls back a dangling transaction. The database stays open.
func (m *TransactionManager) Close() error {
	return m.RollbackIfActive()
}
