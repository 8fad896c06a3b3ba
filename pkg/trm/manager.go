package trm

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrInvalidTx = errors.New("invalid transaction type in context")

// Beginner starts transactions; *pgxpool.Pool is one.
type Beginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

var _ Beginner = (*pgxpool.Pool)(nil)

// Manager runs readers inside a single database snapshot.
type Manager struct {
	db Beginner
}

// New returns a new Transaction Manager
func New(db Beginner) *Manager {
	return &Manager{db: db}
}

// Unique key for TX
type ctxKeyTx struct{}

var TxKey = ctxKeyTx{}

// snapshotOptions gives every read in the transaction the same view of the tables.
var snapshotOptions = pgx.TxOptions{
	IsoLevel:   pgx.RepeatableRead,
	AccessMode: pgx.ReadOnly,
}

// ReadSnapshot executes fn within a read-only repeatable-read transaction.
// A transaction already stored in ctx is reused and left to its owner.
// A transaction started here is always rolled back: nothing is ever written.
func (m *Manager) ReadSnapshot(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) (err error) {
	if v := ctx.Value(TxKey); v != nil {
		tx, ok := v.(pgx.Tx)
		if !ok {
			return ErrInvalidTx
		}
		return fn(ctx, tx)
	}

	tx, err := m.db.BeginTx(ctx, snapshotOptions)
	if err != nil {
		return fmt.Errorf("failed to start snapshot transaction: %w", err)
	}
	ctx = WithTx(ctx, tx)

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			panic(p)
		}
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) && err == nil {
			err = fmt.Errorf("failed to rollback tx: %w", rbErr)
		}
	}()

	return fn(ctx, tx)
}

// WithTx stores tx in ctx so nested readers join it.
func WithTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, TxKey, tx)
}
