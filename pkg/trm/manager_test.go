package trm

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct {
	pgx.Tx
	rollbackErr error
	rolledBack  int
}

func (f *fakeTx) Rollback(context.Context) error {
	f.rolledBack++
	return f.rollbackErr
}

type fakeBeginner struct {
	tx   *fakeTx
	err  error
	opts []pgx.TxOptions
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
	b.opts = append(b.opts, opts)
	if b.err != nil {
		return nil, b.err
	}
	return b.tx, nil
}

func TestReadSnapshot_NewTransaction(t *testing.T) {
	tx := &fakeTx{}
	db := &fakeBeginner{tx: tx}

	var inCtx any
	err := New(db).ReadSnapshot(context.Background(), func(ctx context.Context, got pgx.Tx) error {
		assert.Same(t, tx, got)
		inCtx = ctx.Value(TxKey)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []pgx.TxOptions{{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}}, db.opts)
	assert.Same(t, tx, inCtx)
	assert.Equal(t, 1, tx.rolledBack)
}

func TestReadSnapshot_BeginError(t *testing.T) {
	refused := errors.New("connection refused")

	err := New(&fakeBeginner{err: refused}).ReadSnapshot(context.Background(), func(context.Context, pgx.Tx) error {
		t.Fatal("fn must not run")
		return nil
	})
	assert.ErrorIs(t, err, refused)
}

func TestReadSnapshot_RollbackError(t *testing.T) {
	rbErr := errors.New("conn lost")
	fnErr := errors.New("query failed")

	tests := []struct {
		name        string
		rollbackErr error
		fnErr       error
		want        error
	}{
		{name: "reported when fn succeeds", rollbackErr: rbErr, want: rbErr},
		{name: "fn error wins", rollbackErr: rbErr, fnErr: fnErr, want: fnErr},
		{name: "closed tx ignored", rollbackErr: pgx.ErrTxClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &fakeTx{rollbackErr: tt.rollbackErr}
			err := New(&fakeBeginner{tx: tx}).ReadSnapshot(context.Background(), func(context.Context, pgx.Tx) error {
				return tt.fnErr
			})

			assert.Equal(t, 1, tx.rolledBack)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestReadSnapshot_PanicRollsBack(t *testing.T) {
	tx := &fakeTx{}

	assert.PanicsWithValue(t, "boom", func() {
		_ = New(&fakeBeginner{tx: tx}).ReadSnapshot(context.Background(), func(context.Context, pgx.Tx) error {
			panic("boom")
		})
	})
	assert.Equal(t, 1, tx.rolledBack)
}

func TestReadSnapshot_ReusesContextTx(t *testing.T) {
	outer := &fakeTx{}
	ctx := WithTx(context.Background(), outer)
	db := &fakeBeginner{}

	var got pgx.Tx
	err := New(db).ReadSnapshot(ctx, func(_ context.Context, tx pgx.Tx) error {
		got = tx
		return nil
	})

	require.NoError(t, err)
	assert.Same(t, outer, got)
	assert.Empty(t, db.opts)
	assert.Zero(t, outer.rolledBack, "the owner of an outer transaction ends it")
}

func TestReadSnapshot_PropagatesError(t *testing.T) {
	ctx := WithTx(context.Background(), &fakeTx{})
	boom := errors.New("boom")

	err := New(nil).ReadSnapshot(ctx, func(context.Context, pgx.Tx) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestReadSnapshot_InvalidTx(t *testing.T) {
	ctx := context.WithValue(context.Background(), TxKey, "not a tx")

	err := New(nil).ReadSnapshot(ctx, func(context.Context, pgx.Tx) error {
		t.Fatal("fn must not run")
		return nil
	})
	assert.ErrorIs(t, err, ErrInvalidTx)
}
