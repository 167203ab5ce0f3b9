package handler

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// handlerMockDB implements core.DB for handler tests.
type handlerMockDB struct {
	mock.Mock
}

func (m *handlerMockDB) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgconn.CommandTag), args.Error(1)
}

func (m *handlerMockDB) Query(ctx context.Context, sql string, arguments ...any) (pgx.Rows, error) {
	args := m.Called(ctx, sql, arguments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Rows), args.Error(1)
}

func (m *handlerMockDB) QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgx.Row)
}

func (m *handlerMockDB) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

// handlerMockTx implements the parts of pgx.Tx the services use.
type handlerMockTx struct {
	pgx.Tx
	mock.Mock
}

func (m *handlerMockTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgconn.CommandTag), args.Error(1)
}

func (m *handlerMockTx) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *handlerMockTx) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// handlerMockRow implements pgx.Row.
type handlerMockRow struct {
	scanFunc func(dest ...any) error
}

func (m *handlerMockRow) Scan(dest ...any) error {
	return m.scanFunc(dest...)
}

// handlerMockRows implements pgx.Rows, one scan function per row.
type handlerMockRows struct {
	pgx.Rows
	idx       int
	scanFuncs []func(dest ...any) error
}

func (m *handlerMockRows) Next() bool { return m.idx < len(m.scanFuncs) }

func (m *handlerMockRows) Scan(dest ...any) error {
	fn := m.scanFuncs[m.idx]
	m.idx++
	return fn(dest...)
}

func (m *handlerMockRows) Err() error { return nil }
func (m *handlerMockRows) Close()     {}
