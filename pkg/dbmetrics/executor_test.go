package dbmetrics

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTx struct {
	queries []string
	execErr error
}

func (r *recordingTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	r.queries = append(r.queries, query)
	return nil, r.execErr
}

func (r *recordingTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (r *recordingTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (r *recordingTx) Commit() error   { return nil }
func (r *recordingTx) Rollback() error { return nil }

func TestWithSavepoint_ReleasedOnSuccess(t *testing.T) {
	tx := &recordingTx{}
	ctx := WithTx(context.Background(), tx)

	err := WithSavepoint(ctx, "step", func(ctx context.Context) error {
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"SAVEPOINT step", "RELEASE SAVEPOINT step"}, tx.queries)
}

func TestWithSavepoint_RolledBackOnError(t *testing.T) {
	tx := &recordingTx{}
	ctx := WithTx(context.Background(), tx)

	sentinel := errors.New("slot taken")
	err := WithSavepoint(ctx, "step", func(ctx context.Context) error {
		return sentinel
	})

	// Класс исходной ошибки сохраняется для вызывающего
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, []string{"SAVEPOINT step", "ROLLBACK TO SAVEPOINT step"}, tx.queries)
}

func TestWithSavepoint_NoTransaction(t *testing.T) {
	called := false
	err := WithSavepoint(context.Background(), "step", func(ctx context.Context) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}
