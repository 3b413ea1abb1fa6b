package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPostgresStorageAdapter_NilPool(t *testing.T) {
	_, err := NewPostgresStorageAdapter(nil, "properties")
	assert.Error(t, err)
}

func TestDescribe_AddsSQLState(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23502", Message: `null value in column "address"`}

	err := describe(pgErr)

	assert.ErrorContains(t, err, "SQLSTATE 23502")
	assert.ErrorContains(t, err, `column "address"`)
	var unwrapped *pgconn.PgError
	require.True(t, errors.As(err, &unwrapped))
}

func TestDescribe_PassesOtherErrors(t *testing.T) {
	plain := errors.New("connection reset")
	assert.Equal(t, plain, describe(plain))
}
