package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *sql.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db")
	db, err := Open(context.Background(), DriverSQLite, dsn, Pool{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpenCreatesSchema(t *testing.T) {
	db := openTemp(t)
	for _, table := range []string{"users", "materials"} {
		var n int
		err := db.QueryRow(`SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name=$1`, table).Scan(&n)
		require.NoError(t, err)
		assert.Equal(t, 1, n, table)
	}
	assert.Equal(t, 1, db.Stats().MaxOpenConnections)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "", Pool{})
	assert.Error(t, err)
}

func TestWithTx(t *testing.T) {
	db := openTemp(t)
	ctx := context.Background()
	insert := func(tx *sql.Tx, chapter string) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO materials (subject, chapter) VALUES ($1, $2)`, "FISIKA", chapter)
		return err
	}

	require.NoError(t, WithTx(ctx, db, func(tx *sql.Tx) error { return insert(tx, "kept") }))

	boom := errors.New("boom")
	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		if err := insert(tx, "dropped"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(1) FROM materials`).Scan(&n))
	assert.Equal(t, 1, n)
}
