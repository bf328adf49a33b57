package book

import (
	"context"
	"os"
	"testing"
	"time"

	"booksapi/internal/platform/database"

	"github.com/stretchr/testify/require"
)

// Set BOOKS_TEST_DSN to a disposable database to run these tests; the books
// table is truncated before each case.
func TestPostgresRepo(t *testing.T) {
	dsn := os.Getenv("BOOKS_TEST_DSN")
	if dsn == "" {
		t.Skip("Skipping integration test: BOOKS_TEST_DSN not set")
	}

	ctx := context.Background()
	pool, err := database.OpenPostgres(ctx, dsn)
	if err != nil {
		t.Skipf("Skipping integration test: cannot connect to test database: %v", err)
	}
	t.Cleanup(pool.Close)

	_, err = database.MigratePostgres(ctx, pool)
	require.NoError(t, err)

	testRepository(t, func(t *testing.T) Repository {
		_, err := pool.Exec(ctx, `TRUNCATE books`)
		require.NoError(t, err)
		return NewPostgresRepo(pool, 2*time.Second)
	})
}
