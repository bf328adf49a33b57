package book

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRepository runs the behaviour every Repository implementation shares.
// newRepo must return a repository over an empty books table.
func testRepository(t *testing.T, newRepo func(t *testing.T) Repository) {
	ctx := context.Background()

	t.Run("create then get", func(t *testing.T) {
		repo := newRepo(t)

		created, err := repo.Create(ctx, testBook)
		require.NoError(t, err)
		assert.Equal(t, testBook, created)

		got, err := repo.GetByISBN(ctx, testBook.ISBN)
		require.NoError(t, err)
		assert.Equal(t, testBook, got)
	})

	t.Run("duplicate isbn conflicts", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Create(ctx, testBook)
		require.NoError(t, err)

		_, err = repo.Create(ctx, testBook)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("get missing", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.GetByISBN(ctx, "0")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list ordered by title", func(t *testing.T) {
		repo := newRepo(t)

		books, err := repo.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, books)
		assert.Empty(t, books)

		second := testBook
		second.ISBN = "11111111"
		second.Title = "A First Title"
		_, err = repo.Create(ctx, testBook)
		require.NoError(t, err)
		_, err = repo.Create(ctx, second)
		require.NoError(t, err)

		books, err = repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []Book{second, testBook}, books)
	})

	t.Run("update keeps isbn", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Create(ctx, testBook)
		require.NoError(t, err)

		author, pages := "Updated", 555
		updated, err := repo.Update(ctx, testBook.ISBN, Patch{Author: &author, Pages: &pages})
		require.NoError(t, err)

		want := testBook
		want.Author = author
		want.Pages = pages
		assert.Equal(t, want, updated)

		got, err := repo.GetByISBN(ctx, testBook.ISBN)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("empty patch returns current row", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Create(ctx, testBook)
		require.NoError(t, err)

		got, err := repo.Update(ctx, testBook.ISBN, Patch{})
		require.NoError(t, err)
		assert.Equal(t, testBook, got)
	})

	t.Run("update missing", func(t *testing.T) {
		repo := newRepo(t)

		title := "x"
		_, err := repo.Update(ctx, "0", Patch{Title: &title})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete then get", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Create(ctx, testBook)
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, testBook.ISBN))

		_, err = repo.GetByISBN(ctx, testBook.ISBN)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, testBook.ISBN), ErrNotFound)
	})
}
