package services

import (
	"context"
	"testing"

	"mylibrary/internal/adapters/persistence/models"
	"mylibrary/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBookByID(t *testing.T) {
	store := newFakeBookStore(&models.Book{
		ID:     1000,
		Title:  "Patterns of Enterprise Application Architecture",
		Author: "Fowler Martin",
		ISBN:   "B008OHVDFM",
	})
	svc := NewBookService(store)

	book, err := svc.GetBookByID(context.Background(), 1000)
	require.NoError(t, err)

	assert.Equal(t, uint(1000), book.ID)
	assert.Equal(t, "Patterns of Enterprise Application Architecture", book.Title)
	assert.Equal(t, "Fowler Martin", book.Author)
	assert.Equal(t, "B008OHVDFM", book.ISBN)
	assert.False(t, book.IsLoaned)
}

func TestGetBookByID_NotFound(t *testing.T) {
	svc := NewBookService(newFakeBookStore())

	_, err := svc.GetBookByID(context.Background(), 1)
	require.ErrorIs(t, err, domain.ErrBookNotFound)
}

func TestAddBook(t *testing.T) {
	store := newFakeBookStore()
	svc := NewBookService(store)

	book, err := svc.AddBook(context.Background(), &AddBookInput{
		Title:  "Refactoring",
		Author: "Fowler Martin",
		ISBN:   "0134757599",
	})
	require.NoError(t, err)

	assert.NotZero(t, book.ID)
	assert.False(t, book.IsLoaned)

	stored, err := store.GetByID(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Refactoring", stored.Title)
}

func TestDeleteBookByID_Idempotent(t *testing.T) {
	store := newFakeBookStore(&models.Book{ID: 1})
	svc := NewBookService(store)

	require.NoError(t, svc.DeleteBookByID(context.Background(), 1))

	// deleting an id that no longer exists still succeeds
	require.NoError(t, svc.DeleteBookByID(context.Background(), 1))
	require.NoError(t, svc.DeleteBookByID(context.Background(), 999))
}

func TestGetAllBooks(t *testing.T) {
	store := newFakeBookStore(
		&models.Book{ID: 1, Title: "A"},
		&models.Book{ID: 2, Title: "B"},
		&models.Book{ID: 3, Title: "C"},
	)
	svc := NewBookService(store)

	result, err := svc.GetAllBooks(context.Background(), 1, 2)
	require.NoError(t, err)

	items, ok := result.Results.([]*models.BookResponse)
	require.True(t, ok)
	assert.Len(t, items, 2)
	assert.Equal(t, int64(3), result.TotalElements)
	assert.Equal(t, 1, result.PageNumber)
	assert.Equal(t, 2, result.PageSize)
	assert.Equal(t, uint(1), items[0].ID)
	assert.Equal(t, uint(2), items[1].ID)
}

func TestGetAllBooks_Defaults(t *testing.T) {
	svc := NewBookService(newFakeBookStore(&models.Book{ID: 1}))

	// out-of-range params fall back to page 1 / size 10
	result, err := svc.GetAllBooks(context.Background(), 0, -5)
	require.NoError(t, err)

	assert.Equal(t, 1, result.PageNumber)
	assert.Equal(t, 10, result.PageSize)
	assert.Equal(t, int64(1), result.TotalElements)
}
