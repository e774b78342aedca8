package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"mylibrary/internal/adapters/cache"
	"mylibrary/internal/adapters/persistence/models"
	"mylibrary/internal/pkg/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCache is an in-memory Cache used to test the decorator without redis
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (c *memCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	val, ok := c.data[key]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return val, nil
}

func (c *memCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.data, key)
	}
	return nil
}

func (c *memCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.data {
		if strings.HasPrefix(key, prefix) {
			delete(c.data, key)
		}
	}
	return nil
}

// countingBookService counts delegate calls to prove cache hits skip the store
type countingBookService struct {
	BookService
	getCalls  int
	listCalls int
}

func (s *countingBookService) GetBookByID(ctx context.Context, id uint) (*models.BookResponse, error) {
	s.getCalls++
	return s.BookService.GetBookByID(ctx, id)
}

func (s *countingBookService) GetAllBooks(ctx context.Context, page, size int) (*pagination.Result, error) {
	s.listCalls++
	return s.BookService.GetAllBooks(ctx, page, size)
}

func newCachedFixture(books ...*models.Book) (*CachedBookService, *countingBookService, *memCache) {
	delegate := &countingBookService{BookService: NewBookService(newFakeBookStore(books...))}
	mc := newMemCache()
	return NewCachedBookService(delegate, mc, time.Minute), delegate, mc
}

func TestCachedGetBookByID_SecondReadHitsCache(t *testing.T) {
	svc, delegate, _ := newCachedFixture(&models.Book{ID: 1, Title: "A", Author: "B", ISBN: "1"})

	first, err := svc.GetBookByID(context.Background(), 1)
	require.NoError(t, err)
	second, err := svc.GetBookByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, delegate.getCalls)
}

// wrappedMissCache reports misses wrapped in another error, as a redis client
// behind a retry layer would
type wrappedMissCache struct {
	*memCache
}

func (c *wrappedMissCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.memCache.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return val, nil
}

func TestCachedGetBookByID_WrappedMissReadsThrough(t *testing.T) {
	delegate := &countingBookService{BookService: NewBookService(newFakeBookStore(&models.Book{ID: 1, Title: "A"}))}
	mc := &wrappedMissCache{memCache: newMemCache()}
	svc := NewCachedBookService(delegate, mc, time.Minute)

	book, err := svc.GetBookByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), book.ID)
	assert.Equal(t, 1, delegate.getCalls)

	// the miss was recognized as a miss and the store result cached
	assert.Contains(t, mc.data, bookKey(1))
}

func TestCachedGetBookByID_MissPropagatesError(t *testing.T) {
	svc, _, _ := newCachedFixture()

	_, err := svc.GetBookByID(context.Background(), 42)
	require.Error(t, err)
}

func TestCachedAddBook_PopulatesDetailAndDropsLists(t *testing.T) {
	svc, delegate, mc := newCachedFixture(&models.Book{ID: 1, Title: "A"})

	// warm a list page
	_, err := svc.GetAllBooks(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Equal(t, 1, delegate.listCalls)

	book, err := svc.AddBook(context.Background(), &AddBookInput{Title: "B", Author: "C", ISBN: "2"})
	require.NoError(t, err)

	// detail is served from cache without touching the delegate
	got, err := svc.GetBookByID(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Equal(t, book.ID, got.ID)
	assert.Zero(t, delegate.getCalls)

	// the stale list page was dropped; next list read goes to the store
	_, ok := mc.data[bookListKey(1, 10)]
	assert.False(t, ok)
	result, err := svc.GetAllBooks(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.TotalElements)
	assert.Equal(t, 2, delegate.listCalls)
}

func TestCachedDeleteBook_Evicts(t *testing.T) {
	svc, delegate, _ := newCachedFixture(&models.Book{ID: 1, Title: "A"})

	_, err := svc.GetBookByID(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 1, delegate.getCalls)

	require.NoError(t, svc.DeleteBookByID(context.Background(), 1))

	// read misses the cache and reaches the (now empty) store
	_, err = svc.GetBookByID(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, 2, delegate.getCalls)
}

func TestCachedGetAllBooks_RoundTrip(t *testing.T) {
	svc, delegate, _ := newCachedFixture(
		&models.Book{ID: 1, Title: "A"},
		&models.Book{ID: 2, Title: "B"},
	)

	first, err := svc.GetAllBooks(context.Background(), 1, 10)
	require.NoError(t, err)
	second, err := svc.GetAllBooks(context.Background(), 1, 10)
	require.NoError(t, err)

	assert.Equal(t, 1, delegate.listCalls)
	assert.Equal(t, first.TotalElements, second.TotalElements)
	assert.Equal(t, first.PageNumber, second.PageNumber)

	items, ok := second.Results.([]*models.BookResponse)
	require.True(t, ok)
	assert.Len(t, items, 2)
	assert.Equal(t, "A", items[0].Title)
}
