package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"mylibrary/internal/adapters/cache"
	"mylibrary/internal/adapters/persistence/models"
	"mylibrary/internal/pkg/pagination"
)

// Cache key layout
const (
	bookKeyPrefix     = "books:"
	bookListKeyPrefix = "books:all:"
)

// CachedBookService decorates a BookService with a read-side cache.
// GetBookByID and GetAllBooks read through the cache; writes populate or drop
// the affected keys. Cache failures are logged and fall back to the store, so
// a dead redis degrades to DefaultBookService behavior.
type CachedBookService struct {
	delegate BookService
	cache    cache.Cache
	ttl      time.Duration
}

// NewCachedBookService creates a caching decorator over delegate
func NewCachedBookService(delegate BookService, c cache.Cache, ttl time.Duration) *CachedBookService {
	return &CachedBookService{
		delegate: delegate,
		cache:    c,
		ttl:      ttl,
	}
}

// GetBookByID returns a book by ID, from cache when possible
func (s *CachedBookService) GetBookByID(ctx context.Context, id uint) (*models.BookResponse, error) {
	key := bookKey(id)

	if data, err := s.cache.Get(ctx, key); err == nil {
		var book models.BookResponse
		if err := json.Unmarshal(data, &book); err == nil {
			return &book, nil
		}
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		log.Printf("⚠️ Book cache read failed for %s: %v", key, err)
	}

	book, err := s.delegate.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.store(ctx, key, book)
	return book, nil
}

// AddBook creates a new book, populates its detail key and drops stale list pages
func (s *CachedBookService) AddBook(ctx context.Context, input *AddBookInput) (*models.BookResponse, error) {
	book, err := s.delegate.AddBook(ctx, input)
	if err != nil {
		return nil, err
	}

	s.store(ctx, bookKey(book.ID), book)
	if err := s.cache.DeleteByPrefix(ctx, bookListKeyPrefix); err != nil {
		log.Printf("⚠️ Book list cache invalidation failed: %v", err)
	}

	return book, nil
}

// DeleteBookByID removes a book and evicts it from the cache
func (s *CachedBookService) DeleteBookByID(ctx context.Context, id uint) error {
	if err := s.delegate.DeleteBookByID(ctx, id); err != nil {
		return err
	}

	if err := s.cache.Delete(ctx, bookKey(id)); err != nil {
		log.Printf("⚠️ Book cache eviction failed for id %d: %v", id, err)
	}
	if err := s.cache.DeleteByPrefix(ctx, bookListKeyPrefix); err != nil {
		log.Printf("⚠️ Book list cache invalidation failed: %v", err)
	}

	return nil
}

// cachedBookList mirrors pagination.Result with a concrete item type so a
// cached page unmarshals back into typed book projections
type cachedBookList struct {
	Results       []*models.BookResponse `json:"results"`
	TotalElements int64                  `json:"totalElements"`
	PageNumber    int                    `json:"pageNumber"`
	PageSize      int                    `json:"pageSize"`
}

// GetAllBooks returns a page of books, from cache when possible
func (s *CachedBookService) GetAllBooks(ctx context.Context, page, size int) (*pagination.Result, error) {
	params := pagination.New(page, size)
	key := bookListKey(params.Page, params.Size)

	if data, err := s.cache.Get(ctx, key); err == nil {
		var list cachedBookList
		if err := json.Unmarshal(data, &list); err == nil {
			return pagination.NewResult(list.Results, list.TotalElements, list.PageNumber, list.PageSize), nil
		}
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		log.Printf("⚠️ Book list cache read failed for %s: %v", key, err)
	}

	result, err := s.delegate.GetAllBooks(ctx, params.Page, params.Size)
	if err != nil {
		return nil, err
	}

	s.store(ctx, key, result)
	return result, nil
}

func (s *CachedBookService) store(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		log.Printf("⚠️ Book cache write failed for %s: %v", key, err)
	}
}

func bookKey(id uint) string {
	return fmt.Sprintf("%s%d", bookKeyPrefix, id)
}

func bookListKey(page, size int) string {
	return fmt.Sprintf("%s%d:%d", bookListKeyPrefix, page, size)
}
