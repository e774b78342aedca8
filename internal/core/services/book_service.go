package services

import (
	"context"
	"log"

	"mylibrary/internal/adapters/persistence/models"
	"mylibrary/internal/adapters/persistence/repositories"
	"mylibrary/internal/pkg/pagination"
)

// BookService handles catalog business logic. Two implementations exist:
// DefaultBookService reads straight from the store, CachedBookService wraps
// it with a read-side cache. Which one serves the HTTP surface is decided at
// wiring time in routes.Setup.
type BookService interface {
	GetBookByID(ctx context.Context, id uint) (*models.BookResponse, error)
	AddBook(ctx context.Context, input *AddBookInput) (*models.BookResponse, error)
	DeleteBookByID(ctx context.Context, id uint) error
	GetAllBooks(ctx context.Context, page, size int) (*pagination.Result, error)
}

// AddBookInput represents add book input, validated at the HTTP boundary
type AddBookInput struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	ISBN     string `json:"isbn"`
	IsLoaned bool   `json:"isLoaned"`
}

// DefaultBookService is the store-backed BookService
type DefaultBookService struct {
	bookStore repositories.BookStore
}

// NewBookService creates a new book service
func NewBookService(bookStore repositories.BookStore) *DefaultBookService {
	return &DefaultBookService{bookStore: bookStore}
}

// GetBookByID returns a book by ID
func (s *DefaultBookService) GetBookByID(ctx context.Context, id uint) (*models.BookResponse, error) {
	book, err := s.bookStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return book.ToResponse(), nil
}

// AddBook creates a new book
func (s *DefaultBookService) AddBook(ctx context.Context, input *AddBookInput) (*models.BookResponse, error) {
	book := &models.Book{
		Title:    input.Title,
		Author:   input.Author,
		ISBN:     input.ISBN,
		IsLoaned: input.IsLoaned,
	}

	if err := s.bookStore.Create(ctx, book); err != nil {
		return nil, err
	}

	log.Printf("New book added: id=%d isbn=%s", book.ID, book.ISBN)
	return book.ToResponse(), nil
}

// DeleteBookByID removes a book by ID. Deleting a non-existent ID succeeds.
func (s *DefaultBookService) DeleteBookByID(ctx context.Context, id uint) error {
	if err := s.bookStore.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("Book with id %d deleted", id)
	return nil
}

// GetAllBooks returns a page of books
func (s *DefaultBookService) GetAllBooks(ctx context.Context, page, size int) (*pagination.Result, error) {
	params := pagination.New(page, size)

	books, total, err := s.bookStore.List(ctx, params.Offset, params.Size)
	if err != nil {
		return nil, err
	}

	items := make([]*models.BookResponse, len(books))
	for i, book := range books {
		items[i] = book.ToResponse()
	}

	return pagination.NewResult(items, total, params.Page, params.Size), nil
}
