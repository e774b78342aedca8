package repositories

import (
	"context"

	"mylibrary/internal/adapters/persistence/models"
	"mylibrary/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookRepository handles book database operations
type BookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{db: db}
}

// Create inserts a new book
func (r *BookRepository) Create(ctx context.Context, book *models.Book) error {
	db := dbFromContext(ctx, r.db)
	return translateError(db.Create(book).Error, domain.ErrBookNotFound)
}

// GetByID returns a book by ID
func (r *BookRepository) GetByID(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	db := dbFromContext(ctx, r.db)
	if err := db.First(&book, id).Error; err != nil {
		return nil, translateError(err, domain.ErrBookNotFound)
	}
	return &book, nil
}

// GetByIDForUpdate returns a book by ID under an exclusive row lock
// (SELECT ... FOR UPDATE). Concurrent loan/refund attempts on the same book
// queue on this lock until the surrounding transaction ends. Must be called
// inside TxManager.Do.
func (r *BookRepository) GetByIDForUpdate(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	db := dbFromContext(ctx, r.db)
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&book, id).Error
	if err != nil {
		return nil, translateError(err, domain.ErrBookNotFound)
	}
	return &book, nil
}

// Update saves a book
func (r *BookRepository) Update(ctx context.Context, book *models.Book) error {
	db := dbFromContext(ctx, r.db)
	return translateError(db.Save(book).Error, domain.ErrBookNotFound)
}

// Delete removes a book by ID. Deleting a non-existent ID is not an error.
func (r *BookRepository) Delete(ctx context.Context, id uint) error {
	db := dbFromContext(ctx, r.db)
	return translateError(db.Delete(&models.Book{}, id).Error, domain.ErrBookNotFound)
}

// List returns a page of books ordered by ID with the total row count
func (r *BookRepository) List(ctx context.Context, offset, limit int) ([]*models.Book, int64, error) {
	var books []*models.Book
	var total int64

	db := dbFromContext(ctx, r.db)
	if err := db.Model(&models.Book{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("id ASC").Offset(offset).Limit(limit).Find(&books).Error
	if err != nil {
		return nil, 0, err
	}

	return books, total, nil
}
