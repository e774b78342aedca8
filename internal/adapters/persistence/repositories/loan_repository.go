package repositories

import (
	"context"
	"time"

	"mylibrary/internal/adapters/persistence/models"
	"mylibrary/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LoanRepository handles loan database operations
type LoanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

// Create inserts a new loan
func (r *LoanRepository) Create(ctx context.Context, loan *models.Loan) error {
	db := dbFromContext(ctx, r.db)
	return translateError(db.Create(loan).Error, domain.ErrLoanNotFound)
}

// GetByID returns a loan by ID with book and user preloaded
func (r *LoanRepository) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	var loan models.Loan
	db := dbFromContext(ctx, r.db)
	err := db.Preload("Book").Preload("User").First(&loan, id).Error
	if err != nil {
		return nil, translateError(err, domain.ErrLoanNotFound)
	}
	return &loan, nil
}

// GetByIDForUpdate returns a loan by ID after taking an exclusive row lock
// (SELECT ... FOR UPDATE). The locking read bypasses the transaction snapshot,
// so the caller sees the latest committed return state. Must run inside a
// TxManager transaction.
func (r *LoanRepository) GetByIDForUpdate(ctx context.Context, id uint) (*models.Loan, error) {
	var loan models.Loan
	db := dbFromContext(ctx, r.db)
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Book").Preload("User").
		First(&loan, id).Error
	if err != nil {
		return nil, translateError(err, domain.ErrLoanNotFound)
	}
	return &loan, nil
}

// Update saves a loan
func (r *LoanRepository) Update(ctx context.Context, loan *models.Loan) error {
	db := dbFromContext(ctx, r.db)
	return translateError(db.Save(loan).Error, domain.ErrLoanNotFound)
}

// List returns a page of loans ordered by ID with book and user preloaded
func (r *LoanRepository) List(ctx context.Context, offset, limit int) ([]*models.Loan, int64, error) {
	var loans []*models.Loan
	var total int64

	db := dbFromContext(ctx, r.db)
	if err := db.Model(&models.Loan{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Book").Preload("User").
		Order("id ASC").Offset(offset).Limit(limit).
		Find(&loans).Error
	if err != nil {
		return nil, 0, err
	}

	return loans, total, nil
}

// CountOpen returns the number of loans with no return date
func (r *LoanRepository) CountOpen(ctx context.Context) (int64, error) {
	var count int64
	db := dbFromContext(ctx, r.db)
	err := db.Model(&models.Loan{}).
		Where("return_date IS NULL").
		Count(&count).Error
	return count, err
}

// CountOverdue returns the number of open loans past their due date
func (r *LoanRepository) CountOverdue(ctx context.Context) (int64, error) {
	var count int64
	db := dbFromContext(ctx, r.db)
	err := db.Model(&models.Loan{}).
		Where("return_date IS NULL AND due_date < ?", time.Now()).
		Count(&count).Error
	return count, err
}
