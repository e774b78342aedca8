package repositories

import (
	"context"

	"mylibrary/internal/adapters/persistence/models"
)

// BookStore defines the book store contract. GetByIDForUpdate must only be
// called from inside a TxManager transaction (the lock is held until that
// transaction commits or rolls back) and only by the loan service.
type BookStore interface {
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, id uint) (*models.Book, error)
	GetByIDForUpdate(ctx context.Context, id uint) (*models.Book, error)
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.Book, int64, error)
}

// UserStore defines the borrower store contract. No special concurrency needs.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
}

// LoanStore defines the loan event store contract. GetByIDForUpdate carries
// the same transaction-only rule as BookStore's; the loan service locks the
// loan row before the book row, so refunds never deadlock each other.
type LoanStore interface {
	Create(ctx context.Context, loan *models.Loan) error
	GetByID(ctx context.Context, id uint) (*models.Loan, error)
	GetByIDForUpdate(ctx context.Context, id uint) (*models.Loan, error)
	Update(ctx context.Context, loan *models.Loan) error
	List(ctx context.Context, offset, limit int) ([]*models.Loan, int64, error)
	CountOpen(ctx context.Context) (int64, error)
	CountOverdue(ctx context.Context) (int64, error)
}

// TxManager runs a function inside one database transaction. Every store call
// made within fn joins the same transaction; fn returning an error rolls the
// whole transaction back, so no partial state is ever observable.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
