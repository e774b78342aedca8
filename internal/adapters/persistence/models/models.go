package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Catalog & Borrowers
// ============================================================

// Book represents the books table. IsLoaned is the single shared availability
// flag: true iff an open loan references this book. It is flipped only by the
// loan service, under an exclusive row lock.
type Book struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Author    string    `gorm:"size:255;not null" json:"author"`
	ISBN      string    `gorm:"uniqueIndex;size:20;not null" json:"isbn"`
	IsLoaned  bool      `gorm:"default:false" json:"isLoaned"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Book) TableName() string {
	return "books"
}

// BookResponse DTO
type BookResponse struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	ISBN     string `json:"isbn"`
	IsLoaned bool   `json:"isLoaned"`
}

func (b *Book) ToResponse() *BookResponse {
	return &BookResponse{
		ID:       b.ID,
		Title:    b.Title,
		Author:   b.Author,
		ISBN:     b.ISBN,
		IsLoaned: b.IsLoaned,
	}
}

// User represents the users (borrowers) table
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"size:100;not null" json:"firstName"`
	LastName  string    `gorm:"size:100;not null" json:"lastName"`
	Email     string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

// ============================================================
// Loans
// ============================================================

// Loan represents the loans table. A loan is an event record linking one book
// and one user. ReturnDate nil means the loan is open; it transitions to
// non-nil exactly once and the row is never deleted by normal operation.
type Loan struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	BookID     uint       `gorm:"index;not null" json:"-"`
	UserID     uint       `gorm:"index;not null" json:"-"`
	LoanDate   time.Time  `gorm:"not null" json:"loanDate"`
	DueDate    time.Time  `gorm:"not null" json:"dueDate"`
	ReturnDate *time.Time `json:"returnDate"`
	Book       Book       `gorm:"foreignKey:BookID" json:"-"`
	User       User       `gorm:"foreignKey:UserID" json:"-"`
}

func (Loan) TableName() string {
	return "loans"
}

func (l *Loan) IsReturned() bool {
	return l.ReturnDate != nil
}

// LoanResponse DTO with resolved book and user projections
type LoanResponse struct {
	ID         uint          `json:"id"`
	Book       *BookResponse `json:"book"`
	User       *UserResponse `json:"user"`
	LoanDate   time.Time     `json:"loanDate"`
	DueDate    time.Time     `json:"dueDate"`
	ReturnDate *time.Time    `json:"returnDate"`
}

func (l *Loan) ToResponse() *LoanResponse {
	return &LoanResponse{
		ID:         l.ID,
		Book:       l.Book.ToResponse(),
		User:       l.User.ToResponse(),
		LoanDate:   l.LoanDate,
		DueDate:    l.DueDate,
		ReturnDate: l.ReturnDate,
	}
}

// AutoMigrate runs auto migration for all library tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Book{},
		&User{},
		&Loan{},
	)
}
