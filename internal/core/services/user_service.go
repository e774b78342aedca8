package services

import (
	"context"
	"log"

	"mylibrary/internal/adapters/persistence/models"
	"mylibrary/internal/adapters/persistence/repositories"
	"mylibrary/internal/pkg/pagination"
)

// UserService handles borrower business logic
type UserService interface {
	GetUserByID(ctx context.Context, id uint) (*models.UserResponse, error)
	AddUser(ctx context.Context, input *AddUserInput) (*models.UserResponse, error)
	DeleteUserByID(ctx context.Context, id uint) error
	GetAllUsers(ctx context.Context, page, size int) (*pagination.Result, error)
}

// AddUserInput represents add user input, validated at the HTTP boundary
type AddUserInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// DefaultUserService is the store-backed UserService
type DefaultUserService struct {
	userStore repositories.UserStore
}

// NewUserService creates a new user service
func NewUserService(userStore repositories.UserStore) *DefaultUserService {
	return &DefaultUserService{userStore: userStore}
}

// GetUserByID returns a user by ID
func (s *DefaultUserService) GetUserByID(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// AddUser creates a new user
func (s *DefaultUserService) AddUser(ctx context.Context, input *AddUserInput) (*models.UserResponse, error) {
	user := &models.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("User with id %d has been created", user.ID)
	return user.ToResponse(), nil
}

// DeleteUserByID removes a user by ID. Deleting a non-existent ID succeeds.
func (s *DefaultUserService) DeleteUserByID(ctx context.Context, id uint) error {
	if err := s.userStore.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("User with id %d has been deleted", id)
	return nil
}

// GetAllUsers returns a page of users
func (s *DefaultUserService) GetAllUsers(ctx context.Context, page, size int) (*pagination.Result, error) {
	params := pagination.New(page, size)

	users, total, err := s.userStore.List(ctx, params.Offset, params.Size)
	if err != nil {
		return nil, err
	}

	items := make([]*models.UserResponse, len(users))
	for i, user := range users {
		items[i] = user.ToResponse()
	}

	return pagination.NewResult(items, total, params.Page, params.Size), nil
}
