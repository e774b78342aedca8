package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"mylibrary/internal/adapters/persistence/models"
	"mylibrary/internal/core/domain"
)

// In-memory store fakes. fakeBookStore mirrors the database's exclusive
// row-lock behavior: GetByIDForUpdate blocks on a per-book mutex that is
// released when the surrounding fakeTxManager transaction ends, so the
// loan service sees the same serialization it gets from SELECT FOR UPDATE.

type fakeTxKey struct{}

type fakeTxState struct {
	unlocks []func()
}

type fakeTxManager struct{}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	st := &fakeTxState{}
	err := fn(context.WithValue(ctx, fakeTxKey{}, st))
	for i := len(st.unlocks) - 1; i >= 0; i-- {
		st.unlocks[i]()
	}
	return err
}

type fakeBookStore struct {
	mu          sync.Mutex
	books       map[uint]*models.Book
	locks       map[uint]*sync.Mutex
	updateCalls int
}

func newFakeBookStore(books ...*models.Book) *fakeBookStore {
	s := &fakeBookStore{
		books: make(map[uint]*models.Book),
		locks: make(map[uint]*sync.Mutex),
	}
	for _, b := range books {
		copied := *b
		s.books[b.ID] = &copied
	}
	return s
}

func (s *fakeBookStore) Create(ctx context.Context, book *models.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if book.ID == 0 {
		book.ID = uint(len(s.books) + 1)
	}
	copied := *book
	s.books[book.ID] = &copied
	return nil
}

func (s *fakeBookStore) GetByID(ctx context.Context, id uint) (*models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	book, ok := s.books[id]
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	copied := *book
	return &copied, nil
}

func (s *fakeBookStore) GetByIDForUpdate(ctx context.Context, id uint) (*models.Book, error) {
	s.mu.Lock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	s.mu.Unlock()

	// Block like a row-lock queue; hold until the transaction ends
	lock.Lock()
	if st, ok := ctx.Value(fakeTxKey{}).(*fakeTxState); ok {
		st.unlocks = append(st.unlocks, lock.Unlock)
	} else {
		defer lock.Unlock()
	}

	return s.GetByID(ctx, id)
}

func (s *fakeBookStore) Update(ctx context.Context, book *models.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateCalls++
	copied := *book
	s.books[book.ID] = &copied
	return nil
}

func (s *fakeBookStore) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.books, id)
	return nil
}

func (s *fakeBookStore) List(ctx context.Context, offset, limit int) ([]*models.Book, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]*models.Book, 0, len(s.books))
	for _, b := range s.books {
		copied := *b
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return page(all, offset, limit), int64(len(all)), nil
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[uint]*models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[uint]*models.User)}
	for _, u := range users {
		copied := *u
		s.users[u.ID] = &copied
	}
	return s
}

func (s *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == 0 {
		user.ID = uint(len(s.users) + 1)
	}
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}

func (s *fakeUserStore) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		copied := *u
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return page(all, offset, limit), int64(len(all)), nil
}

type fakeLoanStore struct {
	mu          sync.Mutex
	loans       map[uint]*models.Loan
	locks       map[uint]*sync.Mutex
	nextID      uint
	createCalls int
}

func newFakeLoanStore(loans ...*models.Loan) *fakeLoanStore {
	s := &fakeLoanStore{
		loans:  make(map[uint]*models.Loan),
		locks:  make(map[uint]*sync.Mutex),
		nextID: 1,
	}
	for _, l := range loans {
		copied := *l
		s.loans[l.ID] = &copied
		if l.ID >= s.nextID {
			s.nextID = l.ID + 1
		}
	}
	return s
}

func (s *fakeLoanStore) Create(ctx context.Context, loan *models.Loan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createCalls++
	if loan.ID == 0 {
		loan.ID = s.nextID
		s.nextID++
	}
	copied := *loan
	s.loans[loan.ID] = &copied
	return nil
}

func (s *fakeLoanStore) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	loan, ok := s.loans[id]
	if !ok {
		return nil, domain.ErrLoanNotFound
	}
	copied := *loan
	return &copied, nil
}

func (s *fakeLoanStore) GetByIDForUpdate(ctx context.Context, id uint) (*models.Loan, error) {
	s.mu.Lock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	s.mu.Unlock()

	// Same row-lock queue behavior as fakeBookStore.GetByIDForUpdate
	lock.Lock()
	if st, ok := ctx.Value(fakeTxKey{}).(*fakeTxState); ok {
		st.unlocks = append(st.unlocks, lock.Unlock)
	} else {
		defer lock.Unlock()
	}

	return s.GetByID(ctx, id)
}

func (s *fakeLoanStore) Update(ctx context.Context, loan *models.Loan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.loans[loan.ID]; !ok {
		return domain.ErrLoanNotFound
	}
	copied := *loan
	s.loans[loan.ID] = &copied
	return nil
}

func (s *fakeLoanStore) List(ctx context.Context, offset, limit int) ([]*models.Loan, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]*models.Loan, 0, len(s.loans))
	for _, l := range s.loans {
		copied := *l
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return page(all, offset, limit), int64(len(all)), nil
}

func (s *fakeLoanStore) CountOpen(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, l := range s.loans {
		if l.ReturnDate == nil {
			count++
		}
	}
	return count, nil
}

func (s *fakeLoanStore) CountOverdue(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	var count int64
	for _, l := range s.loans {
		if l.ReturnDate == nil && l.DueDate.Before(now) {
			count++
		}
	}
	return count, nil
}

func page[T any](all []*T, offset, limit int) []*T {
	if offset >= len(all) {
		return nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}
