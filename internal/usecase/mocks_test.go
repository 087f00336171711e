package usecase_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"vet-clinic/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a testify mock of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil && user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	args := m.Called(ctx, limit, offset)
	users, _ := args.Get(0).([]*entity.User)
	return users, args.Error(1)
}

func (m *MockUserRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *MockUserRepository) UpdateLastAccess(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockPasswordHasher is a testify mock of utils.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Verify(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

// memUserRepo is an in-memory repository.UserRepository that enforces the
// same case-insensitive uniqueness as the Postgres indexes.
type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]entity.User)}
}

func (r *memUserRepo) conflict(u *entity.User) error {
	for id, other := range r.users {
		if id == u.ID {
			continue
		}
		if entity.NormalizeIdentifier(other.Username) == entity.NormalizeIdentifier(u.Username) {
			return fmt.Errorf("insert: %w", entity.ErrUsernameTaken)
		}
		if entity.NormalizeIdentifier(other.Email) == entity.NormalizeIdentifier(u.Email) {
			return fmt.Errorf("insert: %w", entity.ErrEmailTaken)
		}
	}
	return nil
}

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if err := r.conflict(user); err != nil {
		return err
	}
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *memUserRepo) findBy(match func(entity.User) bool) *entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			return &u
		}
	}
	return nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	email = entity.NormalizeIdentifier(email)
	return r.findBy(func(u entity.User) bool { return entity.NormalizeIdentifier(u.Email) == email }), nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	username = entity.NormalizeIdentifier(username)
	return r.findBy(func(u entity.User) bool { return entity.NormalizeIdentifier(u.Username) == username }), nil
}

func (r *memUserRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, &u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].FullName < all[j].FullName })
	if offset >= len(all) {
		return []*entity.User{}, nil
	}
	return all[offset:min(offset+limit, len(all))], nil
}

func (r *memUserRepo) CountAll(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

// Update mirrors the Postgres statement: profile columns only.
func (r *memUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[user.ID]
	if !ok {
		return entity.ErrUserNotFound
	}
	if err := r.conflict(user); err != nil {
		return err
	}
	stored.FullName = user.FullName
	stored.Username = user.Username
	stored.Email = user.Email
	stored.Role = user.Role
	stored.Active = user.Active
	r.users[user.ID] = stored
	return nil
}

func (r *memUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[id]
	if !ok {
		return entity.ErrUserNotFound
	}
	stored.PasswordHash = passwordHash
	r.users[id] = stored
	return nil
}

func (r *memUserRepo) UpdateLastAccess(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[id]
	if !ok {
		return entity.ErrUserNotFound
	}
	stored.LastAccessAt = &at
	r.users[id] = stored
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return entity.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}
