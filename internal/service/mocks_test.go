package service

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/dmarrez/inventario/internal/continuity"
	"github.com/dmarrez/inventario/internal/domain"
	"github.com/dmarrez/inventario/internal/repository"
)

// mockUserRepository is an in-memory repository.UserRepository with
// per-call failure injection.
type mockUserRepository struct {
	users  map[string]*domain.User
	nextID int64

	createErr error
	getErr    error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:  make(map[string]*domain.User),
		nextID: 1,
	}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return domain.ErrUserAlreadyExists
		}
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.Username] = user
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if u, exists := m.users[username]; exists {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) List(ctx context.Context, opts repository.ListOptions) ([]*domain.User, error) {
	result := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id int64) error {
	for name, u := range m.users {
		if u.ID == id {
			delete(m.users, name)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

// mockProductRepository is an in-memory repository.ProductRepository with
// per-call failure injection.
type mockProductRepository struct {
	products []*domain.Product
	owners   map[int64]bool
	nextID   int64

	createErr error
	listErr   error
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		owners: make(map[int64]bool),
		nextID: 1,
	}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if m.createErr != nil {
		return m.createErr
	}
	if !m.owners[product.OwnerID] {
		return domain.ErrUnknownOwner
	}
	product.ID = m.nextID
	m.nextID++
	m.products = append(m.products, product)
	return nil
}

func (m *mockProductRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Product, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := make([]*domain.Product, 0)
	for _, p := range m.products {
		if p.OwnerID == ownerID {
			result = append(result, p)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	for i, p := range m.products {
		if p.ID == product.ID {
			m.products[i] = product
			return nil
		}
	}
	return domain.ErrProductNotFound
}

var (
	_ repository.UserRepository    = (*mockUserRepository)(nil)
	_ repository.ProductRepository = (*mockProductRepository)(nil)
)

// newTestController wires mock repositories into a continuity controller
// with synthesis enabled, the way the server does.
func newTestController(users *mockUserRepository, products *mockProductRepository) *continuity.Controller {
	return continuity.New(continuity.Config{
		Users:    users,
		Products: products,
		Enabled:  true,
		Logger:   zerolog.Nop(),
	})
}
