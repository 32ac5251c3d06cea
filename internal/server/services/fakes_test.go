package services

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/dbx"
	"github.com/dmitrijs2005/storefront/internal/server/models"
	cartsrepo "github.com/dmitrijs2005/storefront/internal/server/repositories/carts"
	ordersrepo "github.com/dmitrijs2005/storefront/internal/server/repositories/orders"
	sessionsrepo "github.com/dmitrijs2005/storefront/internal/server/repositories/sessions"
	usersrepo "github.com/dmitrijs2005/storefront/internal/server/repositories/users"
)

// fakeUsersRepo is an in-memory users.Repository.
type fakeUsersRepo struct {
	mu      sync.Mutex
	byID    map[string]*models.User
	byEmail map[string]*models.User

	createErr error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]*models.User),
	}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, taken := f.byEmail[u.Email]; taken {
		return nil, common.ErrorConflict
	}
	u.CreatedAt = time.Now()
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) delete(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		delete(f.byEmail, u.Email)
		delete(f.byID, id)
	}
}

// fakeSessionsRepo is an in-memory sessions.Repository with real expiry
// semantics.
type fakeSessionsRepo struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
}

func newFakeSessionsRepo() *fakeSessionsRepo {
	return &fakeSessionsRepo{sessions: make(map[string]*models.Session)}
}

func (f *fakeSessionsRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[token] = &models.Session{Token: token, UserID: userID, ExpiresAt: time.Now().Add(validity)}
	return nil
}

func (f *fakeSessionsRepo) Touch(ctx context.Context, token string, validity time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[token]
	if !ok || !s.ExpiresAt.After(time.Now()) {
		return "", common.ErrorNotFound
	}
	s.ExpiresAt = time.Now().Add(validity)
	return s.UserID, nil
}

func (f *fakeSessionsRepo) Delete(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, token)
	return nil
}

func (f *fakeSessionsRepo) get(token string) (*models.Session, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[token]
	return s, ok
}

// fakeOrdersRepo is an in-memory orders.Repository; orders are returned
// newest first by insertion.
type fakeOrdersRepo struct {
	mu     sync.Mutex
	orders []*models.Order

	createErr error
}

func newFakeOrdersRepo() *fakeOrdersRepo {
	return &fakeOrdersRepo{}
}

func (f *fakeOrdersRepo) Create(ctx context.Context, o *models.Order) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	o.CreatedAt = time.Now()
	f.orders = append(f.orders, o)
	return o, nil
}

func (f *fakeOrdersRepo) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Order{}
	for i := len(f.orders) - 1; i >= 0; i-- {
		if f.orders[i].UserID == userID {
			out = append(out, *f.orders[i])
		}
	}
	return out, nil
}

func (f *fakeOrdersRepo) GetForUser(ctx context.Context, orderID, userID string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.ID == orderID && o.UserID == userID {
			cp := *o
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

// fakeRepoManager vends the fakes regardless of the DBTX it is handed, which
// lets service tests drive dbx.WithTx against a sqlmock database.
type fakeRepoManager struct {
	users    *fakeUsersRepo
	sessions *fakeSessionsRepo
	carts    cartsrepo.Repository
	orders   *fakeOrdersRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:    newFakeUsersRepo(),
		sessions: newFakeSessionsRepo(),
		carts:    cartsrepo.NewInMemoryRepository(),
		orders:   newFakeOrdersRepo(),
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error  { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository           { return m.users }
func (m *fakeRepoManager) Sessions(dbx.DBTX) sessionsrepo.Repository     { return m.sessions }
func (m *fakeRepoManager) Carts(dbx.DBTX) cartsrepo.Repository           { return m.carts }
func (m *fakeRepoManager) Orders(dbx.DBTX) ordersrepo.Repository         { return m.orders }
