package httpapi

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/server/models"
	"github.com/dmitrijs2005/storefront/internal/server/services"
)

// fakeAuth is an in-memory AuthService keyed by email and token.
type fakeAuth struct {
	mu      sync.Mutex
	nextID  int
	byEmail map[string]*models.User
	byToken map[string]*models.User

	passwords map[string]string
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{
		byEmail:   make(map[string]*models.User),
		byToken:   make(map[string]*models.User),
		passwords: make(map[string]string),
	}
}

func (f *fakeAuth) Register(ctx context.Context, email, password, name string) (*models.User, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if email == "" || password == "" || name == "" {
		return nil, "", common.ErrorInvalidInput
	}
	if _, taken := f.byEmail[email]; taken {
		return nil, "", common.ErrorConflict
	}
	f.nextID++
	u := &models.User{ID: fmt.Sprintf("u-%d", f.nextID), Email: email, Name: name, CreatedAt: time.Now()}
	f.byEmail[email] = u
	f.passwords[email] = password
	token := fmt.Sprintf("tok-%d", f.nextID)
	f.byToken[token] = u
	return u, token, nil
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byEmail[email]
	if !ok || f.passwords[email] != password {
		return nil, "", common.ErrorUnauthorized
	}
	token := fmt.Sprintf("tok-login-%s", u.ID)
	f.byToken[token] = u
	return u, token, nil
}

func (f *fakeAuth) Logout(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byToken, token)
	return nil
}

func (f *fakeAuth) Authenticate(ctx context.Context, token string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byToken[token]; ok {
		return u, nil
	}
	return nil, common.ErrorUnauthorized
}

// fakeCarts mirrors the cart engine contract: ordered lines per user,
// wholesale upsert, strict quantity update, idempotent remove and clear.
type fakeCarts struct {
	mu    sync.Mutex
	lines map[string][]models.CartLine
}

func newFakeCarts() *fakeCarts {
	return &fakeCarts{lines: make(map[string][]models.CartLine)}
}

func (f *fakeCarts) Get(ctx context.Context, userID string) ([]models.CartLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.CartLine{}, f.lines[userID]...), nil
}

func (f *fakeCarts) UpsertLine(ctx context.Context, userID string, line models.CartLine) ([]models.CartLine, error) {
	if line.ProductID <= 0 || line.Title == "" || line.Image == "" || line.Price <= 0 || line.Quantity <= 0 {
		return nil, common.ErrorInvalidInput
	}
	f.mu.Lock()
	replaced := false
	for i, l := range f.lines[userID] {
		if l.ProductID == line.ProductID {
			f.lines[userID][i] = line
			replaced = true
			break
		}
	}
	if !replaced {
		f.lines[userID] = append(f.lines[userID], line)
	}
	f.mu.Unlock()
	return f.Get(ctx, userID)
}

func (f *fakeCarts) SetQuantity(ctx context.Context, userID string, productID int64, quantity int) ([]models.CartLine, error) {
	if quantity < 0 {
		return nil, common.ErrorInvalidInput
	}
	f.mu.Lock()
	found := false
	kept := f.lines[userID][:0]
	for _, l := range f.lines[userID] {
		if l.ProductID == productID {
			found = true
			if quantity == 0 {
				continue
			}
			l.Quantity = quantity
		}
		kept = append(kept, l)
	}
	f.lines[userID] = kept
	f.mu.Unlock()
	if !found {
		return nil, common.ErrorNotFound
	}
	return f.Get(ctx, userID)
}

func (f *fakeCarts) RemoveLine(ctx context.Context, userID string, productID int64) ([]models.CartLine, error) {
	f.mu.Lock()
	kept := f.lines[userID][:0]
	for _, l := range f.lines[userID] {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	f.lines[userID] = kept
	f.mu.Unlock()
	return f.Get(ctx, userID)
}

func (f *fakeCarts) Clear(ctx context.Context, userID string) ([]models.CartLine, error) {
	f.mu.Lock()
	delete(f.lines, userID)
	f.mu.Unlock()
	return []models.CartLine{}, nil
}

// fakeOrders mirrors the order engine contract and clears the linked cart
// on placement.
type fakeOrders struct {
	mu     sync.Mutex
	nextID int
	orders []*models.Order
	carts  *fakeCarts
}

func newFakeOrders(carts *fakeCarts) *fakeOrders {
	return &fakeOrders{carts: carts}
}

func (f *fakeOrders) Place(ctx context.Context, userID string, items []models.OrderLine,
	shipping models.ShippingDetails, totalAmount float64, card services.CardDetails) (*models.Order, error) {

	if len(items) == 0 || shipping.Name == "" || shipping.Email == "" || shipping.Address == "" || totalAmount <= 0 {
		return nil, common.ErrorInvalidInput
	}

	f.mu.Lock()
	f.nextID++
	order := &models.Order{
		ID:              fmt.Sprintf("11111111-1111-1111-1111-%012d", f.nextID),
		UserID:          userID,
		Items:           append([]models.OrderLine(nil), items...),
		ShippingDetails: shipping,
		TotalAmount:     totalAmount,
		Status:          models.OrderStatusProcessing,
		CreatedAt:       time.Now(),
	}
	f.orders = append(f.orders, order)
	f.mu.Unlock()

	if _, err := f.carts.Clear(ctx, userID); err != nil {
		return nil, common.ErrorInternal
	}
	return order, nil
}

func (f *fakeOrders) List(ctx context.Context, userID string) ([]models.Order, error) {
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

func (f *fakeOrders) Get(ctx context.Context, userID, orderID string) (*models.Order, error) {
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
