package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"saturnalia/internal/domain/entity"
	"saturnalia/internal/domain/repository"
	"saturnalia/pkg/errors"
)

type fakeCartRepo struct {
	items map[string]*entity.CartItem

	getCalls       int
	setCalls       int
	incrementCalls int
	deleteCalls    int
	clearErr       error
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{items: make(map[string]*entity.CartItem)}
}

func (f *fakeCartRepo) Get(ctx context.Context, userID, productID string) (*entity.CartItem, error) {
	f.getCalls++
	item, ok := f.items[productID]
	if !ok {
		return nil, errors.NotFound("Cart item", nil)
	}
	copy := *item
	return &copy, nil
}

func (f *fakeCartRepo) Set(ctx context.Context, userID string, item *entity.CartItem) error {
	f.setCalls++
	copy := *item
	f.items[item.ProductID] = &copy
	return nil
}

func (f *fakeCartRepo) IncrementQuantity(ctx context.Context, userID, productID string, delta int) error {
	f.incrementCalls++
	item, ok := f.items[productID]
	if !ok {
		return errors.NotFound("Cart item", nil)
	}
	item.Quantity += delta
	return nil
}

func (f *fakeCartRepo) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	item, ok := f.items[productID]
	if !ok {
		return errors.NotFound("Cart item", nil)
	}
	item.Quantity = quantity
	return nil
}

func (f *fakeCartRepo) Delete(ctx context.Context, userID, productID string) error {
	f.deleteCalls++
	delete(f.items, productID)
	return nil
}

func (f *fakeCartRepo) Clear(ctx context.Context, userID string) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.items = make(map[string]*entity.CartItem)
	return nil
}

func (f *fakeCartRepo) List(ctx context.Context, userID string) ([]*entity.CartItem, error) {
	items := make([]*entity.CartItem, 0, len(f.items))
	for _, item := range f.items {
		copy := *item
		items = append(items, &copy)
	}
	return items, nil
}

func (f *fakeCartRepo) Watch(ctx context.Context, userID string, onSnapshot func([]*entity.CartItem)) repository.CancelFunc {
	return func() {}
}

type fakeProductRepo struct {
	products map[string]*entity.Product
	getCalls int
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	f := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	f.getCalls++
	p, ok := f.products[id]
	if !ok {
		return nil, errors.NotFound("Product", nil)
	}
	copy := *p
	return &copy, nil
}

func (f *fakeProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, int64, error) {
	products := make([]*entity.Product, 0, len(f.products))
	for _, p := range f.products {
		products = append(products, p)
	}
	return products, int64(len(products)), nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id string) error {
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) AdjustInventory(ctx context.Context, id string, delta int) error {
	p, ok := f.products[id]
	if !ok {
		return errors.NotFound("Product", nil)
	}
	p.Inventory += delta
	return nil
}

func (f *fakeProductRepo) Watch(ctx context.Context, onSnapshot func([]*entity.Product)) repository.CancelFunc {
	return func() {}
}

func TestAddToCartCreatesSnapshotEntry(t *testing.T) {
	cartRepo := newFakeCartRepo()
	productRepo := newFakeProductRepo(&entity.Product{
		ID:       "p1",
		Name:     "Candle Set",
		Price:    19.99,
		ImageURL: "https://img.example/candles.jpg",
	})
	uc := NewCartUseCase(cartRepo, productRepo)

	err := uc.AddToCart(context.Background(), "user-1", "p1")

	assert.NoError(t, err)
	item := cartRepo.items["p1"]
	if assert.NotNil(t, item) {
		assert.Equal(t, 1, item.Quantity)
		assert.Equal(t, "Candle Set", item.Name)
		assert.Equal(t, 19.99, item.Price)
		assert.Equal(t, "https://img.example/candles.jpg", item.ImageURL)
		assert.False(t, item.AddedAt.IsZero())
	}
}

func TestAddToCartRepeatedAddsIncrementQuantity(t *testing.T) {
	cartRepo := newFakeCartRepo()
	productRepo := newFakeProductRepo(&entity.Product{ID: "p1", Name: "Candle Set", Price: 19.99})
	uc := NewCartUseCase(cartRepo, productRepo)

	for i := 0; i < 3; i++ {
		assert.NoError(t, uc.AddToCart(context.Background(), "user-1", "p1"))
	}

	assert.Equal(t, 3, cartRepo.items["p1"].Quantity)
	assert.Equal(t, 1, cartRepo.setCalls)
	assert.Equal(t, 2, cartRepo.incrementCalls)
}

func TestAddToCartKeepsSnapshotAfterProductEdit(t *testing.T) {
	cartRepo := newFakeCartRepo()
	productRepo := newFakeProductRepo(&entity.Product{ID: "p1", Name: "Candle Set", Price: 19.99})
	uc := NewCartUseCase(cartRepo, productRepo)

	assert.NoError(t, uc.AddToCart(context.Background(), "user-1", "p1"))

	// A later price change must not touch the existing cart entry.
	productRepo.products["p1"].Price = 29.99
	assert.NoError(t, uc.AddToCart(context.Background(), "user-1", "p1"))

	item := cartRepo.items["p1"]
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 19.99, item.Price)
}

func TestAddToCartUnauthenticated(t *testing.T) {
	cartRepo := newFakeCartRepo()
	productRepo := newFakeProductRepo(&entity.Product{ID: "p1"})
	uc := NewCartUseCase(cartRepo, productRepo)

	err := uc.AddToCart(context.Background(), "", "p1")

	assert.True(t, errors.Is(err, "UNAUTHENTICATED"))
	// No remote traffic for a signed-out caller.
	assert.Equal(t, 0, productRepo.getCalls)
	assert.Equal(t, 0, cartRepo.getCalls)
	assert.Equal(t, 0, cartRepo.setCalls)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	cartRepo := newFakeCartRepo()
	uc := NewCartUseCase(cartRepo, newFakeProductRepo())

	err := uc.AddToCart(context.Background(), "user-1", "missing")

	assert.True(t, errors.Is(err, "NOT_FOUND"))
	assert.Equal(t, 0, cartRepo.setCalls)
}

func TestUpdateQuantityZeroRemovesItem(t *testing.T) {
	cartRepo := newFakeCartRepo()
	cartRepo.items["p1"] = &entity.CartItem{ID: "p1", ProductID: "p1", Quantity: 2}
	uc := NewCartUseCase(cartRepo, newFakeProductRepo())

	assert.NoError(t, uc.UpdateQuantity(context.Background(), "user-1", "p1", 0))
	assert.NotContains(t, cartRepo.items, "p1")

	// Negative quantities behave the same way.
	cartRepo.items["p2"] = &entity.CartItem{ID: "p2", ProductID: "p2", Quantity: 1}
	assert.NoError(t, uc.UpdateQuantity(context.Background(), "user-1", "p2", -3))
	assert.NotContains(t, cartRepo.items, "p2")
}

func TestUpdateQuantityOverwritesQuantityOnly(t *testing.T) {
	cartRepo := newFakeCartRepo()
	cartRepo.items["p1"] = &entity.CartItem{ID: "p1", ProductID: "p1", Name: "Candle Set", Price: 19.99, Quantity: 2}
	uc := NewCartUseCase(cartRepo, newFakeProductRepo())

	assert.NoError(t, uc.UpdateQuantity(context.Background(), "user-1", "p1", 5))

	item := cartRepo.items["p1"]
	assert.Equal(t, 5, item.Quantity)
	assert.Equal(t, "Candle Set", item.Name)
	assert.Equal(t, 19.99, item.Price)
}

func TestRemoveFromCartIsIdempotent(t *testing.T) {
	cartRepo := newFakeCartRepo()
	cartRepo.items["p1"] = &entity.CartItem{ID: "p1", ProductID: "p1", Quantity: 1}
	uc := NewCartUseCase(cartRepo, newFakeProductRepo())

	assert.NoError(t, uc.RemoveFromCart(context.Background(), "user-1", "p1"))
	assert.NoError(t, uc.RemoveFromCart(context.Background(), "user-1", "p1"))
	assert.Equal(t, 2, cartRepo.deleteCalls)
}
