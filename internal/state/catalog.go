package state

import (
	"context"
	"sync"

	"saturnalia/internal/domain/entity"
	"saturnalia/internal/domain/repository"
)

type ProductWatcher interface {
	Watch(ctx context.Context, onSnapshot func([]*entity.Product)) repository.CancelFunc
}

// Catalog is the process-wide mirror of the global product collection. It is
// shared by every session; product mutations broadcast to all of them
// through the single underlying subscription.
type Catalog struct {
	mu       sync.RWMutex
	products []*entity.Product

	watcher   ProductWatcher
	cancel    repository.CancelFunc
	nextSub   int
	listeners map[int]func()
}

func NewCatalog(watcher ProductWatcher) *Catalog {
	return &Catalog{
		watcher:   watcher,
		listeners: make(map[int]func()),
	}
}

// Start opens the product subscription. It is expected to be called once at
// process startup.
func (c *Catalog) Start(ctx context.Context) {
	c.mu.Lock()
	if c.cancel != nil {
		c.mu.Unlock()
		return
	}
	c.cancel = c.watcher.Watch(ctx, c.setProducts)
	c.mu.Unlock()
}

func (c *Catalog) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (c *Catalog) setProducts(products []*entity.Product) {
	c.mu.Lock()
	c.products = products
	fns := make([]func(), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Products returns a copy of the product mirror as of the last snapshot.
func (c *Catalog) Products() []entity.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	products := make([]entity.Product, 0, len(c.products))
	for _, p := range c.products {
		products = append(products, *p)
	}
	return products
}

// OnChange registers a callback fired on every product snapshot.
func (c *Catalog) OnChange(fn func()) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}
