package state

import (
	"context"
	"sync"

	"saturnalia/internal/domain/entity"
	"saturnalia/internal/domain/repository"
	"saturnalia/pkg/logger"
)

// Concern names one slice of the synchronized application state.
type Concern string

const (
	ConcernSession Concern = "session"
	ConcernCart    Concern = "cart"
	ConcernOrders  Concern = "orders"
)

// CartWatcher and OrderWatcher are the slices of the repositories a session
// needs: the ability to open a live, per-identity subscription.
type CartWatcher interface {
	Watch(ctx context.Context, userID string, onSnapshot func([]*entity.CartItem)) repository.CancelFunc
}

type OrderWatcher interface {
	WatchByUser(ctx context.Context, userID string, onSnapshot func([]*entity.Order)) repository.CancelFunc
}

// Session owns the synchronized state for one logical client: the current
// identity and the cart and order mirrors fed by live subscriptions. The
// mirrors are caches of the last received snapshot, never authoritative;
// they are rewritten wholesale on each snapshot and never patched locally.
//
// SetIdentity is the single entry point for session transitions. It tears
// down the previous per-identity subscriptions before opening new ones, so
// at most one live subscription pair exists at any time.
type Session struct {
	mu       sync.RWMutex
	identity *entity.Identity
	cart     []*entity.CartItem
	orders   []*entity.Order

	cartWatcher  CartWatcher
	orderWatcher OrderWatcher

	cancelCart   repository.CancelFunc
	cancelOrders repository.CancelFunc

	nextSub     int
	sessionSubs map[int]func(*entity.Identity)
	changeSubs  map[int]func(Concern)

	closed bool
}

func NewSession(cartWatcher CartWatcher, orderWatcher OrderWatcher) *Session {
	return &Session{
		cartWatcher:  cartWatcher,
		orderWatcher: orderWatcher,
		sessionSubs:  make(map[int]func(*entity.Identity)),
		changeSubs:   make(map[int]func(Concern)),
	}
}

// SetIdentity records a session transition. A non-nil identity opens cart
// and order subscriptions scoped to it; nil tears them down and empties the
// mirrors so no data leaks across identities.
func (s *Session) SetIdentity(ctx context.Context, identity *entity.Identity) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	// Teardown must complete before a replacement stream opens.
	if s.cancelCart != nil {
		s.cancelCart()
		s.cancelCart = nil
	}
	if s.cancelOrders != nil {
		s.cancelOrders()
		s.cancelOrders = nil
	}

	s.identity = identity
	s.cart = nil
	s.orders = nil

	if identity != nil {
		uid := identity.UID
		s.cancelCart = s.cartWatcher.Watch(ctx, uid, func(items []*entity.CartItem) {
			s.setCart(uid, items)
		})
		s.cancelOrders = s.orderWatcher.WatchByUser(ctx, uid, func(orders []*entity.Order) {
			s.setOrders(uid, orders)
		})
		logger.Debug("Session subscriptions opened for %s", uid)
	}
	s.mu.Unlock()

	s.notifySession(identity)
	s.notify(ConcernCart)
	s.notify(ConcernOrders)
	s.notify(ConcernSession)
}

func (s *Session) setCart(uid string, items []*entity.CartItem) {
	s.mu.Lock()
	// A snapshot from a cancelled stream may still be in flight; drop it if
	// the session has moved on.
	if s.identity == nil || s.identity.UID != uid {
		s.mu.Unlock()
		return
	}
	s.cart = items
	s.mu.Unlock()

	s.notify(ConcernCart)
}

func (s *Session) setOrders(uid string, orders []*entity.Order) {
	s.mu.Lock()
	if s.identity == nil || s.identity.UID != uid {
		s.mu.Unlock()
		return
	}
	s.orders = orders
	s.mu.Unlock()

	s.notify(ConcernOrders)
}

func (s *Session) Identity() *entity.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.identity == nil {
		return nil
	}
	identity := *s.identity
	return &identity
}

// Cart returns a copy of the cart mirror as of the last snapshot.
func (s *Session) Cart() []entity.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entity.CartItem, 0, len(s.cart))
	for _, item := range s.cart {
		items = append(items, *item)
	}
	return items
}

// Orders returns a copy of the order mirror as of the last snapshot.
func (s *Session) Orders() []entity.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]entity.Order, 0, len(s.orders))
	for _, order := range s.orders {
		orders = append(orders, *order)
	}
	return orders
}

// OnSessionChange registers a callback fired with the identity (or nil) on
// every session transition. The returned function unsubscribes.
func (s *Session) OnSessionChange(fn func(*entity.Identity)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.sessionSubs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.sessionSubs, id)
		s.mu.Unlock()
	}
}

// OnChange registers a callback fired whenever a state concern is rewritten.
func (s *Session) OnChange(fn func(Concern)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.changeSubs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.changeSubs, id)
		s.mu.Unlock()
	}
}

// Close tears down the session's subscriptions. Further SetIdentity calls
// are ignored.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.cancelCart != nil {
		s.cancelCart()
		s.cancelCart = nil
	}
	if s.cancelOrders != nil {
		s.cancelOrders()
		s.cancelOrders = nil
	}
	s.identity = nil
	s.cart = nil
	s.orders = nil
	s.mu.Unlock()
}

func (s *Session) notify(concern Concern) {
	s.mu.RLock()
	fns := make([]func(Concern), 0, len(s.changeSubs))
	for _, fn := range s.changeSubs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(concern)
	}
}

func (s *Session) notifySession(identity *entity.Identity) {
	s.mu.RLock()
	fns := make([]func(*entity.Identity), 0, len(s.sessionSubs))
	for _, fn := range s.sessionSubs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(identity)
	}
}
