package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"saturnalia/internal/domain/entity"
	"saturnalia/internal/domain/repository"
)

// fakeCartWatcher records every subscription it hands out so tests can push
// snapshots and count cancellations.
type fakeCartWatcher struct {
	subs []*cartSub
}

type cartSub struct {
	uid       string
	onSnap    func([]*entity.CartItem)
	cancelled int
}

func (f *fakeCartWatcher) Watch(ctx context.Context, userID string, onSnapshot func([]*entity.CartItem)) repository.CancelFunc {
	sub := &cartSub{uid: userID, onSnap: onSnapshot}
	f.subs = append(f.subs, sub)
	return func() { sub.cancelled++ }
}

type fakeOrderWatcher struct {
	subs []*orderSub
}

type orderSub struct {
	uid       string
	onSnap    func([]*entity.Order)
	cancelled int
}

func (f *fakeOrderWatcher) WatchByUser(ctx context.Context, userID string, onSnapshot func([]*entity.Order)) repository.CancelFunc {
	sub := &orderSub{uid: userID, onSnap: onSnapshot}
	f.subs = append(f.subs, sub)
	return func() { sub.cancelled++ }
}

func TestSessionSignInOpensSubscriptions(t *testing.T) {
	carts := &fakeCartWatcher{}
	orders := &fakeOrderWatcher{}
	sess := NewSession(carts, orders)
	defer sess.Close()

	sess.SetIdentity(context.Background(), &entity.Identity{UID: "user-1", Email: "sam@inst.edu"})

	assert.Len(t, carts.subs, 1)
	assert.Len(t, orders.subs, 1)
	assert.Equal(t, "user-1", carts.subs[0].uid)

	carts.subs[0].onSnap([]*entity.CartItem{{ProductID: "p1", Quantity: 2}})
	assert.Len(t, sess.Cart(), 1)
	assert.Equal(t, 2, sess.Cart()[0].Quantity)
}

func TestSessionSnapshotsReplaceMirrorWholesale(t *testing.T) {
	carts := &fakeCartWatcher{}
	sess := NewSession(carts, &fakeOrderWatcher{})
	defer sess.Close()

	sess.SetIdentity(context.Background(), &entity.Identity{UID: "user-1"})

	carts.subs[0].onSnap([]*entity.CartItem{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p2", Quantity: 1},
	})
	carts.subs[0].onSnap([]*entity.CartItem{{ProductID: "p2", Quantity: 3}})

	cart := sess.Cart()
	assert.Len(t, cart, 1)
	assert.Equal(t, "p2", cart[0].ProductID)
	assert.Equal(t, 3, cart[0].Quantity)
}

func TestSessionSignOutClearsMirrors(t *testing.T) {
	carts := &fakeCartWatcher{}
	orders := &fakeOrderWatcher{}
	sess := NewSession(carts, orders)
	defer sess.Close()

	sess.SetIdentity(context.Background(), &entity.Identity{UID: "user-1"})
	carts.subs[0].onSnap([]*entity.CartItem{{ProductID: "p1", Quantity: 1}})
	orders.subs[0].onSnap([]*entity.Order{{ID: "order-1"}})

	sess.SetIdentity(context.Background(), nil)

	assert.Nil(t, sess.Identity())
	assert.Empty(t, sess.Cart())
	assert.Empty(t, sess.Orders())
	assert.Equal(t, 1, carts.subs[0].cancelled)
	assert.Equal(t, 1, orders.subs[0].cancelled)
}

func TestSessionSwitchCancelsBeforeReopening(t *testing.T) {
	carts := &fakeCartWatcher{}
	orders := &fakeOrderWatcher{}
	sess := NewSession(carts, orders)
	defer sess.Close()

	sess.SetIdentity(context.Background(), &entity.Identity{UID: "user-1"})
	sess.SetIdentity(context.Background(), &entity.Identity{UID: "user-2"})

	// The first pair is torn down exactly once, and a single new pair exists.
	assert.Len(t, carts.subs, 2)
	assert.Equal(t, 1, carts.subs[0].cancelled)
	assert.Equal(t, 0, carts.subs[1].cancelled)
	assert.Equal(t, "user-2", carts.subs[1].uid)
	assert.Equal(t, 1, orders.subs[0].cancelled)
}

func TestSessionDropsLateSnapshotFromPreviousIdentity(t *testing.T) {
	carts := &fakeCartWatcher{}
	sess := NewSession(carts, &fakeOrderWatcher{})
	defer sess.Close()

	sess.SetIdentity(context.Background(), &entity.Identity{UID: "user-1"})
	sess.SetIdentity(context.Background(), &entity.Identity{UID: "user-2"})

	// A snapshot from the cancelled stream arrives after the switch.
	carts.subs[0].onSnap([]*entity.CartItem{{ProductID: "stale", Quantity: 9}})

	assert.Empty(t, sess.Cart())
}

func TestSessionNotifiesOnChange(t *testing.T) {
	carts := &fakeCartWatcher{}
	sess := NewSession(carts, &fakeOrderWatcher{})
	defer sess.Close()

	var concerns []Concern
	unsub := sess.OnChange(func(c Concern) {
		concerns = append(concerns, c)
	})

	sess.SetIdentity(context.Background(), &entity.Identity{UID: "user-1"})
	carts.subs[0].onSnap([]*entity.CartItem{{ProductID: "p1", Quantity: 1}})

	assert.Contains(t, concerns, ConcernSession)
	assert.Contains(t, concerns, ConcernCart)

	before := len(concerns)
	unsub()
	carts.subs[0].onSnap(nil)
	assert.Len(t, concerns, before)
}

func TestSessionNotifiesSessionTransitions(t *testing.T) {
	sess := NewSession(&fakeCartWatcher{}, &fakeOrderWatcher{})
	defer sess.Close()

	var seen []*entity.Identity
	unsub := sess.OnSessionChange(func(id *entity.Identity) {
		seen = append(seen, id)
	})
	defer unsub()

	sess.SetIdentity(context.Background(), &entity.Identity{UID: "user-1"})
	sess.SetIdentity(context.Background(), nil)

	if assert.Len(t, seen, 2) {
		assert.Equal(t, "user-1", seen[0].UID)
		assert.Nil(t, seen[1])
	}
}

func TestSessionCloseStopsFurtherTransitions(t *testing.T) {
	carts := &fakeCartWatcher{}
	sess := NewSession(carts, &fakeOrderWatcher{})

	sess.SetIdentity(context.Background(), &entity.Identity{UID: "user-1"})
	sess.Close()

	assert.Equal(t, 1, carts.subs[0].cancelled)

	sess.SetIdentity(context.Background(), &entity.Identity{UID: "user-2"})
	assert.Len(t, carts.subs, 1)
	assert.Nil(t, sess.Identity())
}
