package firestore

import (
	"context"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"saturnalia/pkg/logger"
	"saturnalia/pkg/metrics"
)

const maxStreamRetries = 5

// Filter is a single equality-style constraint on a collection query.
type Filter struct {
	Field string
	Op    string
	Value interface{}
}

// Order sorts the stream by a single field.
type Order struct {
	Field string
	Desc  bool
}

// Descriptor names a collection (slash-separated path for sub-collections)
// with an optional filter and ordering.
type Descriptor struct {
	Path    string
	Filter  *Filter
	OrderBy *Order
}

// CancelFunc releases the remote subscription. Calling it more than once is
// a no-op.
type CancelFunc func()

// Subscriber opens live Firestore query subscriptions and delivers every
// snapshot as the complete materialized document list, never a delta. The
// caller replaces its local mirror wholesale on each delivery.
type Subscriber struct {
	client *firestore.Client
}

func NewSubscriber(client *firestore.Client) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe starts streaming snapshots for the descriptor until the returned
// CancelFunc is called or ctx is done. Transient stream errors are retried
// with backoff up to maxStreamRetries before the subscription gives up; in
// every failure mode the last delivered snapshot stays with the caller, data
// is never cleared.
func (s *Subscriber) Subscribe(ctx context.Context, d Descriptor, onSnapshot func(docs []*firestore.DocumentSnapshot)) CancelFunc {
	ctx, cancel := context.WithCancel(ctx)

	go s.run(ctx, d, onSnapshot)

	var once sync.Once
	return func() {
		once.Do(cancel)
	}
}

func (s *Subscriber) run(ctx context.Context, d Descriptor, onSnapshot func(docs []*firestore.DocumentSnapshot)) {
	attempt := 0
	for {
		delivered, err := s.stream(ctx, d, onSnapshot)
		if err == nil {
			return
		}
		if delivered {
			// The stream was healthy before it broke; start the budget over.
			attempt = 0
		}

		metrics.SubscriptionErrors.WithLabelValues(d.Path).Inc()

		if !retryable(err) || attempt >= maxStreamRetries {
			// Leave the caller's mirror untouched; stale data beats no data.
			logger.Error("Subscription stream for %s failed permanently: %v", d.Path, err)
			return
		}

		attempt++
		wait := backoffFor(attempt)
		logger.Warn("Subscription stream for %s failed (attempt %d/%d), retrying in %s: %v",
			d.Path, attempt, maxStreamRetries, wait, err)

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return
		}
	}
}

// stream runs one snapshots iterator until cancellation (nil error) or a
// stream failure. delivered reports whether at least one snapshot reached
// the caller on this attempt.
func (s *Subscriber) stream(ctx context.Context, d Descriptor, onSnapshot func(docs []*firestore.DocumentSnapshot)) (delivered bool, err error) {
	query := s.client.Collection(d.Path).Query
	if d.Filter != nil {
		query = query.Where(d.Filter.Field, d.Filter.Op, d.Filter.Value)
	}
	if d.OrderBy != nil {
		dir := firestore.Asc
		if d.OrderBy.Desc {
			dir = firestore.Desc
		}
		query = query.OrderBy(d.OrderBy.Field, dir)
	}

	iter := query.Snapshots(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if err != nil {
			if ctx.Err() != nil || status.Code(err) == codes.Canceled {
				return delivered, nil
			}
			return delivered, err
		}

		docs, err := snap.Documents.GetAll()
		if err != nil {
			logger.Error("Failed to materialize snapshot for %s: %v", d.Path, err)
			metrics.SubscriptionErrors.WithLabelValues(d.Path).Inc()
			continue
		}

		delivered = true
		metrics.SnapshotsDelivered.WithLabelValues(d.Path).Inc()
		onSnapshot(docs)
	}
}

// retryable reports whether a stream error is worth another attempt.
func retryable(err error) bool {
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted:
		return true
	}
	return false
}

func backoffFor(attempt int) time.Duration {
	wait := time.Second << uint(attempt-1)
	if wait > 30*time.Second {
		wait = 30 * time.Second
	}
	return wait
}
