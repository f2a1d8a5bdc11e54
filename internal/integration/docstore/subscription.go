package docstore

import (
	"context"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/dowry-planner/backend/internal/application/adapter"
	"github.com/dowry-planner/backend/internal/domain/entity"
)

// treeSubscription is the live handle returned by SubscribeTree. Unsubscribe
// is idempotent; the reader goroutines drain and exit once the pub/sub
// connection closes.
type treeSubscription struct {
	cancel context.CancelFunc
	pubsub *redis.PubSub
	once   sync.Once
}

func (s *treeSubscription) Unsubscribe() {
	s.once.Do(func() {
		s.cancel()
		_ = s.pubsub.Close()
	})
}

// SubscribeTree watches the owner's event channel and invokes onUpdate with a
// full tree re-read per notification. Bursts are coalesced through a
// single-slot trigger: while a re-read is in flight further events collapse
// into at most one pending refresh, so the callback always converges on the
// latest state without observing every intermediate one.
func (s *ChecklistStore) SubscribeTree(ctx context.Context, owner string, onUpdate func([]*entity.Group)) (adapter.TreeSubscription, error) {
	runCtx, cancel := context.WithCancel(ctx)
	pubsub := s.client.Subscribe(runCtx, eventsChannel(owner))

	// Force the SUBSCRIBE handshake so a dead backend fails here, not on the
	// first missed event.
	if _, err := pubsub.Receive(runCtx); err != nil {
		cancel()
		_ = pubsub.Close()
		return nil, err
	}

	trigger := make(chan struct{}, 1)
	trigger <- struct{}{} // initial snapshot

	go func() {
		ch := pubsub.Channel()
		for {
			select {
			case <-runCtx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				select {
				case trigger <- struct{}{}:
				default:
				}
			}
		}
	}()

	go func() {
		for {
			select {
			case <-runCtx.Done():
				return
			case <-trigger:
				groups, err := s.FetchTree(runCtx, owner)
				if err != nil {
					if runCtx.Err() == nil {
						slog.Warn("tree re-read after change event failed", "owner", owner, "error", err)
					}
					continue
				}
				onUpdate(groups)
			}
		}
	}()

	return &treeSubscription{
		cancel: cancel,
		pubsub: pubsub,
	}, nil
}
