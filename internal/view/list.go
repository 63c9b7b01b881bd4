package view

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"salesdesk/internal/notify"
)

// ListView is the displayed collection of one entity type
type ListView[T any] struct {
	src      Source[T]
	registry *notify.Registry
	topic    notify.Topic
	logger   *zap.Logger

	// refreshMu orders refreshes so an older FindAll never overwrites a newer one
	refreshMu sync.Mutex

	mu    sync.RWMutex
	items []T
	subs  []*notify.Subscription
}

// NewListView creates a list over src. topic is published after Remove.
func NewListView[T any](src Source[T], registry *notify.Registry, topic notify.Topic, logger *zap.Logger) *ListView[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ListView[T]{
		src:      src,
		registry: registry,
		topic:    topic,
		logger:   logger.Named("list").With(zap.String("topic", string(topic))),
		items:    make([]T, 0),
	}
}

// Attach subscribes the list to topics; each notification triggers Refresh
func (v *ListView[T]) Attach(topics ...notify.Topic) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, t := range topics {
		v.subs = append(v.subs, v.registry.Subscribe(t, v))
	}
}

// OnDataChanged implements notify.Subscriber
func (v *ListView[T]) OnDataChanged(ctx context.Context, _ notify.Topic) error {
	return v.Refresh(ctx)
}

// Refresh replaces the displayed collection with a fresh FindAll
func (v *ListView[T]) Refresh(ctx context.Context) error {
	v.refreshMu.Lock()
	defer v.refreshMu.Unlock()

	items, err := v.src.FindAll(ctx)
	if err != nil {
		v.logger.Error("refresh failed", zap.Error(err))
		return err
	}

	v.mu.Lock()
	v.items = items
	v.mu.Unlock()
	return nil
}

// Items returns a snapshot of the displayed collection
func (v *ListView[T]) Items() []T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]T, len(v.items))
	copy(out, v.items)
	return out
}

// Remove deletes e and, on success, notifies the list's topic. An
// IntegrityError from the service is returned as is for the caller to show.
func (v *ListView[T]) Remove(ctx context.Context, e T) error {
	if err := v.src.Remove(ctx, e); err != nil {
		return err
	}
	publish(ctx, v.registry, v.topic, v.logger)
	return nil
}

// Close detaches the list from every topic
func (v *ListView[T]) Close() {
	v.mu.Lock()
	subs := v.subs
	v.subs = nil
	v.mu.Unlock()

	for _, s := range subs {
		s.Unsubscribe()
	}
}

// publish notifies topic after a confirmed write. Subscriber failures do not
// undo the write, so they are logged rather than returned.
func publish(ctx context.Context, registry *notify.Registry, topic notify.Topic, logger *zap.Logger) {
	if err := registry.Notify(ctx, topic); err != nil {
		logger.Warn("change notification incomplete", zap.String("topic", string(topic)), zap.Error(err))
	}
}
