// Package notify is the change-notification registry.
//
// Views subscribe to a Topic before they become active. After a mutating
// view has confirmed a successful save or delete it calls Notify, which runs
// every subscriber of the topic synchronously, in subscription order, before
// returning. Subscribers typically re-query the store and redraw.
//
// A Subscription refers back to its Registry through a weak pointer, so a
// torn-down view holding a stale subscription never keeps the registry
// alive, and Unsubscribe after the registry is gone is a no-op.
package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"weak"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Topic names an entity type whose persisted state changed
type Topic string

const (
	TopicDepartment Topic = "department"
	TopicSeller     Topic = "seller"
)

// Subscriber reacts to a change on a topic
type Subscriber interface {
	OnDataChanged(ctx context.Context, topic Topic) error
}

// SubscriberFunc adapts a function to Subscriber
type SubscriberFunc func(ctx context.Context, topic Topic) error

// OnDataChanged calls f
func (f SubscriberFunc) OnDataChanged(ctx context.Context, topic Topic) error {
	return f(ctx, topic)
}

// Subscription is the handle returned by Subscribe
type Subscription struct {
	ID    string
	Topic Topic

	sub      Subscriber
	registry weak.Pointer[Registry]
}

// Unsubscribe removes the subscription. Calling it more than once, or after
// the registry has been collected, is harmless.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	if r := s.registry.Value(); r != nil {
		r.remove(s)
	}
}

// Registry maps topics to their ordered subscriptions
type Registry struct {
	mu     sync.Mutex
	topics map[Topic][]*Subscription
	logger *zap.Logger
}

// NewRegistry creates an empty registry
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		topics: make(map[Topic][]*Subscription),
		logger: logger.Named("notify"),
	}
}

// Subscribe appends sub to the subscribers of topic
func (r *Registry) Subscribe(topic Topic, sub Subscriber) *Subscription {
	s := &Subscription{
		ID:       uuid.NewString(),
		Topic:    topic,
		sub:      sub,
		registry: weak.Make(r),
	}

	r.mu.Lock()
	r.topics[topic] = append(r.topics[topic], s)
	n := len(r.topics[topic])
	r.mu.Unlock()

	r.logger.Debug("subscribed", zap.String("topic", string(topic)), zap.String("id", s.ID), zap.Int("subscribers", n))
	return s
}

func (r *Registry) remove(s *Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs := r.topics[s.Topic]
	for i, cur := range subs {
		if cur == s {
			r.topics[s.Topic] = append(subs[:i:i], subs[i+1:]...)
			r.logger.Debug("unsubscribed", zap.String("topic", string(s.Topic)), zap.String("id", s.ID))
			return
		}
	}
}

// Count returns the number of subscribers on topic
func (r *Registry) Count(topic Topic) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.topics[topic])
}

// Notify invokes every subscriber of topic in subscription order. All
// subscribers run even when one fails; their errors are joined.
func (r *Registry) Notify(ctx context.Context, topic Topic) error {
	// Snapshot so subscribers may unsubscribe while being notified
	r.mu.Lock()
	subs := append([]*Subscription(nil), r.topics[topic]...)
	r.mu.Unlock()

	var errs []error
	for _, s := range subs {
		if err := s.sub.OnDataChanged(ctx, topic); err != nil {
			r.logger.Warn("subscriber failed",
				zap.String("topic", string(topic)),
				zap.String("id", s.ID),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("subscriber %s: %w", s.ID, err))
		}
	}
	return errors.Join(errs...)
}
