package notify

import (
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func recorder(log *[]string, name string) SubscriberFunc {
	return func(_ context.Context, topic Topic) error {
		*log = append(*log, name+":"+string(topic))
		return nil
	}
}

func TestNotifyRunsInSubscriptionOrder(t *testing.T) {
	r := NewRegistry(zaptest.NewLogger(t))
	var log []string

	r.Subscribe(TopicDepartment, recorder(&log, "a"))
	r.Subscribe(TopicDepartment, recorder(&log, "b"))
	r.Subscribe(TopicSeller, recorder(&log, "s"))
	r.Subscribe(TopicDepartment, recorder(&log, "c"))

	require.NoError(t, r.Notify(context.Background(), TopicDepartment))
	assert.Equal(t, []string{"a:department", "b:department", "c:department"}, log)
}

func TestNotifyWithoutSubscribers(t *testing.T) {
	r := NewRegistry(nil)
	assert.NoError(t, r.Notify(context.Background(), TopicSeller))
}

func TestUnsubscribe(t *testing.T) {
	r := NewRegistry(nil)
	var log []string

	a := r.Subscribe(TopicSeller, recorder(&log, "a"))
	r.Subscribe(TopicSeller, recorder(&log, "b"))
	assert.Equal(t, 2, r.Count(TopicSeller))
	assert.NotEmpty(t, a.ID)

	a.Unsubscribe()
	a.Unsubscribe()
	assert.Equal(t, 1, r.Count(TopicSeller))

	require.NoError(t, r.Notify(context.Background(), TopicSeller))
	assert.Equal(t, []string{"b:seller"}, log)

	var nilSub *Subscription
	nilSub.Unsubscribe()
}

func TestUnsubscribeDuringNotify(t *testing.T) {
	r := NewRegistry(nil)
	var log []string

	var self *Subscription
	self = r.Subscribe(TopicDepartment, SubscriberFunc(func(context.Context, Topic) error {
		log = append(log, "once")
		self.Unsubscribe()
		return nil
	}))
	r.Subscribe(TopicDepartment, recorder(&log, "after"))

	require.NoError(t, r.Notify(context.Background(), TopicDepartment))
	require.NoError(t, r.Notify(context.Background(), TopicDepartment))
	assert.Equal(t, []string{"once", "after:department", "after:department"}, log)
}

func TestNotifyJoinsErrors(t *testing.T) {
	r := NewRegistry(zaptest.NewLogger(t))
	errA := errors.New("a failed")
	errC := errors.New("c failed")
	var ran []string

	r.Subscribe(TopicDepartment, SubscriberFunc(func(context.Context, Topic) error {
		ran = append(ran, "a")
		return errA
	}))
	r.Subscribe(TopicDepartment, recorder(&ran, "b"))
	r.Subscribe(TopicDepartment, SubscriberFunc(func(context.Context, Topic) error {
		ran = append(ran, "c")
		return errC
	}))

	err := r.Notify(context.Background(), TopicDepartment)
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errC)
	assert.Equal(t, []string{"a", "b:department", "c"}, ran)
}

func TestUnsubscribeAfterRegistryCollected(t *testing.T) {
	sub := func() *Subscription {
		r := NewRegistry(nil)
		return r.Subscribe(TopicSeller, SubscriberFunc(func(context.Context, Topic) error { return nil }))
	}()

	runtime.GC()
	runtime.GC()

	assert.NotPanics(t, sub.Unsubscribe)
}
