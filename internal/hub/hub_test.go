package hub

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"salesdesk/internal/notify"
)

func TestChangedEvent(t *testing.T) {
	assert.Equal(t, "department_changed", ChangedEvent(notify.TopicDepartment).Type)
	assert.Equal(t, "seller_changed", ChangedEvent(notify.TopicSeller).Type)
}

func TestNotificationReachesClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := New(zaptest.NewLogger(t))
	go h.Run(ctx)

	registry := notify.NewRegistry(nil)
	h.Attach(registry, notify.TopicDepartment, notify.TopicSeller)
	defer h.Detach()

	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := make(chan string, 16)
	go func() {
		sc := bufio.NewScanner(resp.Body)
		for sc.Scan() {
			if sc.Text() != "" {
				lines <- sc.Text()
			}
		}
		close(lines)
	}()

	require.Equal(t, ": connected", <-lines)
	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, registry.Notify(ctx, notify.TopicSeller))

	select {
	case line := <-lines:
		assert.True(t, strings.HasPrefix(line, "data: "), line)
		assert.JSONEq(t, `{"type":"seller_changed"}`, strings.TrimPrefix(line, "data: "))
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}
}

func TestDetach(t *testing.T) {
	registry := notify.NewRegistry(nil)
	h := New(nil)

	h.Attach(registry, notify.TopicDepartment)
	assert.Equal(t, 1, registry.Count(notify.TopicDepartment))

	h.Detach()
	assert.Zero(t, registry.Count(notify.TopicDepartment))
}

func TestBroadcastDropsWhenFull(t *testing.T) {
	h := New(nil)
	for i := 0; i < cap(h.broadcast)+10; i++ {
		h.Broadcast(Event{Type: "x"})
	}
	assert.Len(t, h.broadcast, cap(h.broadcast))
}
