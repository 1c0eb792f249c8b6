package observe

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestBroadcasterDeliversSnapshots(t *testing.T) {
	b := NewBroadcaster(nil)
	defer b.Close()

	srv := httptest.NewServer(http.HandlerFunc(b.Handle))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	waitFor(t, func() bool { return b.SubscriberCount() == 1 })

	b.Publish(TickSnapshot{
		Tick: 42,
		Agents: []AgentSnapshot{
			{ID: "a1", Species: "wolf", Goals: []string{"hunt"}},
		},
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var snap TickSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if snap.Tick != 42 {
		t.Fatalf("tick = %d, want 42", snap.Tick)
	}
	if len(snap.Agents) != 1 || snap.Agents[0].Goals[0] != "hunt" {
		t.Fatalf("unexpected agents payload: %+v", snap.Agents)
	}
}

func TestBroadcasterDropsSlowSubscriber(t *testing.T) {
	b := NewBroadcaster(nil)

	// A subscriber with no reader and no queue space must be dropped on
	// the first publish rather than stalling the tick loop.
	sub := &subscriber{send: make(chan []byte)}
	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	b.Publish(TickSnapshot{Tick: 1})

	if got := b.SubscriberCount(); got != 0 {
		t.Fatalf("slow subscriber not dropped, count=%d", got)
	}
	if _, open := <-sub.send; open {
		t.Fatalf("dropped subscriber's channel should be closed")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition never met")
}
