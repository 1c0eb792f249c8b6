// Package observe streams per-tick decision snapshots to websocket
// subscribers. The stream is observational only: subscribers cannot feed
// anything back into the simulation, and a slow subscriber is dropped
// rather than allowed to stall the tick loop.
package observe

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// AgentSnapshot is one agent's decision state at a tick.
type AgentSnapshot struct {
	ID      string   `json:"id"`
	Species string   `json:"species"`
	X       float64  `json:"x"`
	Z       float64  `json:"z"`
	Hunger  float64  `json:"hunger"`
	Thirst  float64  `json:"thirst"`
	Rank    string   `json:"rank,omitempty"`
	PackID  string   `json:"packId,omitempty"`
	Goals   []string `json:"goals"`
	Dead    bool     `json:"dead,omitempty"`
}

// TickSnapshot is the full broadcast frame.
type TickSnapshot struct {
	Tick   uint64          `json:"tick"`
	Agents []AgentSnapshot `json:"agents"`
}

const subscriberBuffer = 8

// Broadcaster fans tick snapshots out to websocket subscribers.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[*subscriber]struct{}

	upgrader websocket.Upgrader
	log      *slog.Logger
}

type subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

// NewBroadcaster builds an empty broadcaster. The logger may be nil.
func NewBroadcaster(log *slog.Logger) *Broadcaster {
	if log == nil {
		log = slog.Default()
	}
	return &Broadcaster{
		subs: make(map[*subscriber]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		log: log,
	}
}

// Publish marshals the snapshot once and queues it for every subscriber.
// A subscriber whose queue is full is disconnected on the spot.
func (b *Broadcaster) Publish(snap TickSnapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		b.log.Error("marshal snapshot", "err", err)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs {
		select {
		case sub.send <- data:
		default:
			b.log.Warn("dropping slow subscriber")
			delete(b.subs, sub)
			close(sub.send)
		}
	}
}

// SubscriberCount reports the current number of attached subscribers.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Handle upgrades an HTTP request to a websocket subscription and pumps
// snapshots until the peer goes away.
func (b *Broadcaster) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.log.Warn("upgrade failed", "err", err)
		return
	}

	sub := &subscriber{conn: conn, send: make(chan []byte, subscriberBuffer)}
	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	go b.writePump(sub)
	b.readPump(sub)
}

func (b *Broadcaster) writePump(sub *subscriber) {
	for data := range sub.send {
		if err := sub.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			b.remove(sub)
			return
		}
	}
	sub.conn.Close()
}

// readPump discards inbound frames; its only job is to notice the close.
func (b *Broadcaster) readPump(sub *subscriber) {
	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			b.remove(sub)
			return
		}
	}
}

func (b *Broadcaster) remove(sub *subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[sub]; ok {
		delete(b.subs, sub)
		close(sub.send)
	}
	sub.conn.Close()
}

// Close disconnects every subscriber.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs {
		delete(b.subs, sub)
		close(sub.send)
		sub.conn.Close()
	}
}
