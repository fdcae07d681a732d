package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"tumaBack/internal/models"
)

func newTestManager(pingEvery time.Duration) *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[int]*websocket.Conn),
		broadcast:  make(chan models.Event),
		direct:     make(chan directEvent),
		register:   make(chan Client),
		unregister: make(chan unreg),
		pingEvery:  pingEvery,
	}
}

// newSocketPair dials a real websocket through httptest and returns the
// server and client ends.
func newSocketPair(t *testing.T) (*websocket.Conn, *websocket.Conn) {
	t.Helper()

	serverConns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		serverConns <- conn
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	server := <-serverConns
	t.Cleanup(func() { server.Close() })
	return server, client
}

func TestHubDeliversDirectEvent(t *testing.T) {
	hub := newTestManager(time.Minute)
	go hub.Run()

	server, client := newSocketPair(t)
	hub.register <- Client{ID: 7, Socket: server}

	hub.PublishToUser(7, models.Event{Type: "booking.status"})

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev models.Event
	if err := client.ReadJSON(&ev); err != nil {
		t.Fatalf("read event: %v", err)
	}
	if ev.Type != "booking.status" {
		t.Errorf("event type = %q; want %q", ev.Type, "booking.status")
	}
}

func TestHubSkipsOfflineUser(t *testing.T) {
	hub := newTestManager(time.Minute)
	go hub.Run()

	done := make(chan struct{})
	go func() {
		hub.PublishToUser(99, models.Event{Type: "message.new"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish to offline user blocked")
	}
}

// Pings and event writes must come from the hub goroutine only; with a
// separate ping goroutine per connection the two writers eventually
// overlap and the connection panics.
func TestHubPingsInterleaveWithEvents(t *testing.T) {
	hub := newTestManager(5 * time.Millisecond)
	go hub.Run()

	server, client := newSocketPair(t)
	hub.register <- Client{ID: 3, Socket: server}

	pinged := make(chan struct{}, 1)
	client.SetPingHandler(func(string) error {
		select {
		case pinged <- struct{}{}:
		default:
		}
		return nil
	})

	const events = 50
	go func() {
		for i := 0; i < events; i++ {
			hub.PublishToUser(3, models.Event{Type: "message.new"})
			time.Sleep(time.Millisecond)
		}
	}()

	client.SetReadDeadline(time.Now().Add(5 * time.Second))
	for received := 0; received < events; received++ {
		var ev models.Event
		if err := client.ReadJSON(&ev); err != nil {
			t.Fatalf("read event %d: %v", received, err)
		}
	}

	select {
	case <-pinged:
	default:
		t.Error("no ping observed while events were flowing")
	}
}
