package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"tumaBack/internal/models"
)

const (
	readLimit          = 1 << 20
	readDeadline       = 120 * time.Second
	writeDeadline      = 5 * time.Second
	pingInterval       = 15 * time.Second
	firstHelloDeadline = 30 * time.Second
)

type directEvent struct {
	userID int
	event  models.Event
}

type unreg struct {
	userID int
	conn   *websocket.Conn
}

type WebSocketManager struct {
	clients    map[int]*websocket.Conn
	broadcast  chan models.Event
	direct     chan directEvent
	register   chan Client
	unregister chan unreg
	pingEvery  time.Duration
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[int]*websocket.Conn),
		broadcast:  make(chan models.Event),
		direct:     make(chan directEvent),
		register:   make(chan Client),
		unregister: make(chan unreg),
		pingEvery:  pingInterval,
	}
}

type Client struct {
	ID     int
	Socket *websocket.Conn
}

// PublishToUser satisfies services.RealtimePublisher. Events for users
// without an open socket are dropped; push notifications cover the
// offline case.
func (ws *WebSocketManager) PublishToUser(userID int, event models.Event) {
	ws.direct <- directEvent{userID: userID, event: event}
}

// All operations on clients happen on this goroutine only. That
// includes pings: gorilla/websocket allows at most one concurrent
// writer per connection, so the ping tick lives in the same select as
// the event writes instead of a per-connection goroutine.
func (ws *WebSocketManager) Run() {
	pings := time.NewTicker(ws.pingEvery)
	defer pings.Stop()

	for {
		select {
		case client := <-ws.register:
			// a user reconnecting replaces their previous socket
			if old, ok := ws.clients[client.ID]; ok && old != nil && old != client.Socket {
				_ = old.Close()
			}
			ws.clients[client.ID] = client.Socket
			log.Printf("WS register user=%d", client.ID)

		case u := <-ws.unregister:
			// remove only if it is still the current socket
			if cur, ok := ws.clients[u.userID]; ok && cur == u.conn {
				_ = cur.Close()
				delete(ws.clients, u.userID)
				log.Printf("WS unregister user=%d", u.userID)
			}

		case event := <-ws.broadcast:
			for id, conn := range ws.clients {
				_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := conn.WriteJSON(event); err != nil {
					log.Printf("broadcast error to=%d: %v", id, err)
					_ = conn.Close()
					delete(ws.clients, id)
				}
			}

		case de := <-ws.direct:
			if conn, ok := ws.clients[de.userID]; ok {
				_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := conn.WriteJSON(de.event); err != nil {
					log.Printf("direct send error to=%d: %v", de.userID, err)
					_ = conn.Close()
					delete(ws.clients, de.userID)
				}
			} else {
				log.Printf("direct skip: user=%d offline", de.userID)
			}

		case <-pings.C:
			for id, conn := range ws.clients {
				_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					log.Printf("ping error to=%d: %v", id, err)
					_ = conn.Close()
					delete(ws.clients, id)
				}
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin:       func(r *http.Request) bool { return true },
	ReadBufferSize:    1024,
	WriteBufferSize:   1024,
	EnableCompression: true,
}

// wsInbound is the frame clients send to post a chat message over the
// socket instead of the REST endpoint.
type wsInbound struct {
	BookingID int    `json:"booking_id"`
	Text      string `json:"text"`
}

// The first frame from the client must be { "userId": <int> }.
func (app *application) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}

	conn.SetReadLimit(readLimit)
	conn.SetReadDeadline(time.Now().Add(firstHelloDeadline))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})

	var hello struct {
		UserID int `json:"userId"`
	}
	if err := conn.ReadJSON(&hello); err != nil || hello.UserID == 0 {
		log.Println("invalid hello payload:", err)
		_ = writeClose(conn, websocket.ClosePolicyViolation, "hello required")
		_ = conn.Close()
		return
	}
	conn.SetReadDeadline(time.Now().Add(readDeadline))

	client := Client{ID: hello.UserID, Socket: conn}
	app.wsManager.register <- client

	go app.handleWebSocketMessages(conn, hello.UserID)
}

func (app *application) handleWebSocketMessages(conn *websocket.Conn, userID int) {
	defer func() {
		app.wsManager.unregister <- unreg{userID: userID, conn: conn}
		_ = conn.Close()
	}()

	for {
		var inbound wsInbound
		if err := conn.ReadJSON(&inbound); err != nil {
			log.Println("read json error:", err)
			_ = writeClose(conn, websocket.CloseNormalClosure, "read error")
			return
		}

		if inbound.BookingID == 0 || strings.TrimSpace(inbound.Text) == "" {
			log.Println("reject: empty booking or text")
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		msg, err := app.messageService.SendMessage(ctx, inbound.BookingID, userID, inbound.Text, nil)
		cancel()
		if err != nil {
			log.Printf("ws message from user=%d rejected: %v", userID, err)
			app.wsManager.direct <- directEvent{
				userID: userID,
				event:  models.Event{Type: "message.error", Payload: map[string]string{"error": err.Error()}},
			}
			continue
		}

		// echo back so the sender sees the stored message (id, timestamps)
		app.wsManager.direct <- directEvent{
			userID: userID,
			event:  models.Event{Type: "message.sent", Payload: msg},
		}
	}
}

func writeClose(conn *websocket.Conn, code int, reason string) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
	return conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(writeDeadline),
	)
}
