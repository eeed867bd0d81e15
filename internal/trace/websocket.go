package trace

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

// WebSocketSink is an optional live-inspection sink: every Notify call
// is broadcast as JSON to all currently-connected clients, the way
// sentra's network_websocket_server module broadcasts to WebSocket
// clients. It never blocks the combinator calling Notify: broadcasts
// are fanned out on a best-effort basis to a bounded outbox per client.
type WebSocketSink struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*wsClient]struct{}
}

type wsClient struct {
	conn   *websocket.Conn
	outbox chan []byte
}

// NewWebSocketSink builds a sink ready to be mounted as an http.Handler
// (see ServeHTTP) and run alongside an errgroup-managed server.
func NewWebSocketSink() *WebSocketSink {
	return &WebSocketSink{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[*wsClient]struct{}),
	}
}

// ServeHTTP upgrades the connection and registers the client until it
// disconnects.
func (s *WebSocketSink) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &wsClient{conn: conn, outbox: make(chan []byte, 32)}

	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.clients, c)
		s.mu.Unlock()
		conn.Close()
	}()

	for msg := range c.outbox {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// Notify implements Sink: it fans Event out to every connected client,
// dropping it for any client whose outbox is full rather than blocking
// the caller.
func (s *WebSocketSink) Notify(ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.outbox <- payload:
		default:
		}
	}
}

// Serve runs an HTTP server exposing the sink at "/" until ctx is
// canceled, using an errgroup to join the listen goroutine with
// graceful shutdown — the same join-then-shutdown shape sentra's
// websocket server functions rely on its underlying network module for.
func (s *WebSocketSink) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return srv.Shutdown(context.Background())
	})
	return g.Wait()
}
