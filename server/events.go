package server

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/swipetools/gesturectl/types"
	"github.com/swipetools/gesturectl/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type subscriber struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *subscriber) send(ev types.GestureEvent) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(ev)
}

// handleEvents upgrades the connection and streams every classified gesture
// to it as JSON until the client goes away.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		utils.Warn("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sub := &subscriber{conn: conn}
	s.mu.Lock()
	s.subscribers[sub] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.subscribers, sub)
		s.mu.Unlock()
	}()

	// drain client messages; the stream is one-way
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			utils.Verbose("event subscriber disconnected: %v", err)
			return
		}
	}
}

// Publish implements engine.Notifier: count the gesture and fan it out to
// the websocket subscribers. Called from the event loop; writes never block
// the loop for longer than a local socket write.
func (s *Server) Publish(ev types.GestureEvent) {
	s.mu.Lock()
	s.classified++
	if ev.Fired {
		s.fired++
	}
	subs := make([]*subscriber, 0, len(s.subscribers))
	for sub := range s.subscribers {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		if err := sub.send(ev); err != nil {
			sub.conn.Close()
		}
	}
}
