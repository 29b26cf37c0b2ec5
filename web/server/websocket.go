package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const wsWriteTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 64 * 1024,
	// The preview page may be served from another origin during development
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleRenderWebSocket streams a render over a websocket. Every message is
// a JSON RenderEvent; the server closes the connection after the final
// complete or error event. Closing the socket from the client cancels the
// render.
func (s *Server) handleRenderWebSocket(w http.ResponseWriter, r *http.Request) {
	// Validate before upgrading so bad requests get a plain HTTP error
	req, err := parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorUpdate{Message: fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error response
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Read loop detects client disconnects and close frames
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for event := range s.startRender(ctx, req) {
		conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteJSON(event); err != nil {
			cancel()
			// Drain so the render goroutine can exit
			continue
		}
	}

	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "render finished"))
}
