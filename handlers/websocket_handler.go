package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/fitness-challenge/feed"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The feed carries nothing sensitive; origins are filtered by the
		// CORS layer for regular requests.
		return true
	},
}

type WebSocketHandler struct {
	hub *feed.Hub
}

func NewWebSocketHandler(hub *feed.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// Feed upgrades the connection and streams live activity events.
func (h *WebSocketHandler) Feed(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", slog.Any("error", err))
		return
	}

	client := &feed.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 64),
	}
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
