// handlers/events.go
package handlers

import (
	"log"
	"net/http"
	"time"

	"hausa-platform/apperr"
	"hausa-platform/events"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// EventStream oturum sahibinin seviye ve başarı olaylarını websocket üzerinden iletir.
func EventStream(hub *events.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := currentUser(r)
		if err != nil {
			apperr.Write(w, err)
			return
		}

		// WebSocket bağlantısını yükselt
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("WebSocket yükseltilemedi: %v", err)
			return
		}
		defer conn.Close()

		ch, cancel := hub.Subscribe(id.UserID)
		defer cancel()

		// İstemciden gelen mesajlar yalnızca kapanışı ve pong'u algılamak için okunur
		closed := make(chan struct{})
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case ev, ok := <-ch:
				if !ok {
					return
				}
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(ev); err != nil {
					return
				}
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-closed:
				return
			case <-r.Context().Done():
				return
			}
		}
	}
}
