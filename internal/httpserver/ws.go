package httpserver

import (
	"log"
	"net/http"

	"stockorders/internal/notify"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The hub only pushes events; cross-origin browsers may attach.
	CheckOrigin: func(*http.Request) bool { return true },
}

// wsHandler attaches a client to the order-event hub until it disconnects.
func wsHandler(hub *notify.Hub, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Printf("ws: upgrade failed: %v", err)
			return
		}
		hub.Register(conn)
		defer hub.Unregister(conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}
