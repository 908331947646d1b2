package orderControllers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/junaidrashid-git/sunrise-cafe/events"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Route is already behind the admin session check.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// OrderFeedHandler upgrades the admin connection and streams OrderPlaced events to it.
func OrderFeedHandler(hub *events.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			slog.Warn("Order feed upgrade failed", "err", err)
			return
		}
		slog.Info("Order feed client connected", "remote", conn.RemoteAddr())
		hub.Serve(conn)
		slog.Info("Order feed client disconnected", "remote", conn.RemoteAddr())
	}
}
