package live

import (
	"net/http"

	"github.com/gorilla/websocket"
)

func websocketUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		// origin policy is enforced by the CORS layer in front
		CheckOrigin: func(r *http.Request) bool { return true },
	}
}
