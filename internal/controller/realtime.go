package controller

import (
	"github.com/cs23b1093/gigflow/internal/notify"

	"github.com/labstack/echo"
	"golang.org/x/net/websocket"
)

// newRealtimeHandler exposes the per-user notification channel. The caller
// authenticates through the same identity middleware as the REST API and is
// then subscribed to its own events until the connection closes.
func newRealtimeHandler(handler *echo.Echo, hub *notify.Hub, identity echo.MiddlewareFunc) {
	handler.GET("/ws", func(c echo.Context) error {
		userId := callerId(c)

		websocket.Handler(func(ws *websocket.Conn) {
			hub.HandleConnection(userId, ws)
		}).ServeHTTP(c.Response(), c.Request())

		return nil
	}, identity)
}
