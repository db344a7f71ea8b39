package router

import (
	"github.com/labstack/echo/v4"

	"taskhive/internal/adapter/api/handler"
)

// SetupWebSocketRouter registers the live event stream endpoint. The
// handler authenticates via a token query parameter because browser
// WebSocket clients cannot set an Authorization header.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	e.GET("/v1/ws", wsHandler.HandleWebSocket)
}
