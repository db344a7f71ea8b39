package handler

import (
	"net/http"

	"firebase.google.com/go/v4/auth"
	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"taskhive/internal/infrastructure/ws"
	"taskhive/pkg/errors"
	"taskhive/pkg/response"
)

type WebSocketHandler struct {
	hub        *ws.Hub
	authClient *auth.Client
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // TODO: restrict origins once the web client's domain is fixed
	},
}

func NewWebSocketHandler(hub *ws.Hub, authClient *auth.Client) *WebSocketHandler {
	return &WebSocketHandler{
		hub:        hub,
		authClient: authClient,
	}
}

// HandleWebSocket authenticates via the token query parameter (browsers
// cannot set headers on websocket upgrades), upgrades, and registers the
// client with the hub.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	tokenStr := c.QueryParam("token")
	if tokenStr == "" {
		return response.Error(c, errors.Unauthorized("Token is required", nil))
	}

	token, err := h.authClient.VerifyIDToken(c.Request().Context(), tokenStr)
	if err != nil {
		return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := ws.NewClient(token.UID, conn)

	h.hub.Register <- client

	go client.ReadPump(h.hub)
	go client.WritePump()

	return nil
}
