package handlers

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"sellerdesk/internal/auth"
	"sellerdesk/pkg/models"
)

// ImportProgressHandler pushes import job progress over WebSocket
type ImportProgressHandler struct {
	authService *auth.Service
	upgrader    websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

// NewImportProgressHandler creates a new import progress handler
func NewImportProgressHandler(authService *auth.Service) *ImportProgressHandler {
	return &ImportProgressHandler{
		authService: authService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: map[*websocket.Conn]bool{},
	}
}

// Handle godoc
// @Summary Subscribe to import progress events
// @Description WebSocket endpoint; pass the access token as the token query parameter
// @Tags products
// @Param token query string true "Access token"
// @Router /ws/imports [get]
func (h *ImportProgressHandler) Handle(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "no token provided", "code": "NO_TOKEN"})
	}
	if claims, err := h.authService.ValidateToken(token); err != nil || claims.Type != "access" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "token is invalid or expired", "code": "TOKEN_EXPIRED"})
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return err
	}

	h.mu.Lock()
	h.conns[conn] = true
	h.mu.Unlock()

	log.Debug().Msg("import progress subscriber connected")

	// Block reading until the client goes away; writes happen in Broadcast
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	conn.Close()

	return nil
}

// Broadcast sends a progress snapshot to every subscriber. Wired as the
// importer's ProgressNotifier.
func (h *ImportProgressHandler) Broadcast(progress models.ImportJobProgress) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		if err := conn.WriteJSON(progress); err != nil {
			conn.Close()
			delete(h.conns, conn)
		}
	}
}
