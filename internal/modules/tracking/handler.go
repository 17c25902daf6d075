package tracking

import (
	"net/http"
	"strings"

	"ecowaste/internal/domain"
	"ecowaste/internal/middleware"
	"ecowaste/internal/pkg/jwt"
	"ecowaste/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type Handler struct {
	hub      *Hub
	jwt      *jwt.Service
	upgrader websocket.Upgrader
}

// NewHandler accepts browser connections from allowedOrigins only. An empty
// list disables the origin check.
func NewHandler(hub *Hub, jwtService *jwt.Service, allowedOrigins []string) *Handler {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins[o] = true
		}
	}
	return &Handler{
		hub: hub,
		jwt: jwtService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(origins) == 0 || origin == "" || origins[origin]
			},
		},
	}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/ws/pickups", h.HandleWebSocket)
}

// HandleWebSocket streams pickup events.
//
// Endpoint: GET /ws/pickups?token=JWT
//
// Browsers cannot set headers on the handshake, so the token comes from the
// query string or the auth cookie.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token, _ = c.Cookie(middleware.TokenCookie)
	}
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Token is required. Use ?token=YOUR_JWT_TOKEN")
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		h.hub.loggerf("level=warn msg=tracking upgrade failed account_id=%d err=%v", claims.AccountID, err)
		return
	}

	h.hub.serve(conn, claims.AccountID, claims.Role == string(domain.RoleAdmin))
}
