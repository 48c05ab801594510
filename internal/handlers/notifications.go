package handlers

import (
	"net/http"
	"time"

	"inkstream/internal/auth"
	"inkstream/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// NotificationsHandler handles notification listing, read receipts and
// the live stream.
type NotificationsHandler struct {
	notifications *services.NotificationsService
	pollInterval  time.Duration
}

// NewNotificationsHandler creates a new notifications handler
func NewNotificationsHandler(notifications *services.NotificationsService) *NotificationsHandler {
	return &NotificationsHandler{
		notifications: notifications,
		pollInterval:  3 * time.Second,
	}
}

// ListNotifications handles GET /api/users/notifications. Unread
// only, newest first.
func (h *NotificationsHandler) ListNotifications(c *gin.Context) {
	principal := auth.RequirePrincipal(c)
	if principal == nil {
		return
	}
	limit, _, offset := parsePagination(c)

	notifications, err := h.notifications.ListUnread(principal.UserID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkRead handles PATCH /api/users/notifications/:id.
func (h *NotificationsHandler) MarkRead(c *gin.Context) {
	principal := auth.RequirePrincipal(c)
	if principal == nil {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.notifications.MarkRead(id, principal); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Browser clients connect cross-origin; the bearer token is the
		// access control
		return true
	},
}

// Stream handles GET /api/users/notifications/stream: upgrades to a
// websocket and pushes notifications created after connect. Delivery
// rides on the persisted rows; a dropped connection loses nothing.
func (h *NotificationsHandler) Stream(c *gin.Context) {
	principal := auth.RequirePrincipal(c)
	if principal == nil {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	// Drain client frames so close frames are processed
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	lastSeen := time.Now()
	ticker := time.NewTicker(h.pollInterval)
	defer ticker.Stop()

	for range ticker.C {
		notifications, err := h.notifications.ListSince(principal.UserID, lastSeen)
		if err != nil {
			return
		}
		for _, notification := range notifications {
			if err := conn.WriteJSON(notification); err != nil {
				return
			}
			if notification.CreatedAt.After(lastSeen) {
				lastSeen = notification.CreatedAt
			}
		}
		if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(time.Second)); err != nil {
			return
		}
	}
}
