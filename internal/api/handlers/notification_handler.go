package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/linskybing/formflow/internal/application"
	"github.com/linskybing/formflow/internal/domain/notification"
	"github.com/linskybing/formflow/internal/repository"
	"github.com/linskybing/formflow/pkg/response"
	"github.com/linskybing/formflow/pkg/utils"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
)

// notificationPollInterval is how often the stream checks for new rows.
var notificationPollInterval = 3 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type NotificationHandler struct {
	svc *application.NotificationService
}

func NewNotificationHandler(svc *application.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// ListNotifications godoc
// @Summary List the caller's notifications, newest first
// @Tags notifications
// @Security BearerAuth
// @Produce json
// @Param unread query bool false "Only unread notifications"
// @Param limit query int false "Max number of records (default 50, max 200)"
// @Success 200 {array} notification.Notification
// @Router /notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	unread, _ := strconv.ParseBool(c.DefaultQuery("unread", "false"))

	rows, err := h.svc.ListForUser(c.Request.Context(), repository.NotificationQuery{
		UserID:     uid,
		UnreadOnly: unread,
		Limit:      limit,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// MarkRead godoc
// @Summary Mark one of the caller's notifications as read
// @Tags notifications
// @Security BearerAuth
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} response.MessageResponse
// @Failure 404 {object} response.ErrorResponse "Notification not found"
// @Router /notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}

	if err := h.svc.MarkRead(c.Request.Context(), c.Param("id"), uid); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Notification marked as read"})
}

// StreamNotifications godoc
// @Summary Websocket stream of the caller's unread notifications
// @Description Sends the current unread notifications, then each new one as it is stored. The token may be passed as ?token= for browsers.
// @Tags notifications
// @Security BearerAuth
// @Router /ws/notifications [get]
func (h *NotificationHandler) StreamNotifications(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader has already answered the client
		log.Printf("websocket upgrade failed for user %s: %v", uid, err)
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader: only pongs and close frames are expected.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	h.pushNotifications(ctx, conn, uid)
	_ = conn.Close()
}

func (h *NotificationHandler) pushNotifications(ctx context.Context, conn *websocket.Conn, uid string) {
	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()
	pollTicker := time.NewTicker(notificationPollInterval)
	defer pollTicker.Stop()

	var since *time.Time
	send := func() bool {
		rows, err := h.svc.ListForUser(ctx, repository.NotificationQuery{
			UserID:     uid,
			UnreadOnly: true,
			Since:      since,
		})
		if err != nil {
			if ctx.Err() == nil {
				log.Printf("notification stream: list for %s failed: %v", uid, err)
			}
			return ctx.Err() == nil
		}
		// rows are newest first; deliver oldest first
		for i := len(rows) - 1; i >= 0; i-- {
			if err := writeNotification(conn, rows[i]); err != nil {
				return false
			}
			t := rows[i].CreatedAt
			since = &t
		}
		return true
	}

	if !send() {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-pollTicker.C:
			if !send() {
				return
			}
		case <-pingTicker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func writeNotification(conn *websocket.Conn, n notification.Notification) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(n)
}
