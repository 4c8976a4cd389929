package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/linskybing/formflow/internal/api/middleware"
	"github.com/linskybing/formflow/internal/domain/notification"
	"github.com/linskybing/formflow/pkg/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deliver(t *testing.T, env *testEnv, recipient, formID string) {
	t.Helper()
	require.NoError(t, env.Services.Notification.Deliver(context.Background(), notification.Event{
		Category:          notification.CategoryFormAssigned,
		RecipientUserID:   recipient,
		FormID:            formID,
		FormTypeName:      "Windows",
		ProjectIdentifier: "proj-1",
	}))
}

func TestNotificationsListAndMarkRead(t *testing.T) {
	env := setupEnv(t)
	deliver(t, env, env.Customer.ID, "form-1")
	deliver(t, env, env.Stranger.ID, "form-2")

	resp, err := env.CustomerClient.GET("/notifications", map[string]string{"unread": "true"})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rows []notification.Notification
	require.NoError(t, resp.DecodeJSON(&rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "/forms/form-1", rows[0].Link)
	assert.Equal(t, "New Form Assigned: Windows", rows[0].Title)

	// not the stranger's notification
	resp, err = env.StrangerClient.PUT("/notifications/"+rows[0].ID+"/read", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = env.CustomerClient.PUT("/notifications/"+rows[0].ID+"/read", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var msg response.MessageResponse
	require.NoError(t, resp.DecodeJSON(&msg))
	assert.Equal(t, "Notification marked as read", msg.Message)

	resp, err = env.CustomerClient.GET("/notifications", map[string]string{"unread": "true"})
	require.NoError(t, err)
	require.NoError(t, resp.DecodeJSON(&rows))
	assert.Empty(t, rows)

	resp, err = env.CustomerClient.GET("/notifications")
	require.NoError(t, err)
	require.NoError(t, resp.DecodeJSON(&rows))
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Read)
}

func TestNotificationStream(t *testing.T) {
	env := setupEnv(t)
	deliver(t, env, env.Customer.ID, "form-1")

	srv := httptest.NewServer(env.Router)
	t.Cleanup(srv.Close)

	token, err := middleware.GenerateToken(env.Customer, time.Hour)
	require.NoError(t, err)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/notifications?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var n notification.Notification
	require.NoError(t, conn.ReadJSON(&n))
	assert.Equal(t, env.Customer.ID, n.UserID)
	assert.Equal(t, "/forms/form-1", n.Link)
}

func TestNotificationStreamRequiresToken(t *testing.T) {
	env := setupEnv(t)
	srv := httptest.NewServer(env.Router)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/notifications"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
