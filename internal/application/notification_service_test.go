package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/linskybing/formflow/internal/domain/notification"
	"github.com/linskybing/formflow/internal/domain/user"
	"github.com/linskybing/formflow/internal/repository"
	"github.com/linskybing/formflow/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupNotificationService(t *testing.T) (*NotificationService, *recordingMailer, user.User) {
	repos := repository.NewRepositories(testutils.NewTestDB(t))
	u := user.User{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Role: user.RoleCustomer}
	require.NoError(t, repos.User.CreateUser(context.Background(), &u))

	m := &recordingMailer{}
	return NewNotificationService(repos, m), m, u
}

func TestDeliverFormAssigned(t *testing.T) {
	svc, m, u := setupNotificationService(t)
	ctx := context.Background()

	err := svc.Deliver(ctx, notification.Event{
		Category:          notification.CategoryFormAssigned,
		RecipientUserID:   u.ID,
		FormID:            "form-1",
		FormType:          "WINDOWS",
		FormTypeName:      "Windows",
		ProjectIdentifier: "proj-1",
		Instructions:      "Use <b>white</b> & \"matte\"\nsecond line",
	})
	require.NoError(t, err)

	rows, err := svc.ListForUser(ctx, repository.NotificationQuery{UserID: u.ID})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "New Form Assigned: Windows", rows[0].Title)
	assert.Equal(t, "A Windows form has been assigned to you for project proj-1. Please complete it at your earliest convenience.", rows[0].Message)
	assert.Equal(t, "/forms/form-1", rows[0].Link)
	assert.False(t, rows[0].Read)

	sent := m.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "jane@example.com", sent[0].To)
	assert.Equal(t, "New Form to Complete: Windows", sent[0].Subject)
	assert.Contains(t, sent[0].HTMLBody, "<p>Hello Jane Doe,</p>")
	assert.Contains(t, sent[0].HTMLBody, "Use &lt;b&gt;white&lt;/b&gt; &amp; &quot;matte&quot;<br/>second line")
	assert.NotContains(t, sent[0].HTMLBody, "<b>white</b>")
}

func TestDeliverFormSubmitted(t *testing.T) {
	svc, m, u := setupNotificationService(t)
	submitted := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	err := svc.Deliver(context.Background(), notification.Event{
		Category:          notification.CategoryFormSubmitted,
		RecipientUserID:   u.ID,
		FormID:            "form-1",
		FormTypeName:      "Paint",
		ProjectIdentifier: "proj-1",
		CustomerName:      "Bob Client",
		SubmittedAt:       &submitted,
	})
	require.NoError(t, err)

	sent := m.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Form Submitted by Bob Client", sent[0].Subject)
	assert.Contains(t, sent[0].HTMLBody, "<strong>Form ID:</strong> form-1")
	assert.Contains(t, sent[0].HTMLBody, "2025-03-01T12:00:00Z")
}

func TestDeliverFormReopenedEscapesReason(t *testing.T) {
	svc, m, u := setupNotificationService(t)
	ctx := context.Background()

	err := svc.Deliver(ctx, notification.Event{
		Category:          notification.CategoryFormReopened,
		RecipientUserID:   u.ID,
		FormID:            "form-1",
		FormTypeName:      "Windows",
		ProjectIdentifier: "proj-1",
		Reason:            "it's <wrong>",
	})
	require.NoError(t, err)

	rows, err := svc.ListForUser(ctx, repository.NotificationQuery{UserID: u.ID})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Your Windows form for project proj-1 has been reopened. Reason: it's <wrong>. Please review and resubmit.", rows[0].Message)

	sent := m.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Form Reopened: Windows", sent[0].Subject)
	assert.Contains(t, sent[0].HTMLBody, "it&#39;s &lt;wrong&gt;")
	assert.NotContains(t, sent[0].HTMLBody, "Updated Instructions")
}

func TestDeliverUnknownRecipientIsDropped(t *testing.T) {
	svc, m, _ := setupNotificationService(t)

	err := svc.Deliver(context.Background(), notification.Event{
		Category:        notification.CategoryFormAssigned,
		RecipientUserID: "missing",
	})
	require.NoError(t, err)
	assert.Empty(t, m.Sent())
}

func TestDeliverMailFailureKeepsNotification(t *testing.T) {
	svc, m, u := setupNotificationService(t)
	m.err = errors.New("smtp down")
	ctx := context.Background()

	err := svc.Deliver(ctx, notification.Event{
		Category:          notification.CategoryFormAssigned,
		RecipientUserID:   u.ID,
		FormID:            "form-1",
		FormTypeName:      "Windows",
		ProjectIdentifier: "proj-1",
	})
	require.NoError(t, err)

	rows, err := svc.ListForUser(ctx, repository.NotificationQuery{UserID: u.ID})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestDeliverUnknownCategory(t *testing.T) {
	svc, m, u := setupNotificationService(t)

	err := svc.Deliver(context.Background(), notification.Event{Category: "FORM_EXPLODED", RecipientUserID: u.ID})
	assert.Error(t, err)
	assert.Empty(t, m.Sent())
}

func TestMarkRead(t *testing.T) {
	svc, _, u := setupNotificationService(t)
	ctx := context.Background()
	require.NoError(t, svc.Deliver(ctx, notification.Event{
		Category:        notification.CategoryFormAssigned,
		RecipientUserID: u.ID,
		FormID:          "form-1",
	}))

	rows, err := svc.ListForUser(ctx, repository.NotificationQuery{UserID: u.ID, UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	require.NoError(t, svc.MarkRead(ctx, rows[0].ID, u.ID))
	assert.ErrorIs(t, svc.MarkRead(ctx, rows[0].ID, "someone-else"), ErrNotificationNotFound)

	rows, err = svc.ListForUser(ctx, repository.NotificationQuery{UserID: u.ID, UnreadOnly: true})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestAsyncNotifierDelivers(t *testing.T) {
	svc, m, u := setupNotificationService(t)
	n := NewAsyncNotifier(svc)

	n.Notify(context.Background(), notification.Event{
		Category:        notification.CategoryFormAssigned,
		RecipientUserID: u.ID,
		FormID:          "form-1",
		FormTypeName:    "Windows",
	})
	n.Wait()

	assert.Len(t, m.Sent(), 1)
}

type failingPublisher struct{ calls int }

func (p *failingPublisher) Publish(context.Context, string, interface{}) error {
	p.calls++
	return errors.New("broker unavailable")
}

func TestQueueNotifierSwallowsPublishErrors(t *testing.T) {
	p := &failingPublisher{}
	n := NewQueueNotifier(p)

	n.Notify(context.Background(), notification.Event{Category: notification.CategoryFormSubmitted, FormID: "form-1"})
	n.Wait()

	assert.Equal(t, 1, p.calls)
}

func TestDeliverStoreFailureStillSendsMail(t *testing.T) {
	svc, m, u := setupNotificationService(t)
	require.NoError(t, svc.Repos.DB().Migrator().DropTable(&notification.Notification{}))

	err := svc.Deliver(context.Background(), notification.Event{
		Category:          notification.CategoryFormReopened,
		RecipientUserID:   u.ID,
		FormID:            "form-1",
		FormTypeName:      "Windows",
		ProjectIdentifier: "proj-1",
		Reason:            "wrong shade",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store notification")

	sent := m.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Form Reopened: Windows", sent[0].Subject)
}
