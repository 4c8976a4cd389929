package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/linskybing/formflow/internal/domain/notification"
	"github.com/linskybing/formflow/internal/domain/user"
	"github.com/linskybing/formflow/internal/repository"
	"github.com/linskybing/formflow/pkg/mailer"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

const (
	senderName    = "Les Constructions Dominic Cyr"
	teamSignature = "Thank you,<br/>Les Constructions Dominic Cyr Team"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
	"\n", "<br/>",
)

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// NotificationService stores in-app notifications and sends the matching
// email. It is the Deliverer behind both the in-process and the queue path.
type NotificationService struct {
	Repos  *repository.Repos
	Mailer mailer.Mailer
}

func NewNotificationService(repos *repository.Repos, m mailer.Mailer) *NotificationService {
	if m == nil {
		m = mailer.LogMailer{}
	}
	return &NotificationService{Repos: repos, Mailer: m}
}

// Deliver persists the notification for the event's recipient and emails
// them. The two are attempted independently. A recipient missing from the
// directory drops the event. A storage failure is returned after the email
// went out so the queue can redeliver; email failures are logged only, so a
// redelivered event never duplicates the stored notification because of a
// flaky mail provider.
func (s *NotificationService) Deliver(ctx context.Context, event notification.Event) error {
	recipient, err := s.Repos.User.GetUserByID(ctx, event.RecipientUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Warn("notification recipient not found, dropping event",
				"category", event.Category,
				"form", event.FormID,
				"recipient", event.RecipientUserID,
			)
			return nil
		}
		return err
	}

	title, message, err := renderInApp(event)
	if err != nil {
		return err
	}
	n := &notification.Notification{
		UserID:   recipient.ID,
		Title:    title,
		Message:  message,
		Category: event.Category,
		Link:     event.Link(),
	}
	var storeErr error
	if err := s.Repos.Notification.CreateNotification(ctx, n); err != nil {
		storeErr = fmt.Errorf("store notification: %w", err)
		slog.Error("failed to store notification",
			"category", event.Category,
			"form", event.FormID,
			"recipient", recipient.ID,
			"error", err,
		)
	}

	mail := renderMail(event, recipient)
	if err := s.Mailer.Send(ctx, mail); err != nil {
		slog.Error("failed to send notification email",
			"category", event.Category,
			"form", event.FormID,
			"to", mail.To,
			"error", err,
		)
		return storeErr
	}
	slog.Info("notification email sent", "category", event.Category, "to", mail.To)
	return storeErr
}

func renderInApp(event notification.Event) (string, string, error) {
	switch event.Category {
	case notification.CategoryFormAssigned:
		return "New Form Assigned: " + event.FormTypeName,
			fmt.Sprintf("A %s form has been assigned to you for project %s. Please complete it at your earliest convenience.",
				event.FormTypeName, event.ProjectIdentifier), nil
	case notification.CategoryFormSubmitted:
		return "Form Submitted: " + event.FormTypeName,
			fmt.Sprintf("%s has submitted their %s form for project %s.",
				event.CustomerName, event.FormTypeName, event.ProjectIdentifier), nil
	case notification.CategoryFormReopened:
		return "Form Reopened: " + event.FormTypeName,
			fmt.Sprintf("Your %s form for project %s has been reopened. Reason: %s. Please review and resubmit.",
				event.FormTypeName, event.ProjectIdentifier, event.Reason), nil
	}
	return "", "", fmt.Errorf("unknown notification category %q", event.Category)
}

func renderMail(event notification.Event, recipient user.User) mailer.Mail {
	var b strings.Builder
	b.WriteString("<html><body>")

	var subject string
	switch event.Category {
	case notification.CategoryFormAssigned:
		subject = "New Form to Complete: " + event.FormTypeName
		b.WriteString("<h2>New Form Assignment</h2>")
		fmt.Fprintf(&b, "<p>Hello %s,</p>", recipient.FullName())
		fmt.Fprintf(&b, "<p>A new <strong>%s</strong> form has been assigned to you.</p>", event.FormTypeName)
		fmt.Fprintf(&b, "<p><strong>Project:</strong> %s</p>", event.ProjectIdentifier)
		if event.Instructions != "" {
			b.WriteString("<p><strong>Instructions:</strong></p>")
			fmt.Fprintf(&b, "<p>%s</p>", escapeHTML(event.Instructions))
		}
		b.WriteString("<p>Please log in to the customer portal to complete this form.</p>")
		fmt.Fprintf(&b, "<p>%s</p>", teamSignature)

	case notification.CategoryFormSubmitted:
		subject = "Form Submitted by " + event.CustomerName
		submitted := ""
		if event.SubmittedAt != nil {
			submitted = event.SubmittedAt.UTC().Format(time.RFC3339)
		}
		b.WriteString("<h2>Form Submitted</h2>")
		fmt.Fprintf(&b, "<p>%s has submitted their <strong>%s</strong> form.</p>", event.CustomerName, event.FormTypeName)
		fmt.Fprintf(&b, "<p><strong>Project:</strong> %s</p>", event.ProjectIdentifier)
		fmt.Fprintf(&b, "<p><strong>Form ID:</strong> %s</p>", event.FormID)
		fmt.Fprintf(&b, "<p><strong>Submitted:</strong> %s</p>", submitted)
		b.WriteString("<p>Please review the submission in the admin portal.</p>")
		b.WriteString("<p>Best regards,<br/>System Notification</p>")

	case notification.CategoryFormReopened:
		subject = "Form Reopened: " + event.FormTypeName
		b.WriteString("<h2>Form Reopened for Review</h2>")
		fmt.Fprintf(&b, "<p>Hello %s,</p>", recipient.FullName())
		fmt.Fprintf(&b, "<p>Your <strong>%s</strong> form has been reopened for revision.</p>", event.FormTypeName)
		fmt.Fprintf(&b, "<p><strong>Project:</strong> %s</p>", event.ProjectIdentifier)
		b.WriteString("<p><strong>Reason for reopening:</strong></p>")
		fmt.Fprintf(&b, "<p>%s</p>", escapeHTML(event.Reason))
		if event.Instructions != "" {
			b.WriteString("<p><strong>Updated Instructions:</strong></p>")
			fmt.Fprintf(&b, "<p>%s</p>", escapeHTML(event.Instructions))
		}
		b.WriteString("<p>Please log in to the customer portal to review and resubmit your form.</p>")
		fmt.Fprintf(&b, "<p>%s</p>", teamSignature)
	}

	b.WriteString("</body></html>")
	return mailer.Mail{
		To:         recipient.Email,
		Subject:    subject,
		HTMLBody:   b.String(),
		SenderName: senderName,
	}
}

func (s *NotificationService) ListForUser(ctx context.Context, q repository.NotificationQuery) ([]notification.Notification, error) {
	rows, err := s.Repos.Notification.ListNotifications(ctx, q)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []notification.Notification{}
	}
	return rows, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	err := s.Repos.Notification.MarkRead(ctx, id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotificationNotFound
	}
	return err
}
