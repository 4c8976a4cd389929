package application

import (
	"context"
	"sync"

	"github.com/linskybing/formflow/internal/domain/notification"
	"github.com/linskybing/formflow/pkg/mailer"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []notification.Event
}

func (n *recordingNotifier) Notify(_ context.Context, event notification.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) Events() []notification.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification.Event(nil), n.events...)
}

func (n *recordingNotifier) Categories() []notification.Category {
	var out []notification.Category
	for _, e := range n.Events() {
		out = append(out, e.Category)
	}
	return out
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []mailer.Mail
	err  error
}

func (m *recordingMailer) Send(_ context.Context, mail mailer.Mail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, mail)
	return m.err
}

func (m *recordingMailer) Sent() []mailer.Mail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mailer.Mail(nil), m.sent...)
}

func ptrString(s string) *string { return &s }
