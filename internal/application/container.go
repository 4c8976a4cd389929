package application

import (
	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/linskybing/formflow/internal/repository"
	"github.com/linskybing/formflow/pkg/mailer"
	"github.com/linskybing/formflow/pkg/storage"
)

// Deps are the outside collaborators. Zero values fall back to in-process
// implementations: in-memory archive storage, log-only mail and direct
// asynchronous notification delivery.
type Deps struct {
	Catalog  *form.Catalog
	Store    storage.ObjectStore
	Mailer   mailer.Mailer
	Notifier Notifier
}

type Services struct {
	Audit        *AuditService
	Form         *FormService
	Notification *NotificationService
	Project      *ProjectService
	User         *UserService
	Archiver     *Archiver
	Notifier     Notifier
}

func New(repos *repository.Repos, deps Deps) *Services {
	if deps.Store == nil {
		deps.Store = storage.NewMemoryStore()
	}
	if deps.Catalog == nil {
		deps.Catalog = form.NewCatalog(nil)
	}

	notifications := NewNotificationService(repos, deps.Mailer)
	notifier := deps.Notifier
	if notifier == nil {
		notifier = NewAsyncNotifier(notifications)
	}
	archiver := NewArchiver(repos, deps.Store, deps.Catalog)

	return &Services{
		Audit:        NewAuditService(repos),
		Form:         NewFormService(repos, notifier, archiver, deps.Catalog),
		Notification: notifications,
		Project:      NewProjectService(repos),
		User:         NewUserService(repos),
		Archiver:     archiver,
		Notifier:     notifier,
	}
}
