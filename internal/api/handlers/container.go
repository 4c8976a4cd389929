package handlers

import (
	"github.com/linskybing/formflow/internal/application"
)

type Handlers struct {
	Audit        *AuditHandler
	Form         *FormHandler
	Notification *NotificationHandler
	Project      *ProjectHandler
	User         *UserHandler
}

func New(svc *application.Services) *Handlers {
	return &Handlers{
		Audit:        NewAuditHandler(svc.Audit),
		Form:         NewFormHandler(svc.Form),
		Notification: NewNotificationHandler(svc.Notification),
		Project:      NewProjectHandler(svc.Project),
		User:         NewUserHandler(svc.User),
	}
}
