package repository

import (
	"context"

	"gorm.io/gorm"
)

type Repos struct {
	Form         FormRepo
	FormHistory  FormHistoryRepo
	User         UserRepo
	Project      ProjectRepo
	Lot          LotRepo
	Notification NotificationRepo
	Audit        AuditRepo

	db *gorm.DB
}

func NewRepositories(db *gorm.DB) *Repos {
	return &Repos{
		Form:         NewFormRepo(db),
		FormHistory:  NewFormHistoryRepo(db),
		User:         NewUserRepo(db),
		Project:      NewProjectRepo(db),
		Lot:          NewLotRepo(db),
		Notification: NewNotificationRepo(db),
		Audit:        NewAuditRepo(db),
		db:           db,
	}
}

func (r *Repos) DB() *gorm.DB {
	return r.db
}

func (r *Repos) WithTx(tx *gorm.DB) *Repos {
	return &Repos{
		Form:         r.Form.WithTx(tx),
		FormHistory:  r.FormHistory.WithTx(tx),
		User:         r.User.WithTx(tx),
		Project:      r.Project.WithTx(tx),
		Lot:          r.Lot.WithTx(tx),
		Notification: r.Notification.WithTx(tx),
		Audit:        r.Audit.WithTx(tx),
		db:           tx,
	}
}

// ExecTx runs fn inside a transaction. Without a database (mocked repos in
// tests) fn runs directly against r.
func (r *Repos) ExecTx(ctx context.Context, fn func(*Repos) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepos := r.WithTx(tx)
		return fn(txRepos)
	})
}
