package repository

import (
	"context"

	"github.com/linskybing/formflow/internal/domain/form"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FormQuery filters form listings. Nil fields are ignored.
type FormQuery struct {
	ProjectIdentifier *string
	LotIdentifier     *string
	CustomerID        *string
	AssignedByUserID  *string
	Status            *form.FormStatus
	FormType          *form.FormType
	ReopenedOnly      bool
}

type FormRepo interface {
	CreateForm(ctx context.Context, f *form.Form) error
	GetFormByID(ctx context.Context, id string) (form.Form, error)
	GetFormForUpdate(ctx context.Context, id string) (form.Form, error)
	SaveForm(ctx context.Context, f *form.Form) error
	DeleteForm(ctx context.Context, id string) error
	ListForms(ctx context.Context, q FormQuery) ([]form.Form, error)
	ExistsForLot(ctx context.Context, projectID, lotID, customerID string, t form.FormType) (bool, error)
	ExistsForCustomer(ctx context.Context, projectID, customerID string, t form.FormType) (bool, error)
	CountByStatus(ctx context.Context, projectID string) ([]form.StatusCount, error)
	WithTx(tx *gorm.DB) FormRepo
}

type DBFormRepo struct {
	db *gorm.DB
}

func NewFormRepo(db *gorm.DB) *DBFormRepo {
	return &DBFormRepo{
		db: db,
	}
}

func (r *DBFormRepo) CreateForm(ctx context.Context, f *form.Form) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *DBFormRepo) GetFormByID(ctx context.Context, id string) (form.Form, error) {
	var f form.Form
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&f).Error
	return f, err
}

// GetFormForUpdate reads the form under a row lock on dialects that support it.
func (r *DBFormRepo) GetFormForUpdate(ctx context.Context, id string) (form.Form, error) {
	var f form.Form
	query := r.db.WithContext(ctx)
	switch r.db.Dialector.Name() {
	case "postgres", "mysql":
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := query.Where("id = ?", id).First(&f).Error
	return f, err
}

func (r *DBFormRepo) SaveForm(ctx context.Context, f *form.Form) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *DBFormRepo) DeleteForm(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&form.Form{}).Error
}

func (r *DBFormRepo) ListForms(ctx context.Context, q FormQuery) ([]form.Form, error) {
	var forms []form.Form
	query := r.db.WithContext(ctx).Model(&form.Form{})

	if q.ProjectIdentifier != nil {
		query = query.Where("project_identifier = ?", *q.ProjectIdentifier)
	}
	if q.LotIdentifier != nil {
		query = query.Where("lot_identifier = ?", *q.LotIdentifier)
	}
	if q.CustomerID != nil {
		query = query.Where("customer_id = ?", *q.CustomerID)
	}
	if q.AssignedByUserID != nil {
		query = query.Where("assigned_by_user_id = ?", *q.AssignedByUserID)
	}
	if q.Status != nil {
		query = query.Where("form_status = ?", *q.Status)
	}
	if q.FormType != nil {
		query = query.Where("form_type = ?", *q.FormType)
	}
	if q.ReopenedOnly {
		query = query.Where("reopened_date IS NOT NULL")
	}

	err := query.Order("created_at desc").Find(&forms).Error
	return forms, err
}

func (r *DBFormRepo) ExistsForLot(ctx context.Context, projectID, lotID, customerID string, t form.FormType) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&form.Form{}).
		Where("project_identifier = ? AND lot_identifier = ? AND customer_id = ? AND form_type = ?", projectID, lotID, customerID, t).
		Count(&count).Error
	return count > 0, err
}

func (r *DBFormRepo) ExistsForCustomer(ctx context.Context, projectID, customerID string, t form.FormType) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&form.Form{}).
		Where("project_identifier = ? AND customer_id = ? AND form_type = ?", projectID, customerID, t).
		Count(&count).Error
	return count > 0, err
}

// CountByStatus groups forms by status; an empty projectID counts every project.
func (r *DBFormRepo) CountByStatus(ctx context.Context, projectID string) ([]form.StatusCount, error) {
	var rows []form.StatusCount
	query := r.db.WithContext(ctx).Model(&form.Form{}).
		Select("form_status AS status, COUNT(*) AS count")
	if projectID != "" {
		query = query.Where("project_identifier = ?", projectID)
	}
	err := query.Group("form_status").Order("form_status").Scan(&rows).Error
	return rows, err
}

func (r *DBFormRepo) WithTx(tx *gorm.DB) FormRepo {
	if tx == nil {
		return r
	}
	return &DBFormRepo{
		db: tx,
	}
}
