package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/linskybing/formflow/internal/domain/form"
	"gorm.io/gorm"
)

// FormHistoryRepo is append-only: there is no update, and rows are only
// removed together with their form.
type FormHistoryRepo interface {
	CreateHistory(ctx context.Context, h *form.FormSubmissionHistory) error
	CountByForm(ctx context.Context, formID string) (int64, error)
	ListByForm(ctx context.Context, formID string) ([]form.FormSubmissionHistory, error)
	ListRecent(ctx context.Context, formID string, limit int) ([]form.FormSubmissionHistory, error)
	DeleteByForm(ctx context.Context, formID string) error
	WithTx(tx *gorm.DB) FormHistoryRepo
}

type DBFormHistoryRepo struct {
	db *gorm.DB
}

func NewFormHistoryRepo(db *gorm.DB) *DBFormHistoryRepo {
	return &DBFormHistoryRepo{
		db: db,
	}
}

func (r *DBFormHistoryRepo) CreateHistory(ctx context.Context, h *form.FormSubmissionHistory) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *DBFormHistoryRepo) CountByForm(ctx context.Context, formID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&form.FormSubmissionHistory{}).
		Where("form_identifier = ?", formID).
		Count(&count).Error
	return count, err
}

func (r *DBFormHistoryRepo) ListByForm(ctx context.Context, formID string) ([]form.FormSubmissionHistory, error) {
	var rows []form.FormSubmissionHistory
	err := r.db.WithContext(ctx).
		Where("form_identifier = ?", formID).
		Order("submission_number asc").
		Find(&rows).Error
	return rows, err
}

// ListRecent returns the latest submissions first. An empty formID spans all forms.
func (r *DBFormHistoryRepo) ListRecent(ctx context.Context, formID string, limit int) ([]form.FormSubmissionHistory, error) {
	var rows []form.FormSubmissionHistory
	query := r.db.WithContext(ctx).Model(&form.FormSubmissionHistory{})
	if formID != "" {
		query = query.Where("form_identifier = ?", formID)
	}
	if limit <= 0 {
		limit = 20
	}
	err := query.Order("submitted_at desc").Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *DBFormHistoryRepo) DeleteByForm(ctx context.Context, formID string) error {
	return r.db.WithContext(ctx).
		Where("form_identifier = ?", formID).
		Delete(&form.FormSubmissionHistory{}).Error
}

func (r *DBFormHistoryRepo) WithTx(tx *gorm.DB) FormHistoryRepo {
	if tx == nil {
		return r
	}
	return &DBFormHistoryRepo{
		db: tx,
	}
}

// IsUniqueViolation reports whether err came from a unique index, with or
// without gorm's error translation enabled.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}
