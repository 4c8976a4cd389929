package repository

import (
	"context"

	"github.com/linskybing/formflow/internal/domain/project"
	"github.com/linskybing/formflow/internal/domain/user"
	"gorm.io/gorm"
)

type LotRepo interface {
	CreateLot(ctx context.Context, l *project.Lot) error
	GetLotWithUsers(ctx context.Context, lotID string) (project.Lot, error)
	SetAssignedUsers(ctx context.Context, lotID string, userIDs []string) error
	ListLotsByAssignedUser(ctx context.Context, userID string) ([]project.Lot, error)
	IsUserAssigned(ctx context.Context, lotID, userID string) (bool, error)
	WithTx(tx *gorm.DB) LotRepo
}

type DBLotRepo struct {
	db *gorm.DB
}

func NewLotRepo(db *gorm.DB) *DBLotRepo {
	return &DBLotRepo{
		db: db,
	}
}

func (r *DBLotRepo) CreateLot(ctx context.Context, l *project.Lot) error {
	return r.db.WithContext(ctx).Omit("AssignedUsers.*").Create(l).Error
}

func (r *DBLotRepo) GetLotWithUsers(ctx context.Context, lotID string) (project.Lot, error) {
	var l project.Lot
	err := r.db.WithContext(ctx).Preload("AssignedUsers").Where("identifier = ?", lotID).First(&l).Error
	return l, err
}

// SetAssignedUsers replaces the lot's assigned-users set.
func (r *DBLotRepo) SetAssignedUsers(ctx context.Context, lotID string, userIDs []string) error {
	var l project.Lot
	if err := r.db.WithContext(ctx).Where("identifier = ?", lotID).First(&l).Error; err != nil {
		return err
	}
	assoc := r.db.WithContext(ctx).Model(&l).Association("AssignedUsers")
	if len(userIDs) == 0 {
		return assoc.Clear()
	}
	var users []user.User
	if err := r.db.WithContext(ctx).Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return err
	}
	return assoc.Replace(users)
}

func (r *DBLotRepo) ListLotsByAssignedUser(ctx context.Context, userID string) ([]project.Lot, error) {
	var lots []project.Lot
	err := r.db.WithContext(ctx).
		Joins("JOIN lot_assigned_users lau ON lau.lot_identifier = lots.identifier").
		Where("lau.user_id = ?", userID).
		Find(&lots).Error
	return lots, err
}

func (r *DBLotRepo) IsUserAssigned(ctx context.Context, lotID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("lot_assigned_users").
		Where("lot_identifier = ? AND user_id = ?", lotID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *DBLotRepo) WithTx(tx *gorm.DB) LotRepo {
	if tx == nil {
		return r
	}
	return &DBLotRepo{
		db: tx,
	}
}
