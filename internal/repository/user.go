package repository

import (
	"context"

	"github.com/linskybing/formflow/internal/domain/user"
	"gorm.io/gorm"
)

type UserRepo interface {
	GetUserByID(ctx context.Context, id string) (user.User, error)
	GetUserBySubject(ctx context.Context, subject string) (user.User, error)
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
	CreateUser(ctx context.Context, u *user.User) error
	ListUsers(ctx context.Context, role *user.Role) ([]user.User, error)
	WithTx(tx *gorm.DB) UserRepo
}

type DBUserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *DBUserRepo {
	return &DBUserRepo{
		db: db,
	}
}

func (r *DBUserRepo) GetUserByID(ctx context.Context, id string) (user.User, error) {
	var u user.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return u, err
	}
	return u, nil
}

func (r *DBUserRepo) GetUserBySubject(ctx context.Context, subject string) (user.User, error) {
	var u user.User
	if err := r.db.WithContext(ctx).Where("subject = ?", subject).First(&u).Error; err != nil {
		return u, err
	}
	return u, nil
}

func (r *DBUserRepo) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return u, err
	}
	return u, nil
}

func (r *DBUserRepo) CreateUser(ctx context.Context, u *user.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *DBUserRepo) ListUsers(ctx context.Context, role *user.Role) ([]user.User, error) {
	var users []user.User
	query := r.db.WithContext(ctx).Model(&user.User{})
	if role != nil {
		query = query.Where("role = ?", *role)
	}
	err := query.Order("last_name, first_name").Find(&users).Error
	return users, err
}

func (r *DBUserRepo) WithTx(tx *gorm.DB) UserRepo {
	if tx == nil {
		return r
	}
	return &DBUserRepo{
		db: tx,
	}
}
