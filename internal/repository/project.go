package repository

import (
	"context"

	"github.com/linskybing/formflow/internal/domain/project"
	"gorm.io/gorm"
)

type ProjectRepo interface {
	CreateProject(ctx context.Context, p *project.Project) error
	GetProjectByIdentifier(ctx context.Context, id string) (project.Project, error)
	ListProjects(ctx context.Context) ([]project.Project, error)
	WithTx(tx *gorm.DB) ProjectRepo
}

type DBProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *DBProjectRepo {
	return &DBProjectRepo{
		db: db,
	}
}

func (r *DBProjectRepo) CreateProject(ctx context.Context, p *project.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *DBProjectRepo) GetProjectByIdentifier(ctx context.Context, id string) (project.Project, error) {
	var p project.Project
	err := r.db.WithContext(ctx).Where("identifier = ?", id).First(&p).Error
	return p, err
}

func (r *DBProjectRepo) ListProjects(ctx context.Context) ([]project.Project, error) {
	var projects []project.Project
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&projects).Error
	return projects, err
}

func (r *DBProjectRepo) WithTx(tx *gorm.DB) ProjectRepo {
	if tx == nil {
		return r
	}
	return &DBProjectRepo{
		db: tx,
	}
}
