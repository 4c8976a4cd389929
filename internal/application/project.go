package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/linskybing/formflow/internal/domain/project"
	"github.com/linskybing/formflow/internal/repository"
	"github.com/linskybing/formflow/pkg/utils"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrProjectExists   = errors.New("project already exists")
	ErrLotNotFound     = errors.New("lot not found")
)

type ProjectService struct {
	Repos *repository.Repos
}

func NewProjectService(repos *repository.Repos) *ProjectService {
	return &ProjectService{
		Repos: repos,
	}
}

func (s *ProjectService) CreateProject(ctx context.Context, input project.CreateProjectDTO) (*project.Project, error) {
	_, err := s.Repos.Project.GetProjectByIdentifier(ctx, input.Identifier)
	if err == nil {
		return nil, ErrProjectExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	p := &project.Project{
		Identifier: input.Identifier,
		Name:       input.Name,
	}
	if err := s.Repos.Project.CreateProject(ctx, p); err != nil {
		return nil, err
	}

	utils.LogAuditWithConsole(ctx, "create", "project", p.Identifier, nil, *p, "project created", s.Repos.Audit)
	return p, nil
}

func (s *ProjectService) GetProject(ctx context.Context, id string) (*project.Project, error) {
	p, err := s.Repos.Project.GetProjectByIdentifier(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]project.Project, error) {
	projects, err := s.Repos.Project.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []project.Project{}
	}
	return projects, nil
}

func (s *ProjectService) CreateLot(ctx context.Context, projectID string, input project.CreateLotDTO) (*project.Lot, error) {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	l := &project.Lot{
		ProjectIdentifier: projectID,
		Civic:             input.Civic,
	}
	if err := s.Repos.Lot.CreateLot(ctx, l); err != nil {
		return nil, err
	}

	utils.LogAuditWithConsole(ctx, "create", "lot", l.Identifier, nil, *l, "lot created", s.Repos.Audit)
	return l, nil
}

func (s *ProjectService) GetLot(ctx context.Context, lotID string) (*project.Lot, error) {
	l, err := s.Repos.Lot.GetLotWithUsers(ctx, lotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLotNotFound
		}
		return nil, err
	}
	return &l, nil
}

// SetAssignees replaces who works on a lot. Every id must exist in the directory.
func (s *ProjectService) SetAssignees(ctx context.Context, lotID string, userIDs []string) (*project.Lot, error) {
	before, err := s.GetLot(ctx, lotID)
	if err != nil {
		return nil, err
	}

	err = s.Repos.ExecTx(ctx, func(tx *repository.Repos) error {
		for _, id := range userIDs {
			if _, err := tx.User.GetUserByID(ctx, id); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %s", ErrUserNotFound, id)
				}
				return err
			}
		}
		return tx.Lot.SetAssignedUsers(ctx, lotID, userIDs)
	})
	if err != nil {
		return nil, err
	}

	after, err := s.GetLot(ctx, lotID)
	if err != nil {
		return nil, err
	}
	utils.LogAuditWithConsole(ctx, "assign", "lot", lotID, before, after, "lot assignees updated", s.Repos.Audit)
	return after, nil
}

func (s *ProjectService) ListLotsForUser(ctx context.Context, userID string) ([]project.Lot, error) {
	lots, err := s.Repos.Lot.ListLotsByAssignedUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if lots == nil {
		lots = []project.Lot{}
	}
	return lots, nil
}
