package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/linskybing/formflow/internal/application"
	"github.com/linskybing/formflow/internal/domain/project"
	"github.com/linskybing/formflow/internal/domain/user"
	"github.com/linskybing/formflow/internal/repository"
	"github.com/linskybing/formflow/internal/repository/mock"
	"github.com/linskybing/formflow/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProjectMocks(t *testing.T) (*application.ProjectService,
	*mock.MockProjectRepo,
	*mock.MockLotRepo,
	*mock.MockUserRepo) {

	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockProject := mock.NewMockProjectRepo(ctrl)
	mockLot := mock.NewMockLotRepo(ctrl)
	mockUser := mock.NewMockUserRepo(ctrl)
	mockAudit := mock.NewMockAuditRepo(ctrl)

	repos := &repository.Repos{
		Project: mockProject,
		Lot:     mockLot,
		User:    mockUser,
		Audit:   mockAudit,
	}

	svc := application.NewProjectService(repos)

	// mock utils globally
	old := utils.LogAuditWithConsole
	utils.LogAuditWithConsole = func(ctx context.Context, action, resourceType, resourceID string, oldData, newData interface{}, msg string, repo repository.AuditRepo) {
	}
	t.Cleanup(func() { utils.LogAuditWithConsole = old })

	return svc, mockProject, mockLot, mockUser
}

func TestProjectServiceCRUD(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateProject success", func(t *testing.T) {
		svc, mockProject, _, _ := setupProjectMocks(t)
		input := project.CreateProjectDTO{Identifier: "proj-1", Name: "Cedres"}

		mockProject.EXPECT().GetProjectByIdentifier(gomock.Any(), "proj-1").Return(project.Project{}, gorm.ErrRecordNotFound)
		mockProject.EXPECT().CreateProject(gomock.Any(), gomock.Any()).Return(nil)

		p, err := svc.CreateProject(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, "Cedres", p.Name)
	})

	t.Run("CreateProject duplicate", func(t *testing.T) {
		svc, mockProject, _, _ := setupProjectMocks(t)
		mockProject.EXPECT().GetProjectByIdentifier(gomock.Any(), "proj-1").Return(project.Project{Identifier: "proj-1"}, nil)

		_, err := svc.CreateProject(ctx, project.CreateProjectDTO{Identifier: "proj-1", Name: "x"})
		assert.Equal(t, application.ErrProjectExists, err)
	})

	t.Run("CreateLot unknown project", func(t *testing.T) {
		svc, mockProject, _, _ := setupProjectMocks(t)
		mockProject.EXPECT().GetProjectByIdentifier(gomock.Any(), "nope").Return(project.Project{}, gorm.ErrRecordNotFound)

		_, err := svc.CreateLot(ctx, "nope", project.CreateLotDTO{})
		assert.Equal(t, application.ErrProjectNotFound, err)
	})

	t.Run("CreateLot success", func(t *testing.T) {
		svc, mockProject, mockLot, _ := setupProjectMocks(t)
		mockProject.EXPECT().GetProjectByIdentifier(gomock.Any(), "proj-1").Return(project.Project{Identifier: "proj-1"}, nil)
		mockLot.EXPECT().CreateLot(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, l *project.Lot) error {
			l.Identifier = "lot-1"
			return nil
		})

		l, err := svc.CreateLot(ctx, "proj-1", project.CreateLotDTO{Civic: "12 rue des Pins"})
		require.NoError(t, err)
		assert.Equal(t, "lot-1", l.Identifier)
		assert.Equal(t, "proj-1", l.ProjectIdentifier)
	})

	t.Run("ListProjects db error", func(t *testing.T) {
		svc, mockProject, _, _ := setupProjectMocks(t)
		mockProject.EXPECT().ListProjects(gomock.Any()).Return(nil, errors.New("db error"))

		_, err := svc.ListProjects(ctx)
		assert.Error(t, err)
	})
}

func TestSetAssignees(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown user", func(t *testing.T) {
		svc, _, mockLot, mockUser := setupProjectMocks(t)
		mockLot.EXPECT().GetLotWithUsers(gomock.Any(), "lot-1").Return(project.Lot{Identifier: "lot-1"}, nil)
		mockUser.EXPECT().GetUserByID(gomock.Any(), "ghost").Return(user.User{}, gorm.ErrRecordNotFound)

		_, err := svc.SetAssignees(ctx, "lot-1", []string{"ghost"})
		assert.ErrorIs(t, err, application.ErrUserNotFound)
	})

	t.Run("replaces set", func(t *testing.T) {
		svc, _, mockLot, mockUser := setupProjectMocks(t)
		after := project.Lot{Identifier: "lot-1", AssignedUsers: []user.User{{ID: "u-1"}}}
		gomock.InOrder(
			mockLot.EXPECT().GetLotWithUsers(gomock.Any(), "lot-1").Return(project.Lot{Identifier: "lot-1"}, nil),
			mockLot.EXPECT().SetAssignedUsers(gomock.Any(), "lot-1", []string{"u-1"}).Return(nil),
			mockLot.EXPECT().GetLotWithUsers(gomock.Any(), "lot-1").Return(after, nil),
		)
		mockUser.EXPECT().GetUserByID(gomock.Any(), "u-1").Return(user.User{ID: "u-1"}, nil)

		l, err := svc.SetAssignees(ctx, "lot-1", []string{"u-1"})
		require.NoError(t, err)
		assert.True(t, l.HasAssignedUser("u-1"))
	})

	t.Run("missing lot", func(t *testing.T) {
		svc, _, mockLot, _ := setupProjectMocks(t)
		mockLot.EXPECT().GetLotWithUsers(gomock.Any(), "nope").Return(project.Lot{}, gorm.ErrRecordNotFound)

		_, err := svc.SetAssignees(ctx, "nope", nil)
		assert.Equal(t, application.ErrLotNotFound, err)
	})
}
