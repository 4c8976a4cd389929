package handlers_test

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formflow/internal/api/middleware"
	"github.com/linskybing/formflow/internal/api/routes"
	"github.com/linskybing/formflow/internal/application"
	"github.com/linskybing/formflow/internal/config"
	"github.com/linskybing/formflow/internal/domain/project"
	"github.com/linskybing/formflow/internal/domain/user"
	"github.com/linskybing/formflow/internal/repository"
	"github.com/linskybing/formflow/internal/testutils"
	"github.com/linskybing/formflow/pkg/utils"
	"github.com/stretchr/testify/require"
)

// testEnv is a router backed by sqlite with one project, one lot and a user per role.
type testEnv struct {
	Router   *gin.Engine
	Repos    *repository.Repos
	Services *application.Services

	Owner    user.User
	Seller   user.User
	Customer user.User
	Stranger user.User
	Lot      project.Lot

	OwnerClient    *testutils.HTTPClient
	SellerClient   *testutils.HTTPClient
	CustomerClient *testutils.HTTPClient
	StrangerClient *testutils.HTTPClient
	AnonClient     *testutils.HTTPClient
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.JwtSecret = "test-secret"
	config.Issuer = "formflow-test"
	config.TokenTTL = time.Hour
	middleware.Init()

	old := utils.LogAuditWithConsole
	utils.LogAuditWithConsole = func(ctx context.Context, action, resourceType, resourceID string, oldData, newData interface{}, msg string, repo repository.AuditRepo) {
		if repo == nil {
			return
		}
		_ = utils.LogAudit(ctx, utils.RequestMetaFromContext(ctx), action, resourceType, resourceID, oldData, newData, msg, repo)
	}
	t.Cleanup(func() { utils.LogAuditWithConsole = old })

	ctx := context.Background()
	repos := repository.NewRepositories(testutils.NewTestDB(t))
	svc := application.New(repos, application.Deps{Notifier: application.NopNotifier{}})
	t.Cleanup(svc.Form.Wait)

	r := gin.New()
	routes.RegisterRoutes(r, svc)

	env := &testEnv{Router: r, Repos: repos, Services: svc}

	mk := func(email, first, last string, role user.Role) user.User {
		u, err := svc.User.CreateUser(ctx, user.CreateUserInput{
			Email:     email,
			Password:  "secret123",
			FirstName: first,
			LastName:  last,
			Role:      role,
		})
		require.NoError(t, err)
		return u
	}
	env.Owner = mk("owner@example.com", "Olivia", "Owner", user.RoleOwner)
	env.Seller = mk("seller@example.com", "Sam", "Seller", user.RoleSalesperson)
	env.Customer = mk("client@example.com", "Claire", "Client", user.RoleCustomer)
	env.Stranger = mk("other@example.com", "Oscar", "Other", user.RoleCustomer)

	_, err := svc.Project.CreateProject(ctx, project.CreateProjectDTO{Identifier: "proj-1", Name: "Domaine des Cedres"})
	require.NoError(t, err)
	lot, err := svc.Project.CreateLot(ctx, "proj-1", project.CreateLotDTO{Civic: "12 rue des Pins"})
	require.NoError(t, err)
	assigned, err := svc.Project.SetAssignees(ctx, lot.Identifier, []string{env.Seller.ID, env.Customer.ID})
	require.NoError(t, err)
	env.Lot = *assigned

	client := func(u user.User) *testutils.HTTPClient {
		token, err := middleware.GenerateToken(u, time.Hour)
		require.NoError(t, err)
		return testutils.NewHTTPClient(r, token)
	}
	env.OwnerClient = client(env.Owner)
	env.SellerClient = client(env.Seller)
	env.CustomerClient = client(env.Customer)
	env.StrangerClient = client(env.Stranger)
	env.AnonClient = testutils.NewHTTPClient(r, "")
	return env
}
