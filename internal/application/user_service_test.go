package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/linskybing/formflow/internal/api/middleware"
	"github.com/linskybing/formflow/internal/domain/user"
	"github.com/linskybing/formflow/internal/repository"
	"github.com/linskybing/formflow/internal/repository/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// --------------------- Setup ---------------------
func setupUserServiceMocks(t *testing.T) (*UserService, *mock.MockUserRepo) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockUser := mock.NewMockUserRepo(ctrl)
	repos := &repository.Repos{
		User: mockUser,
	}
	svc := NewUserService(repos)
	return svc, mockUser
}

// --------------------- CreateUser ---------------------
func TestCreateUser_Success(t *testing.T) {
	svc, mockUser := setupUserServiceMocks(t)
	ctx := context.Background()

	input := user.CreateUserInput{
		Email:     " Alice@Test.com ",
		Password:  "123456",
		FirstName: "Alice",
		Role:      user.RoleCustomer,
	}

	mockUser.EXPECT().GetUserByEmail(gomock.Any(), "alice@test.com").Return(user.User{}, gorm.ErrRecordNotFound)
	mockUser.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *user.User) error {
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("123456")))
		u.ID = "u-1"
		return nil
	})

	u, err := svc.CreateUser(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "alice@test.com", u.Email)
}

func TestCreateUser_EmailTaken(t *testing.T) {
	svc, mockUser := setupUserServiceMocks(t)

	mockUser.EXPECT().GetUserByEmail(gomock.Any(), "bob@test.com").Return(user.User{ID: "u-1"}, nil)

	_, err := svc.CreateUser(context.Background(), user.CreateUserInput{Email: "bob@test.com", Password: "123456", Role: user.RoleOwner})
	assert.Equal(t, ErrEmailTaken, err)
}

func TestCreateUser_SubjectTaken(t *testing.T) {
	svc, mockUser := setupUserServiceMocks(t)

	mockUser.EXPECT().GetUserByEmail(gomock.Any(), "bob@test.com").Return(user.User{}, gorm.ErrRecordNotFound)
	mockUser.EXPECT().GetUserBySubject(gomock.Any(), "auth0|bob").Return(user.User{ID: "u-1"}, nil)

	_, err := svc.CreateUser(context.Background(), user.CreateUserInput{
		Email:    "bob@test.com",
		Password: "123456",
		Role:     user.RoleSalesperson,
		Subject:  ptrString("auth0|bob"),
	})
	assert.Equal(t, ErrSubjectTaken, err)
}

// --------------------- Login ---------------------
func TestLogin_Success(t *testing.T) {
	svc, mockUser := setupUserServiceMocks(t)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	usr := user.User{ID: "u-1", Email: "bob@test.com", PasswordHash: string(hashed), Role: user.RoleOwner}
	mockUser.EXPECT().GetUserByEmail(gomock.Any(), "bob@test.com").Return(usr, nil)

	oldGen := middleware.GenerateToken
	middleware.GenerateToken = func(u user.User, exp time.Duration) (string, error) {
		return "token123", nil
	}
	defer func() { middleware.GenerateToken = oldGen }()

	u, token, err := svc.Login(context.Background(), "bob@test.com", "123456")
	assert.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "token123", token)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, mockUser := setupUserServiceMocks(t)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	mockUser.EXPECT().GetUserByEmail(gomock.Any(), "bob@test.com").Return(user.User{PasswordHash: string(hashed)}, nil)

	_, _, err := svc.Login(context.Background(), "bob@test.com", "wrong")
	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, mockUser := setupUserServiceMocks(t)
	mockUser.EXPECT().GetUserByEmail(gomock.Any(), "ghost@test.com").Return(user.User{}, gorm.ErrRecordNotFound)

	_, _, err := svc.Login(context.Background(), "ghost@test.com", "x")
	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestLogin_TokenError(t *testing.T) {
	svc, mockUser := setupUserServiceMocks(t)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	mockUser.EXPECT().GetUserByEmail(gomock.Any(), "bob@test.com").Return(user.User{PasswordHash: string(hashed)}, nil)

	oldGen := middleware.GenerateToken
	middleware.GenerateToken = func(u user.User, exp time.Duration) (string, error) {
		return "", errors.New("sign failed")
	}
	defer func() { middleware.GenerateToken = oldGen }()

	_, _, err := svc.Login(context.Background(), "bob@test.com", "123456")
	assert.EqualError(t, err, "sign failed")
}

// --------------------- Lookup ---------------------
func TestFindUserByID(t *testing.T) {
	svc, mockUser := setupUserServiceMocks(t)

	mockUser.EXPECT().GetUserByID(gomock.Any(), "u-1").Return(user.User{ID: "u-1"}, nil)
	mockUser.EXPECT().GetUserByID(gomock.Any(), "u-2").Return(user.User{}, gorm.ErrRecordNotFound)

	u, err := svc.FindUserByID(context.Background(), "u-1")
	assert.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)

	_, err = svc.FindUserByID(context.Background(), "u-2")
	assert.Equal(t, ErrUserNotFound, err)
}

func TestListUsersNeverNil(t *testing.T) {
	svc, mockUser := setupUserServiceMocks(t)
	role := user.RoleCustomer
	mockUser.EXPECT().ListUsers(gomock.Any(), &role).Return(nil, nil)

	users, err := svc.ListUsers(context.Background(), &role)
	assert.NoError(t, err)
	assert.NotNil(t, users)
}
