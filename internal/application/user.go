package application

import (
	"context"
	"errors"
	"strings"

	"github.com/linskybing/formflow/internal/api/middleware"
	"github.com/linskybing/formflow/internal/config"
	"github.com/linskybing/formflow/internal/domain/user"
	"github.com/linskybing/formflow/internal/repository"
	"github.com/linskybing/formflow/pkg/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailTaken          = errors.New("email already registered")
	ErrSubjectTaken        = errors.New("subject already registered")
	ErrPasswordHashFailure = errors.New("failed to hash password")
)

type UserService struct {
	Repos *repository.Repos
}

func NewUserService(repos *repository.Repos) *UserService {
	return &UserService{
		Repos: repos,
	}
}

func (s *UserService) CreateUser(ctx context.Context, input user.CreateUserInput) (user.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	_, err := s.Repos.User.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return user.User{}, err
	}
	if err == nil {
		return user.User{}, ErrEmailTaken
	}

	if input.Subject != nil && *input.Subject != "" {
		_, err := s.Repos.User.GetUserBySubject(ctx, *input.Subject)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, err
		}
		if err == nil {
			return user.User{}, ErrSubjectTaken
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, ErrPasswordHashFailure
	}

	usr := user.User{
		Email:        email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         input.Role,
		PasswordHash: string(hashed),
	}
	if input.Subject != nil {
		usr.Subject = *input.Subject
	}
	if err := s.Repos.User.CreateUser(ctx, &usr); err != nil {
		return user.User{}, err
	}

	utils.LogAuditWithConsole(ctx, "create", "user", usr.ID, nil, user.ToDTO(usr), "user created", s.Repos.Audit)
	return usr, nil
}

// Login checks the password and returns the user with a signed token.
func (s *UserService) Login(ctx context.Context, email, password string) (user.User, string, error) {
	usr, err := s.Repos.User.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return user.User{}, "", ErrInvalidCredentials
	}
	if usr.PasswordHash == "" {
		return user.User{}, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return user.User{}, "", ErrInvalidCredentials
	}

	token, err := middleware.GenerateToken(usr, config.TokenTTL)
	if err != nil {
		return user.User{}, "", err
	}
	return usr, token, nil
}

func (s *UserService) FindUserByID(ctx context.Context, id string) (user.User, error) {
	usr, err := s.Repos.User.GetUserByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user.User{}, ErrUserNotFound
	}
	return usr, err
}

func (s *UserService) ListUsers(ctx context.Context, role *user.Role) ([]user.User, error) {
	users, err := s.Repos.User.ListUsers(ctx, role)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []user.User{}
	}
	return users, nil
}
