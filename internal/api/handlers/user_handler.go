package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formflow/internal/application"
	"github.com/linskybing/formflow/internal/config"
	"github.com/linskybing/formflow/internal/domain/user"
	"github.com/linskybing/formflow/pkg/response"
	"github.com/linskybing/formflow/pkg/utils"
)

type UserHandler struct {
	svc *application.UserService
}

func NewUserHandler(svc *application.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// CreateUser godoc
// @Summary Create a directory user
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body user.CreateUserInput true "User info"
// @Success 201 {object} user.UserDTO
// @Failure 400 {object} response.ErrorResponse "Invalid input"
// @Failure 409 {object} response.ErrorResponse "Email or subject already registered"
// @Failure 500 {object} response.ErrorResponse "Failed to create user"
// @Router /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var input user.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	u, err := h.svc.CreateUser(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user.ToDTO(u))
}

// Login godoc
// @Summary User login
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param input body user.LoginInput true "Credentials"
// @Success 200 {object} response.TokenResponse "JWT token and user info"
// @Failure 400 {object} response.ErrorResponse "Invalid input"
// @Failure 401 {object} response.ErrorResponse "Invalid email or password"
// @Failure 500 {object} response.ErrorResponse "Failed to generate token"
// @Router /login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginInput
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	u, token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		"token",
		token,
		int(config.TokenTTL.Seconds()),
		"/",
		"",
		config.IsProduction,
		true,
	)

	c.JSON(http.StatusOK, response.TokenResponse{
		Token:  token,
		UserID: u.ID,
		Email:  u.Email,
		Role:   string(u.Role),
	})
}

// Logout godoc
// @Summary User logout
// @Tags auth
// @Produce json
// @Success 200 {object} response.MessageResponse "Logout successful"
// @Router /logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Logout successful"})
}

// AuthStatus godoc
// @Summary Check the caller's token
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} response.ErrorResponse "Token expired"
// @Router /auth/status [get]
func AuthStatus(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "token expired"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "valid", "user_id": uid})
}

// Me godoc
// @Summary Current user
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} user.UserDTO
// @Failure 404 {object} response.ErrorResponse "User not found"
// @Router /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}

	u, err := h.svc.FindUserByID(c.Request.Context(), uid)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.ToDTO(u))
}

// ListUsers godoc
// @Summary List directory users
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param role query string false "OWNER, SALESPERSON or CUSTOMER"
// @Success 200 {array} user.UserDTO
// @Failure 400 {object} response.ErrorResponse "Invalid role"
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	var role *user.Role
	if raw := c.Query("role"); raw != "" {
		r := user.Role(raw)
		if !r.Valid() {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid role"})
			return
		}
		role = &r
	}

	users, err := h.svc.ListUsers(c.Request.Context(), role)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]user.UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, user.ToDTO(u))
	}
	c.JSON(http.StatusOK, out)
}
