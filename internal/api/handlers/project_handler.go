package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formflow/internal/application"
	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/linskybing/formflow/internal/domain/project"
	"github.com/linskybing/formflow/pkg/response"
	"github.com/linskybing/formflow/pkg/utils"
)

type ProjectHandler struct {
	svc *application.ProjectService
}

func NewProjectHandler(svc *application.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// GetProjects godoc
// @Summary List all projects
// @Tags projects
// @Security BearerAuth
// @Produce json
// @Success 200 {array} project.Project
// @Failure 500 {object} response.ErrorResponse
// @Router /projects [get]
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	projects, err := h.svc.ListProjects(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// GetProjectByID godoc
// @Summary Get project by identifier
// @Tags projects
// @Security BearerAuth
// @Produce json
// @Param id path string true "Project identifier"
// @Success 200 {object} project.Project
// @Failure 404 {object} response.ErrorResponse "Project not found"
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProjectByID(c *gin.Context) {
	p, err := h.svc.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// CreateProject godoc
// @Summary Create a project
// @Tags projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body project.CreateProjectDTO true "Project data"
// @Success 201 {object} project.Project
// @Failure 400 {object} response.ErrorResponse "Invalid input"
// @Failure 409 {object} response.ErrorResponse "Project already exists"
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var input project.CreateProjectDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	p, err := h.svc.CreateProject(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// CreateLot godoc
// @Summary Add a lot to a project
// @Tags projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Project identifier"
// @Param input body project.CreateLotDTO true "Lot data"
// @Success 201 {object} project.Lot
// @Failure 404 {object} response.ErrorResponse "Project not found"
// @Router /projects/{id}/lots [post]
func (h *ProjectHandler) CreateLot(c *gin.Context) {
	var input project.CreateLotDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	l, err := h.svc.CreateLot(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

// GetLot godoc
// @Summary Get a lot with its assigned users
// @Tags lots
// @Security BearerAuth
// @Produce json
// @Param id path string true "Lot identifier"
// @Success 200 {object} project.Lot
// @Failure 403 {object} response.ErrorResponse "Not assigned to the lot"
// @Failure 404 {object} response.ErrorResponse "Lot not found"
// @Router /lots/{id} [get]
func (h *ProjectHandler) GetLot(c *gin.Context) {
	actor, err := utils.GetActorFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}

	l, err := h.svc.GetLot(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if !form.IsPrivileged(actor) && !l.HasAssignedUser(actor.UserID) {
		c.JSON(http.StatusForbidden, response.ErrorResponse{Error: "User is not assigned to this lot"})
		return
	}
	c.JSON(http.StatusOK, l)
}

// GetMyLots godoc
// @Summary Lots the caller is assigned to
// @Tags lots
// @Security BearerAuth
// @Produce json
// @Success 200 {array} project.Lot
// @Router /lots/mine [get]
func (h *ProjectHandler) GetMyLots(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}

	lots, err := h.svc.ListLotsForUser(c.Request.Context(), uid)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, lots)
}

// SetLotAssignees godoc
// @Summary Replace the users assigned to a lot
// @Tags lots
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Lot identifier"
// @Param input body project.SetAssigneesDTO true "User ids"
// @Success 200 {object} project.Lot
// @Failure 404 {object} response.ErrorResponse "Lot or user not found"
// @Router /lots/{id}/assignees [put]
func (h *ProjectHandler) SetLotAssignees(c *gin.Context) {
	var input project.SetAssigneesDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	l, err := h.svc.SetAssignees(c.Request.Context(), c.Param("id"), input.UserIDs)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}
