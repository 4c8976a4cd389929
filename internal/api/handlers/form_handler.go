package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formflow/internal/application"
	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/linskybing/formflow/pkg/response"
	"github.com/linskybing/formflow/pkg/utils"
)

type FormHandler struct {
	service *application.FormService
}

func NewFormHandler(service *application.FormService) *FormHandler {
	return &FormHandler{service: service}
}

// viewable loads the form and checks the caller may see it. It writes the
// error response itself and returns nil on failure.
func (h *FormHandler) viewable(c *gin.Context) *form.Form {
	actor, err := utils.GetActorFromContext(c)
	if err != nil {
		unauthorized(c)
		return nil
	}
	f, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return nil
	}
	if !form.CanView(actor, f) {
		c.JSON(http.StatusForbidden, response.ErrorResponse{Error: "User is not authorized to view this form"})
		return nil
	}
	return f
}

// CreateForm godoc
// @Summary Create a form and assign it to a customer
// @Tags forms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body form.CreateFormDTO true "Form to assign"
// @Success 201 {object} form.Form
// @Failure 400 {object} response.ErrorResponse "Invalid input or duplicate form"
// @Failure 404 {object} response.ErrorResponse "Customer, assigner, project or lot not found"
// @Router /forms [post]
func (h *FormHandler) CreateForm(c *gin.Context) {
	var input form.CreateFormDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	subject, err := utils.GetSubjectFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}

	f, err := h.service.CreateAndAssign(c.Request.Context(), subject, input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, f)
}

// ListForms godoc
// @Summary List forms visible to the caller
// @Description Owners and salespeople are scoped by projectId, then customerId, then status, and otherwise see the forms they assigned. Customers only see their own.
// @Tags forms
// @Security BearerAuth
// @Produce json
// @Param projectId query string false "Project identifier"
// @Param customerId query string false "Customer user id"
// @Param status query string false "Form status"
// @Param formType query string false "Form type"
// @Param all query bool false "Owners only: list every form"
// @Success 200 {array} form.Form
// @Failure 400 {object} response.ErrorResponse "Invalid status or type"
// @Router /forms [get]
func (h *FormHandler) ListForms(c *gin.Context) {
	var q form.ListFormsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	actor, err := utils.GetActorFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}

	forms, err := h.service.ListFiltered(c.Request.Context(), actor, q)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, forms)
}

// GetMyForms godoc
// @Summary List the calling customer's forms
// @Tags forms
// @Security BearerAuth
// @Produce json
// @Param status query string false "Form status"
// @Success 200 {array} form.Form
// @Router /forms/my-forms [get]
func (h *FormHandler) GetMyForms(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}

	var forms []form.Form
	if status := form.FormStatus(c.Query("status")); status != "" {
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid form status: " + string(status)})
			return
		}
		forms, err = h.service.ListByCustomerAndStatus(c.Request.Context(), userID, status)
	} else {
		forms, err = h.service.ListByCustomer(c.Request.Context(), userID)
	}
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, forms)
}

// ListReopened godoc
// @Summary List forms that have been reopened at least once
// @Tags forms
// @Security BearerAuth
// @Produce json
// @Success 200 {array} form.Form
// @Router /forms/reopened [get]
func (h *FormHandler) ListReopened(c *gin.Context) {
	forms, err := h.service.ListReopened(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, forms)
}

// ListByLot godoc
// @Summary List forms of a lot
// @Tags forms
// @Security BearerAuth
// @Produce json
// @Param lotId path string true "Lot identifier"
// @Param status query string false "Form status"
// @Success 200 {array} form.Form
// @Failure 403 {object} response.ErrorResponse "Not assigned to the lot"
// @Router /forms/lot/{lotId} [get]
func (h *FormHandler) ListByLot(c *gin.Context) {
	actor, err := utils.GetActorFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}

	status := form.FormStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid form status: " + string(status)})
		return
	}

	forms, err := h.service.ListByLot(c.Request.Context(), actor, c.Param("lotId"), status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, forms)
}

// FormExists godoc
// @Summary Check whether a customer already has a form of a type in a project
// @Tags forms
// @Security BearerAuth
// @Produce json
// @Param projectId query string true "Project identifier"
// @Param customerId query string true "Customer user id"
// @Param formType query string true "Form type"
// @Success 200 {object} response.ExistsResponse
// @Failure 400 {object} response.ErrorResponse "Missing or invalid parameters"
// @Router /forms/exists [get]
func (h *FormHandler) FormExists(c *gin.Context) {
	projectID := c.Query("projectId")
	customerID := c.Query("customerId")
	formType := form.FormType(c.Query("formType"))
	if projectID == "" || customerID == "" || formType == "" {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "projectId, customerId and formType are required"})
		return
	}

	exists, err := h.service.HasFormOfType(c.Request.Context(), projectID, customerID, formType)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.ExistsResponse{Exists: exists})
}

// GetForm godoc
// @Summary Get a form
// @Tags forms
// @Security BearerAuth
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} form.Form
// @Failure 403 {object} response.ErrorResponse "Not allowed to view"
// @Failure 404 {object} response.ErrorResponse "Form not found"
// @Router /forms/{id} [get]
func (h *FormHandler) GetForm(c *gin.Context) {
	f := h.viewable(c)
	if f == nil {
		return
	}
	c.JSON(http.StatusOK, f)
}

// GetHistory godoc
// @Summary Submission history of a form, oldest first
// @Tags forms
// @Security BearerAuth
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {array} form.FormSubmissionHistory
// @Failure 404 {object} response.ErrorResponse "Form not found"
// @Router /forms/{id}/history [get]
func (h *FormHandler) GetHistory(c *gin.Context) {
	f := h.viewable(c)
	if f == nil {
		return
	}

	rows, err := h.service.GetHistory(c.Request.Context(), f.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetRecentHistory godoc
// @Summary Most recent submissions of a form, newest first
// @Tags forms
// @Security BearerAuth
// @Produce json
// @Param id path string true "Form ID"
// @Param limit query int false "Max entries (default 10)"
// @Success 200 {array} form.FormSubmissionHistory
// @Router /forms/{id}/history/recent [get]
func (h *FormHandler) GetRecentHistory(c *gin.Context) {
	f := h.viewable(c)
	if f == nil {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid limit"})
		return
	}
	if limit > 100 {
		limit = 100
	}

	rows, err := h.service.ListRecentSubmissions(c.Request.Context(), f.ID, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// UpdateFormData godoc
// @Summary Save form data, or submit it when isSubmitting is set
// @Tags forms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Form ID"
// @Param input body form.UpdateFormDataDTO true "Form data"
// @Success 200 {object} form.Form
// @Failure 400 {object} response.ErrorResponse "Not the owner or wrong status"
// @Failure 404 {object} response.ErrorResponse "Form not found"
// @Router /forms/{id}/data [put]
func (h *FormHandler) UpdateFormData(c *gin.Context) {
	var input form.UpdateFormDataDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	customerID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}

	var f *form.Form
	if input.IsSubmitting {
		f, err = h.service.Submit(c.Request.Context(), c.Param("id"), customerID, input)
	} else {
		f, err = h.service.UpdateData(c.Request.Context(), c.Param("id"), customerID, input)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// SubmitForm godoc
// @Summary Submit a form
// @Tags forms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Form ID"
// @Param input body form.UpdateFormDataDTO true "Final form data and notes"
// @Success 200 {object} form.Form
// @Failure 400 {object} response.ErrorResponse "Not the owner or already submitted"
// @Failure 404 {object} response.ErrorResponse "Form not found"
// @Router /forms/{id}/submit [post]
func (h *FormHandler) SubmitForm(c *gin.Context) {
	var input form.UpdateFormDataDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	customerID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}

	f, err := h.service.Submit(c.Request.Context(), c.Param("id"), customerID, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// ReopenForm godoc
// @Summary Reopen a submitted form
// @Tags forms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Form ID"
// @Param input body form.ReopenFormDTO true "Reason and optional new instructions"
// @Success 200 {object} form.Form
// @Failure 400 {object} response.ErrorResponse "Form is not submitted"
// @Failure 404 {object} response.ErrorResponse "Form or actor not found"
// @Router /forms/{id}/reopen [post]
func (h *FormHandler) ReopenForm(c *gin.Context) {
	var input form.ReopenFormDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	subject, err := utils.GetSubjectFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}

	f, err := h.service.Reopen(c.Request.Context(), c.Param("id"), subject, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// CompleteForm godoc
// @Summary Mark a submitted form as completed
// @Tags forms
// @Security BearerAuth
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} form.Form
// @Failure 400 {object} response.ErrorResponse "Form is not submitted"
// @Failure 404 {object} response.ErrorResponse "Form or actor not found"
// @Router /forms/{id}/complete [post]
func (h *FormHandler) CompleteForm(c *gin.Context) {
	subject, err := utils.GetSubjectFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}

	f, err := h.service.Complete(c.Request.Context(), c.Param("id"), subject)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// UpdateFormDetails godoc
// @Summary Change a form's title or instructions
// @Tags forms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Form ID"
// @Param input body form.UpdateFormDetailsDTO true "New details"
// @Success 200 {object} form.Form
// @Failure 404 {object} response.ErrorResponse "Form or actor not found"
// @Router /forms/{id} [put]
func (h *FormHandler) UpdateFormDetails(c *gin.Context) {
	var input form.UpdateFormDetailsDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	subject, err := utils.GetSubjectFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}

	f, err := h.service.UpdateDetails(c.Request.Context(), c.Param("id"), subject, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// DeleteForm godoc
// @Summary Delete a form and its history
// @Tags forms
// @Security BearerAuth
// @Produce json
// @Param id path string true "Form ID"
// @Success 204 "No Content"
// @Failure 404 {object} response.ErrorResponse "Form or actor not found"
// @Router /forms/{id} [delete]
func (h *FormHandler) DeleteForm(c *gin.Context) {
	subject, err := utils.GetSubjectFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("id"), subject); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DownloadForm godoc
// @Summary Download the archive of a completed form
// @Tags forms
// @Security BearerAuth
// @Produce octet-stream
// @Param id path string true "Form ID"
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorResponse "Form is not completed"
// @Failure 403 {object} response.ErrorResponse "Not allowed to download"
// @Router /forms/{id}/download [get]
func (h *FormHandler) DownloadForm(c *gin.Context) {
	actor, err := utils.GetActorFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}

	data, name, err := h.service.Download(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/json", data)
}

// ProjectSummary godoc
// @Summary Form counts per status for a project
// @Tags projects
// @Security BearerAuth
// @Produce json
// @Param id path string true "Project identifier"
// @Success 200 {array} form.StatusCount
// @Router /projects/{id}/summary [get]
func (h *FormHandler) ProjectSummary(c *gin.Context) {
	counts, err := h.service.ProjectSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}
