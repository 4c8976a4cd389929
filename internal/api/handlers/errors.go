package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/linskybing/formflow/internal/application"
	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/linskybing/formflow/pkg/response"
)

const internalErrorMessage = "Internal server error"

var fieldLabels = map[string]string{
	"Email":             "email",
	"Password":          "password",
	"FirstName":         "first name",
	"LastName":          "last name",
	"Role":              "role",
	"FormType":          "form type",
	"ProjectIdentifier": "project identifier",
	"LotIdentifier":     "lot identifier",
	"CustomerID":        "customer id",
	"ReopenReason":      "reopen reason",
	"UserIDs":           "user ids",
}

// bindingMessage turns a binding failure into something the frontend can show.
func bindingMessage(err error) string {
	var verr validator.ValidationErrors
	if !errors.As(err, &verr) {
		return "Invalid input"
	}

	msgs := make([]string, 0, len(verr))
	for _, fe := range verr {
		field := fe.StructField()
		lbl, ok := fieldLabels[field]
		if !ok {
			lbl = strings.ToLower(field)
		}

		var msg string
		switch fe.Tag() {
		case "required":
			msg = fmt.Sprintf("%s is required", lbl)
		case "min":
			msg = fmt.Sprintf("%s must be at least %s characters", lbl, fe.Param())
		case "max":
			msg = fmt.Sprintf("%s must be at most %s characters", lbl, fe.Param())
		case "email":
			msg = fmt.Sprintf("%s must be a valid email address", lbl)
		case "oneof":
			msg = fmt.Sprintf("%s must be one of [%s]", lbl, fe.Param())
		default:
			msg = fmt.Sprintf("%s is invalid", lbl)
		}
		msgs = append(msgs, msg)
	}
	return strings.Join(msgs, "; ")
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: bindingMessage(err)})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, form.ErrNotFound),
		errors.Is(err, application.ErrUserNotFound),
		errors.Is(err, application.ErrProjectNotFound),
		errors.Is(err, application.ErrLotNotFound),
		errors.Is(err, application.ErrNotificationNotFound):
		return http.StatusNotFound
	case errors.Is(err, form.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, form.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, application.ErrEmailTaken),
		errors.Is(err, application.ErrSubjectTaken),
		errors.Is(err, application.ErrProjectExists):
		return http.StatusConflict
	case errors.Is(err, application.ErrInvalidCredentials):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// writeError maps a service error onto its HTTP status. Unexpected errors
// are logged and answered with a generic message.
func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(status, response.ErrorResponse{Error: internalErrorMessage})
		return
	}
	c.JSON(status, response.ErrorResponse{Error: err.Error()})
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
}
