package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/linskybing/formflow/internal/domain/user"
	"github.com/linskybing/formflow/pkg/types"
)

var ErrNoClaims = errors.New("user claims not found in context")

var GetClaimsFromContext = func(c *gin.Context) (*types.Claims, error) {
	claimsVal, exists := c.Get("claims")
	if !exists {
		return nil, ErrNoClaims
	}

	claims, ok := claimsVal.(*types.Claims)
	if !ok {
		return nil, errors.New("invalid user claims type")
	}

	return claims, nil
}

var GetUserIDFromContext = func(c *gin.Context) (string, error) {
	claims, err := GetClaimsFromContext(c)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// GetSubjectFromContext returns the identity-provider subject ("sub").
var GetSubjectFromContext = func(c *gin.Context) (string, error) {
	claims, err := GetClaimsFromContext(c)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}

func GetActorFromContext(c *gin.Context) (form.Actor, error) {
	claims, err := GetClaimsFromContext(c)
	if err != nil {
		return form.Actor{}, err
	}
	return form.Actor{UserID: claims.UserID, Role: user.Role(claims.Role)}, nil
}
