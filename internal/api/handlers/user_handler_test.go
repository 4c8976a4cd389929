package handlers_test

import (
	"net/http"
	"testing"

	"github.com/linskybing/formflow/internal/domain/user"
	"github.com/linskybing/formflow/pkg/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	env := setupEnv(t)

	t.Run("success sets cookie", func(t *testing.T) {
		resp, err := env.AnonClient.POST("/login", map[string]string{
			"email":    "Seller@Example.com",
			"password": "secret123",
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, resp.GetErrorMessage())

		var tok response.TokenResponse
		require.NoError(t, resp.DecodeJSON(&tok))
		assert.NotEmpty(t, tok.Token)
		assert.Equal(t, env.Seller.ID, tok.UserID)
		assert.Equal(t, "SALESPERSON", tok.Role)
		assert.Contains(t, resp.Headers.Get("Set-Cookie"), "token=")
	})

	t.Run("wrong password", func(t *testing.T) {
		resp, err := env.AnonClient.POST("/login", map[string]string{
			"email":    "seller@example.com",
			"password": "nope",
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid email or password", resp.GetErrorMessage())
	})

	t.Run("invalid email", func(t *testing.T) {
		resp, err := env.AnonClient.POST("/login", map[string]string{
			"email":    "not-an-email",
			"password": "secret123",
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "email must be a valid email address", resp.GetErrorMessage())
	})
}

func TestAuthStatusAndMe(t *testing.T) {
	env := setupEnv(t)

	resp, err := env.AnonClient.GET("/auth/status")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = env.CustomerClient.GET("/auth/status")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = env.CustomerClient.GET("/users/me")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me user.UserDTO
	require.NoError(t, resp.DecodeJSON(&me))
	assert.Equal(t, env.Customer.ID, me.ID)
	assert.Equal(t, "client@example.com", me.Email)
	assert.NotContains(t, string(resp.Body), "password")
}

func TestCreateAndListUsers(t *testing.T) {
	env := setupEnv(t)

	input := map[string]interface{}{
		"email":     "new@example.com",
		"password":  "secret123",
		"firstName": "Nina",
		"role":      "CUSTOMER",
	}

	resp, err := env.SellerClient.POST("/users", input)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, err = env.OwnerClient.POST("/users", input)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode, resp.GetErrorMessage())

	resp, err = env.OwnerClient.POST("/users", input)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, err = env.OwnerClient.POST("/users", map[string]interface{}{
		"email":     "bad@example.com",
		"password":  "123",
		"firstName": "Bad",
		"role":      "ADMIN",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "password must be at least 6 characters; role must be one of [OWNER SALESPERSON CUSTOMER]", resp.GetErrorMessage())

	resp, err = env.SellerClient.GET("/users", map[string]string{"role": "CUSTOMER"})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var customers []user.UserDTO
	require.NoError(t, resp.DecodeJSON(&customers))
	assert.Len(t, customers, 3)

	resp, err = env.SellerClient.GET("/users", map[string]string{"role": "ROOT"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = env.CustomerClient.GET("/users")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
