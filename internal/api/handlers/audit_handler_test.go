package handlers_test

import (
	"net/http"
	"testing"

	"github.com/linskybing/formflow/internal/domain/audit"
	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAuditLogs(t *testing.T) {
	env := setupEnv(t)
	f := createForm(t, env, form.TypeWindows)

	resp, err := env.SellerClient.GET("/audit/logs")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, err = env.OwnerClient.GET("/audit/logs", map[string]string{
		"resource_type": "form",
		"resource_id":   f.ID,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, resp.GetErrorMessage())

	var logs []audit.AuditLog
	require.NoError(t, resp.DecodeJSON(&logs))
	require.Len(t, logs, 1)
	assert.Equal(t, "create", logs[0].Action)
	assert.Equal(t, env.Seller.ID, logs[0].UserID)

	resp, err = env.OwnerClient.GET("/audit/logs", map[string]string{"start_time": "yesterday"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid start_time", resp.GetErrorMessage())
}

func TestGetAuditLogsHidesStorageErrors(t *testing.T) {
	env := setupEnv(t)
	require.NoError(t, env.Repos.DB().Migrator().DropTable(&audit.AuditLog{}))

	resp, err := env.OwnerClient.GET("/audit/logs")
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Internal server error", resp.GetErrorMessage())
	assert.NotContains(t, string(resp.Body), "no such table")
}
