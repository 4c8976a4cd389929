package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/linskybing/formflow/internal/repository"
	"github.com/linskybing/formflow/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func snapshot(formID string, n int, at time.Time) *form.FormSubmissionHistory {
	return &form.FormSubmissionHistory{
		FormIdentifier:        formID,
		SubmissionNumber:      n,
		StatusAtSubmission:    form.StatusSubmitted,
		FormDataSnapshot:      datatypes.JSONMap{"n": n},
		SubmittedByCustomerID: "C1",
		SubmittedAt:           at,
	}
}

func TestFormHistoryRepo_AppendAndList(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewFormHistoryRepo(testutils.NewTestDB(t))
	base := time.Now().Add(-time.Hour)

	require.NoError(t, repo.CreateHistory(ctx, snapshot("F1", 2, base.Add(time.Minute))))
	require.NoError(t, repo.CreateHistory(ctx, snapshot("F1", 1, base)))
	require.NoError(t, repo.CreateHistory(ctx, snapshot("F2", 1, base.Add(2*time.Minute))))

	count, err := repo.CountByForm(ctx, "F1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	rows, err := repo.ListByForm(ctx, "F1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].SubmissionNumber)
	assert.Equal(t, 2, rows[1].SubmissionNumber)
	assert.NotEmpty(t, rows[0].ID)

	empty, err := repo.ListByForm(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, empty)

	recent, err := repo.ListRecent(ctx, "", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "F2", recent[0].FormIdentifier)
	assert.Equal(t, 2, recent[1].SubmissionNumber)
}

func TestFormHistoryRepo_RejectsDuplicateSubmissionNumber(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewFormHistoryRepo(testutils.NewTestDB(t))

	require.NoError(t, repo.CreateHistory(ctx, snapshot("F1", 1, time.Now())))
	err := repo.CreateHistory(ctx, snapshot("F1", 1, time.Now()))
	require.Error(t, err)
	assert.True(t, repository.IsUniqueViolation(err))

	count, err := repo.CountByForm(ctx, "F1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestFormHistoryRepo_DeleteByForm(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewFormHistoryRepo(testutils.NewTestDB(t))

	require.NoError(t, repo.CreateHistory(ctx, snapshot("F1", 1, time.Now())))
	require.NoError(t, repo.CreateHistory(ctx, snapshot("F2", 1, time.Now())))
	require.NoError(t, repo.DeleteByForm(ctx, "F1"))

	count, err := repo.CountByForm(ctx, "F1")
	require.NoError(t, err)
	assert.Zero(t, count)
	count, err = repo.CountByForm(ctx, "F2")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, repository.IsUniqueViolation(nil))
	assert.False(t, repository.IsUniqueViolation(assert.AnError))
}
