package form

import (
	"errors"
	"testing"

	"github.com/linskybing/formflow/internal/domain/user"
	"github.com/stretchr/testify/assert"
)

func TestUpdateDataRules(t *testing.T) {
	f := &Form{CustomerID: "cust-1", Status: StatusAssigned}

	t.Run("owning customer allowed", func(t *testing.T) {
		assert.NoError(t, Check(Actor{UserID: "cust-1"}, f, UpdateDataRules...))
	})

	t.Run("other customer denied", func(t *testing.T) {
		err := Check(Actor{UserID: "cust-2"}, f, UpdateDataRules...)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.EqualError(t, err, "Customer is not authorized to update this form")
	})

	t.Run("privileged role is not the owner", func(t *testing.T) {
		err := Check(Actor{UserID: "sales-1", Role: user.RoleOwner}, f, UpdateDataRules...)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("completed denied", func(t *testing.T) {
		done := &Form{CustomerID: "cust-1", Status: StatusCompleted}
		err := Check(Actor{UserID: "cust-1"}, done, UpdateDataRules...)
		assert.EqualError(t, err, "Cannot update a completed form")
	})
}

func TestSubmitRules(t *testing.T) {
	owner := Actor{UserID: "cust-1"}
	cases := map[FormStatus]bool{
		StatusAssigned:   true,
		StatusInProgress: true,
		StatusReopened:   true,
		StatusDraft:      true,
		StatusSubmitted:  false,
		StatusCompleted:  false,
	}
	for status, allowed := range cases {
		err := Check(owner, &Form{CustomerID: "cust-1", Status: status}, SubmitRules...)
		if allowed {
			assert.NoError(t, err, status)
		} else {
			assert.EqualError(t, err, "Form has already been submitted", status)
		}
	}

	err := Check(Actor{UserID: "x"}, &Form{CustomerID: "cust-1", Status: StatusAssigned}, SubmitRules...)
	assert.EqualError(t, err, "Customer is not authorized to submit this form")
}

func TestReopenAndCompleteRules(t *testing.T) {
	sales := Actor{UserID: "s", Role: user.RoleSalesperson}
	submitted := &Form{Status: StatusSubmitted}
	reopened := &Form{Status: StatusReopened}

	assert.NoError(t, Check(sales, submitted, ReopenRules...))
	assert.NoError(t, Check(sales, submitted, CompleteRules...))
	assert.EqualError(t, Check(sales, reopened, ReopenRules...), "Can only reopen submitted forms")
	assert.EqualError(t, Check(sales, reopened, CompleteRules...), "Can only complete submitted forms")

	customer := Actor{UserID: "c", Role: user.RoleCustomer}
	err := Check(customer, submitted, CompleteRules...)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestViewAndDownload(t *testing.T) {
	f := &Form{CustomerID: "cust-1"}

	assert.True(t, CanView(Actor{UserID: "cust-1", Role: user.RoleCustomer}, f))
	assert.False(t, CanView(Actor{UserID: "cust-2", Role: user.RoleCustomer}, f))
	assert.True(t, CanView(Actor{UserID: "s", Role: user.RoleSalesperson}, f))

	assert.True(t, CanDownload(Actor{Role: user.RoleOwner}, f, false))
	assert.False(t, CanDownload(Actor{UserID: "s", Role: user.RoleSalesperson}, f, false))
	assert.True(t, CanDownload(Actor{UserID: "s", Role: user.RoleSalesperson}, f, true))
	assert.False(t, CanDownload(Actor{UserID: "cust-1", Role: user.RoleCustomer}, f, false))
	assert.True(t, CanDownload(Actor{UserID: "cust-1", Role: user.RoleCustomer}, f, true))

	assert.True(t, CanListLot(Actor{Role: user.RoleOwner}, false))
	assert.False(t, CanListLot(Actor{Role: user.RoleCustomer}, false))
	assert.False(t, CanListLot(Actor{Role: ""}, true))
}
