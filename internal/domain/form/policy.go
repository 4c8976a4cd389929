package form

import "github.com/linskybing/formflow/internal/domain/user"

// Actor is whoever is acting on a form: a resolved directory user or, for
// customer operations, just the customer identifier.
type Actor struct {
	UserID string
	Role   user.Role
}

// Rule decides whether actor may act on f. A nil error allows.
type Rule func(actor Actor, f *Form) error

// Check runs rules in order and stops at the first denial.
func Check(actor Actor, f *Form, rules ...Rule) error {
	for _, rule := range rules {
		if err := rule(actor, f); err != nil {
			return err
		}
	}
	return nil
}

func IsOwningCustomer(actor Actor, f *Form) bool {
	return f != nil && actor.UserID != "" && actor.UserID == f.CustomerID
}

func IsPrivileged(actor Actor) bool {
	return actor.Role.Privileged()
}

// OwnedBy denies anyone other than the form's customer, with msg as reason.
func OwnedBy(msg string) Rule {
	return func(actor Actor, f *Form) error {
		if !IsOwningCustomer(actor, f) {
			return InvalidInput("%s", msg)
		}
		return nil
	}
}

// Privileged denies actors without an owner or salesperson role.
func Privileged(action string) Rule {
	return func(actor Actor, _ *Form) error {
		if !IsPrivileged(actor) {
			return InvalidInput("User is not permitted to %s forms", action)
		}
		return nil
	}
}

func NotCompleted(_ Actor, f *Form) error {
	if f.Status == StatusCompleted {
		return InvalidInput("Cannot update a completed form")
	}
	return nil
}

func NotYetSubmitted(_ Actor, f *Form) error {
	if f.Status == StatusCompleted || f.Status == StatusSubmitted {
		return InvalidInput("Form has already been submitted")
	}
	return nil
}

func InStatus(want FormStatus, msg string) Rule {
	return func(_ Actor, f *Form) error {
		if f.Status != want {
			return InvalidInput("%s", msg)
		}
		return nil
	}
}

var (
	UpdateDataRules = []Rule{OwnedBy("Customer is not authorized to update this form"), NotCompleted}
	SubmitRules     = []Rule{OwnedBy("Customer is not authorized to submit this form"), NotYetSubmitted}
	ReopenRules     = []Rule{Privileged("reopen"), InStatus(StatusSubmitted, "Can only reopen submitted forms")}
	CompleteRules   = []Rule{Privileged("complete"), InStatus(StatusSubmitted, "Can only complete submitted forms")}
	DetailsRules    = []Rule{Privileged("update")}
	DeleteRules     = []Rule{Privileged("delete")}
)

// CanView allows owners, salespeople and the owning customer.
func CanView(actor Actor, f *Form) bool {
	return IsPrivileged(actor) || IsOwningCustomer(actor, f)
}

// CanDownload applies the archive download rules; assignedToLot says whether
// the actor is in the lot's assigned-users set.
func CanDownload(actor Actor, f *Form, assignedToLot bool) bool {
	switch actor.Role {
	case user.RoleOwner:
		return true
	case user.RoleCustomer:
		return IsOwningCustomer(actor, f) && assignedToLot
	case user.RoleSalesperson:
		return assignedToLot
	}
	return false
}

// CanListLot allows owners, and salespeople or customers assigned to the lot.
func CanListLot(actor Actor, assignedToLot bool) bool {
	if actor.Role == user.RoleOwner {
		return true
	}
	if actor.Role != user.RoleSalesperson && actor.Role != user.RoleCustomer {
		return false
	}
	return assignedToLot
}
