package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/linskybing/formflow/internal/domain/notification"
	"github.com/linskybing/formflow/internal/domain/user"
	"github.com/linskybing/formflow/internal/repository"
	"github.com/linskybing/formflow/pkg/observability"
	"github.com/linskybing/formflow/pkg/utils"
	"gorm.io/gorm"
)

const unknownCustomer = "Unknown Customer"

// FormService is the form workflow engine. Every transition loads the form
// under a row lock, checks the policy rules, persists, and only then emits
// audit entries and notifications.
type FormService struct {
	Repos    *repository.Repos
	Notifier Notifier
	Archiver *Archiver
	Catalog  *form.Catalog

	locks    *formLocks
	archives sync.WaitGroup
	now      func() time.Time
}

func NewFormService(repos *repository.Repos, notifier Notifier, archiver *Archiver, catalog *form.Catalog) *FormService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &FormService{
		Repos:    repos,
		Notifier: notifier,
		Archiver: archiver,
		Catalog:  catalog,
		locks:    newFormLocks(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func formNotFound(id string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return form.NotFound("Form not found with ID: %s", id)
	}
	return err
}

// resolveActor maps an external subject to a directory actor.
func resolveActor(ctx context.Context, repos *repository.Repos, subject string) (user.User, form.Actor, error) {
	u, err := repos.User.GetUserBySubject(ctx, subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return u, form.Actor{}, form.NotFound("User not found with subject: %s", subject)
		}
		return u, form.Actor{}, err
	}
	return u, form.Actor{UserID: u.ID, Role: u.Role}, nil
}

func customerActor(customerID string) form.Actor {
	return form.Actor{UserID: customerID, Role: user.RoleCustomer}
}

func (s *FormService) CreateAndAssign(ctx context.Context, actorSubject string, input form.CreateFormDTO) (*form.Form, error) {
	if !input.FormType.Valid() {
		return nil, form.InvalidInput("Invalid form type: %s", input.FormType)
	}

	var created form.Form
	var customer user.User
	err := s.Repos.ExecTx(ctx, func(tx *repository.Repos) error {
		var err error
		customer, err = tx.User.GetUserByID(ctx, input.CustomerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return form.NotFound("Customer not found with ID: %s", input.CustomerID)
			}
			return err
		}

		assigner, actor, err := resolveActor(ctx, tx, actorSubject)
		if err != nil {
			return err
		}
		if err := form.Check(actor, nil, form.Privileged("assign")); err != nil {
			return err
		}

		if _, err := tx.Project.GetProjectByIdentifier(ctx, input.ProjectIdentifier); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return form.NotFound("Project not found with ID: %s", input.ProjectIdentifier)
			}
			return err
		}

		lot, err := tx.Lot.GetLotWithUsers(ctx, input.LotIdentifier)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return form.NotFound("Lot not found with ID: %s", input.LotIdentifier)
			}
			return err
		}
		if lot.ProjectIdentifier != input.ProjectIdentifier {
			return form.InvalidInput("Lot %s does not belong to project %s", input.LotIdentifier, input.ProjectIdentifier)
		}
		if len(lot.AssignedUsers) == 0 {
			return form.InvalidInput("No users are assigned to lot %s", input.LotIdentifier)
		}
		if !lot.HasAssignedUser(assigner.ID) {
			return form.InvalidInput("Salesperson is not assigned to lot %s", input.LotIdentifier)
		}
		if !lot.HasAssignedUser(customer.ID) {
			return form.InvalidInput("Customer is not assigned to lot %s", input.LotIdentifier)
		}

		exists, err := tx.Form.ExistsForLot(ctx, input.ProjectIdentifier, input.LotIdentifier, customer.ID, input.FormType)
		if err != nil {
			return err
		}
		if exists {
			return form.InvalidInput("Customer already has a %s form for this project and lot", input.FormType)
		}

		tpl := s.Catalog.Template(input.FormType)
		title := strings.TrimSpace(input.FormTitle)
		if title == "" {
			title = tpl.DefaultTitle
		}
		instructions := input.Instructions
		if instructions == "" {
			instructions = tpl.DefaultInstructions
		}

		now := s.now()
		created = form.Form{
			FormType:          input.FormType,
			Status:            form.StatusAssigned,
			ProjectIdentifier: input.ProjectIdentifier,
			LotIdentifier:     input.LotIdentifier,
			CustomerID:        customer.ID,
			CustomerName:      customer.FullName(),
			CustomerEmail:     customer.Email,
			AssignedByUserID:  assigner.ID,
			AssignedByName:    assigner.FullName(),
			FormTitle:         title,
			Instructions:      instructions,
			FormData:          form.CloneData(input.FormData),
			AssignedDate:      &now,
		}
		if err := tx.Form.CreateForm(ctx, &created); err != nil {
			if repository.IsUniqueViolation(err) {
				return form.InvalidInput("Customer already has a %s form for this project and lot", input.FormType)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Form %s (%s) assigned to customer %s", created.ID, created.FormType, created.CustomerID)
	observability.RecordTransition("create")
	utils.LogAuditWithConsole(ctx, "create", "form", created.ID, nil, created, "form assigned", s.Repos.Audit)
	s.Notifier.Notify(ctx, s.event(notification.CategoryFormAssigned, created.CustomerID, &created))

	return &created, nil
}

// mutate runs fn on the locked, freshly loaded form inside one transaction.
// fn returns the snapshot to persist; nothing is written when it fails.
func (s *FormService) mutate(ctx context.Context, id string, fn func(tx *repository.Repos, f *form.Form) error) (form.Form, form.Form, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	var before, after form.Form
	err := s.Repos.ExecTx(ctx, func(tx *repository.Repos) error {
		f, err := tx.Form.GetFormForUpdate(ctx, id)
		if err != nil {
			return formNotFound(id, err)
		}
		before = f
		before.FormData = form.CloneData(f.FormData)

		if err := fn(tx, &f); err != nil {
			return err
		}
		after = f
		return nil
	})
	return before, after, err
}

// UpdateData saves the customer's answers without creating history.
func (s *FormService) UpdateData(ctx context.Context, id, customerID string, input form.UpdateFormDataDTO) (*form.Form, error) {
	before, after, err := s.mutate(ctx, id, func(tx *repository.Repos, f *form.Form) error {
		if err := form.Check(customerActor(customerID), f, form.UpdateDataRules...); err != nil {
			return err
		}
		f.FormData = form.CloneData(input.FormData)
		if f.Status == form.StatusAssigned || f.Status == form.StatusReopened {
			f.Status = form.StatusInProgress
		}
		return tx.Form.SaveForm(ctx, f)
	})
	if err != nil {
		return nil, err
	}

	observability.RecordTransition("update_data")
	utils.LogAuditWithConsole(ctx, "update_data", "form", id, before, after, "", s.Repos.Audit)
	return &after, nil
}

// Submit records the answers, moves the form to SUBMITTED and appends the
// next numbered history snapshot.
func (s *FormService) Submit(ctx context.Context, id, customerID string, input form.UpdateFormDataDTO) (*form.Form, error) {
	var customerName string
	before, after, err := s.mutate(ctx, id, func(tx *repository.Repos, f *form.Form) error {
		if err := form.Check(customerActor(customerID), f, form.SubmitRules...); err != nil {
			return err
		}

		now := s.now()
		f.FormData = form.CloneData(input.FormData)
		f.Status = form.StatusSubmitted
		f.LastSubmittedDate = &now
		if f.FirstSubmittedDate == nil {
			f.FirstSubmittedDate = &now
		}
		if err := tx.Form.SaveForm(ctx, f); err != nil {
			return err
		}

		count, err := tx.FormHistory.CountByForm(ctx, f.ID)
		if err != nil {
			return err
		}

		customerName = unknownCustomer
		if u, err := tx.User.GetUserByID(ctx, customerID); err == nil {
			customerName = u.FullName()
		}

		entry := &form.FormSubmissionHistory{
			FormIdentifier:          f.ID,
			SubmissionNumber:        int(count) + 1,
			StatusAtSubmission:      f.Status,
			FormDataSnapshot:        form.CloneData(f.FormData),
			SubmittedByCustomerID:   customerID,
			SubmittedByCustomerName: customerName,
			SubmissionNotes:         input.SubmissionNotes,
			SubmittedAt:             now,
		}
		if err := tx.FormHistory.CreateHistory(ctx, entry); err != nil {
			if repository.IsUniqueViolation(err) {
				return form.InvalidInput("concurrent submission conflict")
			}
			return err
		}
		log.Printf("Created submission history entry #%d for form %s", entry.SubmissionNumber, f.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	observability.RecordTransition("submit")
	observability.RecordSubmission()
	utils.LogAuditWithConsole(ctx, "submit", "form", id, before, after, "form submitted", s.Repos.Audit)

	event := s.event(notification.CategoryFormSubmitted, after.AssignedByUserID, &after)
	event.CustomerName = customerName
	if customerName == unknownCustomer && after.CustomerName != "" {
		event.CustomerName = after.CustomerName
	}
	event.SubmittedAt = after.LastSubmittedDate
	s.Notifier.Notify(ctx, event)

	return &after, nil
}

func (s *FormService) Reopen(ctx context.Context, id, actorSubject string, input form.ReopenFormDTO) (*form.Form, error) {
	reason := strings.TrimSpace(input.ReopenReason)
	before, after, err := s.mutate(ctx, id, func(tx *repository.Repos, f *form.Form) error {
		_, actor, err := resolveActor(ctx, tx, actorSubject)
		if err != nil {
			return err
		}
		if err := form.Check(actor, f, form.ReopenRules...); err != nil {
			return err
		}
		if reason == "" {
			return form.InvalidInput("Reopen reason is required")
		}

		now := s.now()
		f.Status = form.StatusReopened
		f.ReopenedDate = &now
		f.ReopenedByUserID = actor.UserID
		f.ReopenReason = reason
		f.ReopenCount++
		if input.NewInstructions != nil && *input.NewInstructions != "" {
			f.Instructions = *input.NewInstructions
		}
		return tx.Form.SaveForm(ctx, f)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Form %s reopened, reopen count %d", id, after.ReopenCount)
	observability.RecordTransition("reopen")
	utils.LogAuditWithConsole(ctx, "reopen", "form", id, before, after, reason, s.Repos.Audit)

	event := s.event(notification.CategoryFormReopened, after.CustomerID, &after)
	event.Reason = reason
	s.Notifier.Notify(ctx, event)

	return &after, nil
}

func (s *FormService) Complete(ctx context.Context, id, actorSubject string) (*form.Form, error) {
	before, after, err := s.mutate(ctx, id, func(tx *repository.Repos, f *form.Form) error {
		_, actor, err := resolveActor(ctx, tx, actorSubject)
		if err != nil {
			return err
		}
		if err := form.Check(actor, f, form.CompleteRules...); err != nil {
			return err
		}
		now := s.now()
		f.Status = form.StatusCompleted
		f.CompletedDate = &now
		return tx.Form.SaveForm(ctx, f)
	})
	if err != nil {
		return nil, err
	}

	observability.RecordTransition("complete")
	utils.LogAuditWithConsole(ctx, "complete", "form", id, before, after, "form completed", s.Repos.Audit)
	s.archiveAsync(after)

	return &after, nil
}

func (s *FormService) archiveAsync(f form.Form) {
	if s.Archiver == nil {
		return
	}
	s.archives.Add(1)
	go func() {
		defer s.archives.Done()
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		if _, err := s.Archiver.Archive(ctx, &f); err != nil {
			log.Printf("archive form %s failed: %v", f.ID, err)
		}
	}()
}

// Wait blocks until pending archive writes finish.
func (s *FormService) Wait() {
	s.archives.Wait()
}

// UpdateDetails changes only the title and instructions.
func (s *FormService) UpdateDetails(ctx context.Context, id, actorSubject string, input form.UpdateFormDetailsDTO) (*form.Form, error) {
	before, after, err := s.mutate(ctx, id, func(tx *repository.Repos, f *form.Form) error {
		_, actor, err := resolveActor(ctx, tx, actorSubject)
		if err != nil {
			return err
		}
		if err := form.Check(actor, f, form.DetailsRules...); err != nil {
			return err
		}
		if input.FormTitle != nil {
			f.FormTitle = *input.FormTitle
		}
		if input.Instructions != nil {
			f.Instructions = *input.Instructions
		}
		return tx.Form.SaveForm(ctx, f)
	})
	if err != nil {
		return nil, err
	}

	observability.RecordTransition("update_details")
	utils.LogAuditWithConsole(ctx, "update_details", "form", id, before, after, "", s.Repos.Audit)
	return &after, nil
}

// Delete removes the history rows first, then the form.
func (s *FormService) Delete(ctx context.Context, id, actorSubject string) error {
	before, _, err := s.mutate(ctx, id, func(tx *repository.Repos, f *form.Form) error {
		_, actor, err := resolveActor(ctx, tx, actorSubject)
		if err != nil {
			return err
		}
		if err := form.Check(actor, f, form.DeleteRules...); err != nil {
			return err
		}
		if err := tx.FormHistory.DeleteByForm(ctx, f.ID); err != nil {
			return fmt.Errorf("delete history: %w", err)
		}
		return tx.Form.DeleteForm(ctx, f.ID)
	})
	if err != nil {
		return err
	}

	observability.RecordTransition("delete")
	utils.LogAuditWithConsole(ctx, "delete", "form", id, before, nil, "form deleted", s.Repos.Audit)
	return nil
}

func (s *FormService) GetByID(ctx context.Context, id string) (*form.Form, error) {
	f, err := s.Repos.Form.GetFormByID(ctx, id)
	if err != nil {
		return nil, formNotFound(id, err)
	}
	return &f, nil
}

// GetHistory returns the snapshots in submission order.
func (s *FormService) GetHistory(ctx context.Context, id string) ([]form.FormSubmissionHistory, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.Repos.FormHistory.ListByForm(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].FormDataSnapshot = form.CloneData(rows[i].FormDataSnapshot)
	}
	return rows, nil
}

// ListRecentSubmissions is the activity view: newest submissions first.
func (s *FormService) ListRecentSubmissions(ctx context.Context, formID string, limit int) ([]form.FormSubmissionHistory, error) {
	return s.Repos.FormHistory.ListRecent(ctx, formID, limit)
}

func (s *FormService) HasFormOfType(ctx context.Context, projectID, customerID string, formType form.FormType) (bool, error) {
	if !formType.Valid() {
		return false, form.InvalidInput("Invalid form type: %s", formType)
	}
	return s.Repos.Form.ExistsForCustomer(ctx, projectID, customerID, formType)
}

func (s *FormService) list(ctx context.Context, q repository.FormQuery) ([]form.Form, error) {
	forms, err := s.Repos.Form.ListForms(ctx, q)
	if err != nil {
		return nil, err
	}
	if forms == nil {
		forms = []form.Form{}
	}
	return forms, nil
}

func (s *FormService) ListAll(ctx context.Context) ([]form.Form, error) {
	return s.list(ctx, repository.FormQuery{})
}

func (s *FormService) ListByProject(ctx context.Context, projectID string) ([]form.Form, error) {
	return s.list(ctx, repository.FormQuery{ProjectIdentifier: &projectID})
}

func (s *FormService) ListByCustomer(ctx context.Context, customerID string) ([]form.Form, error) {
	return s.list(ctx, repository.FormQuery{CustomerID: &customerID})
}

func (s *FormService) ListByCreator(ctx context.Context, assignerID string) ([]form.Form, error) {
	return s.list(ctx, repository.FormQuery{AssignedByUserID: &assignerID})
}

func (s *FormService) ListByStatus(ctx context.Context, status form.FormStatus) ([]form.Form, error) {
	if !status.Valid() {
		return nil, form.InvalidInput("Invalid form status: %s", status)
	}
	return s.list(ctx, repository.FormQuery{Status: &status})
}

func (s *FormService) ListByProjectAndStatus(ctx context.Context, projectID string, status form.FormStatus) ([]form.Form, error) {
	return s.list(ctx, repository.FormQuery{ProjectIdentifier: &projectID, Status: &status})
}

func (s *FormService) ListByCustomerAndStatus(ctx context.Context, customerID string, status form.FormStatus) ([]form.Form, error) {
	return s.list(ctx, repository.FormQuery{CustomerID: &customerID, Status: &status})
}

func (s *FormService) ListReopened(ctx context.Context) ([]form.Form, error) {
	return s.list(ctx, repository.FormQuery{ReopenedOnly: true})
}

// ListFiltered applies the list endpoint rules. Owners asking for all forms
// get every form. Other privileged callers are scoped by the first filter
// present (project, customer, status) and fall back to the forms they
// assigned; customers only ever see their own. Type narrows the result.
func (s *FormService) ListFiltered(ctx context.Context, actor form.Actor, q form.ListFormsQuery) ([]form.Form, error) {
	if q.Status != "" && !q.Status.Valid() {
		return nil, form.InvalidInput("Invalid form status: %s", q.Status)
	}
	if q.FormType != "" && !q.FormType.Valid() {
		return nil, form.InvalidInput("Invalid form type: %s", q.FormType)
	}

	forms, err := s.scopedList(ctx, actor, q)
	if err != nil {
		return nil, err
	}
	if q.FormType == "" {
		return forms, nil
	}
	out := make([]form.Form, 0, len(forms))
	for _, f := range forms {
		if f.FormType == q.FormType {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *FormService) scopedList(ctx context.Context, actor form.Actor, q form.ListFormsQuery) ([]form.Form, error) {
	if !form.IsPrivileged(actor) {
		if q.Status != "" {
			return s.ListByCustomerAndStatus(ctx, actor.UserID, q.Status)
		}
		return s.ListByCustomer(ctx, actor.UserID)
	}

	switch {
	case q.All && actor.Role == user.RoleOwner:
		forms, err := s.ListAll(ctx)
		if err != nil || q.Status == "" {
			return forms, err
		}
		return filterStatus(forms, q.Status), nil
	case q.ProjectID != "" && q.Status != "":
		return s.ListByProjectAndStatus(ctx, q.ProjectID, q.Status)
	case q.ProjectID != "":
		return s.ListByProject(ctx, q.ProjectID)
	case q.CustomerID != "" && q.Status != "":
		return s.ListByCustomerAndStatus(ctx, q.CustomerID, q.Status)
	case q.CustomerID != "":
		return s.ListByCustomer(ctx, q.CustomerID)
	case q.Status != "":
		return s.ListByStatus(ctx, q.Status)
	default:
		return s.ListByCreator(ctx, actor.UserID)
	}
}

func filterStatus(forms []form.Form, status form.FormStatus) []form.Form {
	out := make([]form.Form, 0, len(forms))
	for _, f := range forms {
		if f.Status == status {
			out = append(out, f)
		}
	}
	return out
}

// ListByLot returns the lot's forms; customers only see their own.
func (s *FormService) ListByLot(ctx context.Context, actor form.Actor, lotID string, status form.FormStatus) ([]form.Form, error) {
	assigned := false
	if actor.Role != user.RoleOwner {
		var err error
		assigned, err = s.Repos.Lot.IsUserAssigned(ctx, lotID, actor.UserID)
		if err != nil {
			return nil, err
		}
	}
	if !form.CanListLot(actor, assigned) {
		return nil, form.Forbidden("User is not authorized to view forms for lot %s", lotID)
	}

	query := repository.FormQuery{LotIdentifier: &lotID}
	if actor.Role == user.RoleCustomer {
		query.CustomerID = &actor.UserID
	}
	if status != "" {
		query.Status = &status
	}
	return s.list(ctx, query)
}

// ProjectSummary counts forms per status for one project, or all projects when empty.
func (s *FormService) ProjectSummary(ctx context.Context, projectID string) ([]form.StatusCount, error) {
	counts, err := s.Repos.Form.CountByStatus(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if counts == nil {
		counts = []form.StatusCount{}
	}
	return counts, nil
}

// CountByStatus feeds the forms-by-status metrics collector.
func (s *FormService) CountByStatus(ctx context.Context) (map[string]int64, error) {
	counts, err := s.Repos.Form.CountByStatus(ctx, "")
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(counts))
	for _, c := range counts {
		out[string(c.Status)] = c.Count
	}
	return out, nil
}

// Download returns the archive of a completed form and its file name.
func (s *FormService) Download(ctx context.Context, actor form.Actor, id string) ([]byte, string, error) {
	f, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if f.Status != form.StatusCompleted {
		return nil, "", form.InvalidInput("Only completed forms can be downloaded")
	}

	assigned := false
	if actor.Role != user.RoleOwner {
		assigned, err = s.Repos.Lot.IsUserAssigned(ctx, f.LotIdentifier, actor.UserID)
		if err != nil {
			return nil, "", err
		}
	}
	if !form.CanDownload(actor, f, assigned) {
		return nil, "", form.Forbidden("User is not authorized to download this form")
	}
	if s.Archiver == nil {
		return nil, "", errors.New("form archive is not configured")
	}

	data, err := s.Archiver.Fetch(ctx, f)
	if err != nil {
		return nil, "", fmt.Errorf("fetch archive: %w", err)
	}
	return data, ArchiveFileName(f), nil
}

func (s *FormService) event(category notification.Category, recipient string, f *form.Form) notification.Event {
	return notification.Event{
		Category:          category,
		RecipientUserID:   recipient,
		FormID:            f.ID,
		FormType:          string(f.FormType),
		FormTypeName:      s.Catalog.DisplayName(f.FormType),
		ProjectIdentifier: f.ProjectIdentifier,
		Instructions:      f.Instructions,
		CustomerName:      f.CustomerName,
		OccurredAt:        s.now(),
	}
}
