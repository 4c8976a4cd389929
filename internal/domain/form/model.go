package form

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type FormType string

const (
	TypeExteriorDoors   FormType = "EXTERIOR_DOORS"
	TypeGarageDoors     FormType = "GARAGE_DOORS"
	TypeWindows         FormType = "WINDOWS"
	TypeAsphaltShingles FormType = "ASPHALT_SHINGLES"
	TypeWoodwork        FormType = "WOODWORK"
	TypePaint           FormType = "PAINT"
)

var AllTypes = []FormType{
	TypeExteriorDoors,
	TypeGarageDoors,
	TypeWindows,
	TypeAsphaltShingles,
	TypeWoodwork,
	TypePaint,
}

func (t FormType) Valid() bool {
	for _, v := range AllTypes {
		if v == t {
			return true
		}
	}
	return false
}

// DisplayName returns the human label used in notifications.
func (t FormType) DisplayName() string {
	switch t {
	case TypeExteriorDoors:
		return "Exterior Doors"
	case TypeGarageDoors:
		return "Garage Doors"
	case TypeWindows:
		return "Windows"
	case TypeAsphaltShingles:
		return "Asphalt Shingles"
	case TypeWoodwork:
		return "Woodwork"
	case TypePaint:
		return "Paint"
	}
	return string(t)
}

type FormStatus string

const (
	StatusDraft      FormStatus = "DRAFT"
	StatusAssigned   FormStatus = "ASSIGNED"
	StatusInProgress FormStatus = "IN_PROGRESS"
	StatusSubmitted  FormStatus = "SUBMITTED"
	StatusReopened   FormStatus = "REOPENED"
	StatusCompleted  FormStatus = "COMPLETED"
)

var AllStatuses = []FormStatus{
	StatusDraft,
	StatusAssigned,
	StatusInProgress,
	StatusSubmitted,
	StatusReopened,
	StatusCompleted,
}

func (s FormStatus) Valid() bool {
	for _, v := range AllStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Form is the mutable workflow record. Type, project, lot and customer never
// change after creation.
type Form struct {
	ID                 string            `gorm:"primaryKey;type:varchar(36)" json:"formId"`
	FormType           FormType          `gorm:"type:varchar(32);not null;uniqueIndex:idx_forms_owner,priority:4" json:"formType"`
	Status             FormStatus        `gorm:"column:form_status;type:varchar(16);not null;index" json:"formStatus"`
	ProjectIdentifier  string            `gorm:"type:varchar(64);not null;uniqueIndex:idx_forms_owner,priority:1" json:"projectIdentifier"`
	LotIdentifier      string            `gorm:"type:varchar(36);not null;uniqueIndex:idx_forms_owner,priority:2;index" json:"lotIdentifier"`
	CustomerID         string            `gorm:"type:varchar(36);not null;uniqueIndex:idx_forms_owner,priority:3;index" json:"customerId"`
	CustomerName       string            `gorm:"size:200" json:"customerName"`
	CustomerEmail      string            `gorm:"size:255" json:"customerEmail"`
	AssignedByUserID   string            `gorm:"type:varchar(36);not null;index" json:"assignedByUserId"`
	AssignedByName     string            `gorm:"size:200" json:"assignedByName"`
	FormTitle          string            `gorm:"size:255" json:"formTitle"`
	Instructions       string            `gorm:"type:text" json:"instructions"`
	FormData           datatypes.JSONMap `json:"formData"`
	AssignedDate       *time.Time        `json:"assignedDate"`
	FirstSubmittedDate *time.Time        `json:"firstSubmittedDate"`
	LastSubmittedDate  *time.Time        `json:"lastSubmittedDate"`
	CompletedDate      *time.Time        `json:"completedDate"`
	ReopenedDate       *time.Time        `json:"reopenedDate"`
	ReopenedByUserID   string            `gorm:"type:varchar(36)" json:"reopenedByUserId,omitempty"`
	ReopenReason       string            `gorm:"type:text" json:"reopenReason,omitempty"`
	ReopenCount        int               `gorm:"not null;default:0" json:"reopenCount"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

func (Form) TableName() string {
	return "forms"
}

func (f *Form) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if f.Status == "" {
		f.Status = StatusAssigned
	}
	if f.FormData == nil {
		f.FormData = datatypes.JSONMap{}
	}
	return nil
}

// FormSubmissionHistory is one immutable snapshot per successful submission.
// (FormIdentifier, SubmissionNumber) is unique.
type FormSubmissionHistory struct {
	ID                      string            `gorm:"primaryKey;type:varchar(36)" json:"historyId"`
	FormIdentifier          string            `gorm:"type:varchar(36);not null;uniqueIndex:idx_history_form_submission,priority:1" json:"formIdentifier"`
	SubmissionNumber        int               `gorm:"not null;uniqueIndex:idx_history_form_submission,priority:2" json:"submissionNumber"`
	StatusAtSubmission      FormStatus        `gorm:"type:varchar(16);not null" json:"statusAtSubmission"`
	FormDataSnapshot        datatypes.JSONMap `json:"formDataSnapshot"`
	SubmittedByCustomerID   string            `gorm:"type:varchar(36);not null" json:"submittedByCustomerId"`
	SubmittedByCustomerName string            `gorm:"size:200" json:"submittedByCustomerName"`
	SubmissionNotes         string            `gorm:"type:text" json:"submissionNotes,omitempty"`
	SubmittedAt             time.Time         `gorm:"not null;index" json:"submittedAt"`
}

func (FormSubmissionHistory) TableName() string {
	return "form_submission_history"
}

func (h *FormSubmissionHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if h.SubmittedAt.IsZero() {
		h.SubmittedAt = time.Now()
	}
	return nil
}
