package notification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category string

const (
	CategoryFormAssigned  Category = "FORM_ASSIGNED"
	CategoryFormSubmitted Category = "FORM_SUBMITTED"
	CategoryFormReopened  Category = "FORM_REOPENED"
)

// Notification is the in-app record shown to a user.
type Notification struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"notificationId"`
	UserID    string    `gorm:"type:varchar(36);not null;index" json:"userId"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Message   string    `gorm:"type:text" json:"message"`
	Category  Category  `gorm:"type:varchar(32);not null" json:"category"`
	Link      string    `gorm:"size:255" json:"link"`
	Read      bool      `gorm:"column:is_read;not null;default:false;index" json:"read"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

// Event is the message handed from the form workflow to the delivery worker.
// It is self-contained so the worker never reads mutable form state.
type Event struct {
	Category          Category   `json:"category"`
	RecipientUserID   string     `json:"recipientUserId"`
	FormID            string     `json:"formId"`
	FormType          string     `json:"formType"`
	FormTypeName      string     `json:"formTypeName"`
	ProjectIdentifier string     `json:"projectIdentifier"`
	Instructions      string     `json:"instructions,omitempty"`
	CustomerName      string     `json:"customerName,omitempty"`
	Reason            string     `json:"reason,omitempty"`
	SubmittedAt       *time.Time `json:"submittedAt,omitempty"`
	OccurredAt        time.Time  `json:"occurredAt"`
}

func (e Event) Link() string {
	return "/forms/" + e.FormID
}
