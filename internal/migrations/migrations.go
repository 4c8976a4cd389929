package migrations

import (
	"fmt"

	"github.com/linskybing/formflow/internal/domain/audit"
	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/linskybing/formflow/internal/domain/notification"
	"github.com/linskybing/formflow/internal/domain/project"
	"github.com/linskybing/formflow/internal/domain/user"
	"gorm.io/gorm"
)

// Models lists every table owned by the service, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&user.User{},
		&project.Project{},
		&project.Lot{},
		&form.Form{},
		&form.FormSubmissionHistory{},
		&notification.Notification{},
		&audit.AuditLog{},
	}
}

// Run creates or updates the schema. The unique index on
// (form_identifier, submission_number) is created here through the model tags.
func Run(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("migrations: nil database")
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}
