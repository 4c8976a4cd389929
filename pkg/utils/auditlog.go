package utils

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/linskybing/formflow/internal/domain/audit"
	"github.com/linskybing/formflow/internal/repository"
)

// RequestMeta is who made the request, carried on the request context for
// audit entries written far from the handler.
type RequestMeta struct {
	UserID    string
	IP        string
	UserAgent string
}

type requestMetaKey struct{}

func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

func RequestMetaFromContext(ctx context.Context) RequestMeta {
	meta, _ := ctx.Value(requestMetaKey{}).(RequestMeta)
	return meta
}

// LogAuditWithConsole writes the entry in the background; failures are only logged.
var LogAuditWithConsole = func(ctx context.Context, action, resourceType, resourceID string, oldData, newData interface{}, msg string, repo repository.AuditRepo) {
	if repo == nil {
		return
	}
	meta := RequestMetaFromContext(ctx)

	go func() {
		bg, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := LogAudit(bg, meta, action, resourceType, resourceID, oldData, newData, msg, repo); err != nil {
			log.Printf("[LogAudit] error: %v", err)
		}
	}()
}

var LogAudit = func(
	ctx context.Context,
	meta RequestMeta,
	action string,
	resourceType string,
	resourceID string,
	before any,
	after any,
	description string,
	repo repository.AuditRepo,
) error {
	var oldData, newData []byte
	var err error

	if before != nil {
		oldData, err = json.Marshal(before)
		if err != nil {
			log.Printf("Audit marshal oldData error: %v", err)
		}
	}
	if after != nil {
		newData, err = json.Marshal(after)
		if err != nil {
			log.Printf("Audit marshal newData error: %v", err)
		}
	}

	entry := &audit.AuditLog{
		UserID:       meta.UserID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		OldData:      oldData,
		NewData:      newData,
		IPAddress:    meta.IP,
		UserAgent:    meta.UserAgent,
		Description:  description,
	}

	return repo.CreateAuditLog(ctx, entry)
}
