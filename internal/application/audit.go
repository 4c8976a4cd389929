package application

import (
	"context"

	"github.com/linskybing/formflow/internal/domain/audit"
	"github.com/linskybing/formflow/internal/repository"
)

type AuditService struct {
	Repos *repository.Repos
}

func NewAuditService(repos *repository.Repos) *AuditService {
	return &AuditService{
		Repos: repos,
	}
}

func (s *AuditService) QueryAuditLogs(ctx context.Context, params repository.AuditQueryParams) ([]audit.AuditLog, error) {
	logs, err := s.Repos.Audit.GetAuditLogs(ctx, params)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []audit.AuditLog{}
	}
	return logs, nil
}

// CleanupOldLogs deletes entries older than days and reports how many went.
func (s *AuditService) CleanupOldLogs(ctx context.Context, days int) (int64, error) {
	return s.Repos.Audit.DeleteOldAuditLogs(ctx, days)
}
