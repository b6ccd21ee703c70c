package audit

import (
	"context"

	"github.com/google/uuid"

	"github.com/shelterhq/backend/internal/domain/audit"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// AuditService exposes read access to the append-only audit log
type AuditService struct {
	repo audit.Repository
}

// NewAuditService creates a new AuditService
func NewAuditService(repo audit.Repository) *AuditService {
	return &AuditService{repo: repo}
}

// List retrieves audit entries for an organization, newest first
func (s *AuditService) List(ctx context.Context, organizationID uuid.UUID, filter EntryListFilter) ([]EntryResponse, int64, error) {
	domainFilter := filter.toDomainFilter()

	entries, err := s.repo.FindForOrg(ctx, organizationID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountForOrg(ctx, organizationID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToEntryResponses(entries), total, nil
}

// ListForEntity retrieves the audit trail of a single entity, newest first.
// The trail reconstructs prior state through the Before snapshots.
func (s *AuditService) ListForEntity(ctx context.Context, organizationID uuid.UUID, entityType string, entityID uuid.UUID, filter EntryListFilter) ([]EntryResponse, error) {
	entries, err := s.repo.FindByEntity(ctx, organizationID, entityType, entityID, filter.toDomainFilter())
	if err != nil {
		return nil, err
	}
	return ToEntryResponses(entries), nil
}

func (f EntryListFilter) toDomainFilter() shared.Filter {
	domainFilter := shared.DefaultFilter()
	if f.Page > 0 {
		domainFilter.Page = f.Page
	}
	if f.PageSize > 0 {
		domainFilter.PageSize = f.PageSize
	}
	domainFilter.OrderBy = "recorded_at"
	if f.Action != nil {
		domainFilter.Filters["action"] = string(*f.Action)
	}
	if f.EntityType != "" {
		domainFilter.Filters["entity_type"] = f.EntityType
	}
	if f.ActorID != nil {
		domainFilter.Filters["actor_id"] = *f.ActorID
	}
	if f.From != nil {
		domainFilter.Filters["from"] = *f.From
	}
	if f.To != nil {
		domainFilter.Filters["to"] = *f.To
	}
	return domainFilter
}
