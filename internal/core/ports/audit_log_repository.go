package ports

import (
	"context"

	"momoadmin/internal/core/domain/model/audit"
)

// AuditLogRepository is append-only: entries are never updated or deleted.
type AuditLogRepository interface {
	Append(ctx context.Context, entry audit.Entry) error
}
