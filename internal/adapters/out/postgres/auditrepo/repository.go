package auditrepo

import (
	"context"

	"momoadmin/internal/core/domain/model/audit"

	"gorm.io/gorm"
)

// GormAuditLogRepository implements ports.AuditLogRepository using GORM.
type GormAuditLogRepository struct {
	db *gorm.DB
}

func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Append inserts the entry. Entries are never updated.
func (r *GormAuditLogRepository) Append(ctx context.Context, entry audit.Entry) error {
	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}
