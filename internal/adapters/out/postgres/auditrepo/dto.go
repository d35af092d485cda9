// Package auditrepo persists the append-only audit log.
package auditrepo

import (
	"time"

	"momoadmin/internal/core/domain/model/audit"
	"momoadmin/internal/core/domain/model/kernel"
	"momoadmin/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// AuditLogDTO is one row of audit_logs.
type AuditLogDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Action         string    `gorm:"size:64;not null"`
	OrderID        string    `gorm:"size:64;not null;index:idx_audit_logs_order_time,priority:1"`
	PreviousStatus string    `gorm:"size:32;not null"`
	NewStatus      string    `gorm:"size:32;not null"`
	UpdatedBy      string    `gorm:"size:128;not null"`
	Timestamp      time.Time `gorm:"not null;index:idx_audit_logs_order_time,priority:2"`
	// Seq orders entries that share a timestamp by insertion.
	Seq int64 `gorm:"autoIncrement;not null"`
}

func (AuditLogDTO) TableName() string {
	return "audit_logs"
}

func fromDomain(e audit.Entry) AuditLogDTO {
	return AuditLogDTO{
		ID:             e.ID().Bytes(),
		Action:         e.Action(),
		OrderID:        e.OrderID().String(),
		PreviousStatus: e.PreviousStatus().String(),
		NewStatus:      e.NewStatus().String(),
		UpdatedBy:      e.UpdatedBy(),
		Timestamp:      e.Timestamp(),
	}
}

// ToDomain rebuilds an audit entry from its row.
func ToDomain(dto AuditLogDTO) (audit.Entry, error) {
	id, err := kernel.UUIDFromString(dto.ID.String())
	if err != nil {
		return audit.Entry{}, err
	}
	previous, err := order.ParseStatus(dto.PreviousStatus)
	if err != nil {
		return audit.Entry{}, err
	}
	next, err := order.ParseStatus(dto.NewStatus)
	if err != nil {
		return audit.Entry{}, err
	}

	return audit.RestoreEntry(id, dto.Action, order.ID(dto.OrderID), previous, next, dto.UpdatedBy, dto.Timestamp)
}
