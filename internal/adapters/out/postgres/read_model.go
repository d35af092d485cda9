package postgres

import (
	"context"
	"errors"
	"strings"

	"momoadmin/internal/adapters/out/postgres/auditrepo"
	"momoadmin/internal/adapters/out/postgres/orderrepo"
	"momoadmin/internal/core/domain/model/audit"
	"momoadmin/internal/core/domain/model/order"
	"momoadmin/internal/core/ports"
	"momoadmin/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderReadModel answers admin queries outside any unit of work.
type GormOrderReadModel struct {
	db *gorm.DB
}

var _ ports.OrderReadModel = (*GormOrderReadModel)(nil)

func NewGormOrderReadModel(db *gorm.DB) *GormOrderReadModel {
	return &GormOrderReadModel{db: db}
}

// Migrate creates or updates the orders and audit_logs tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&orderrepo.OrderDTO{}, &auditrepo.AuditLogDTO{})
}

func (m *GormOrderReadModel) ListOrders(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	q := m.db.WithContext(ctx).Model(&orderrepo.OrderDTO{})

	if filter.Status != order.Unknown {
		q = q.Where("status = ?", filter.Status.String())
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(search) + "%"
		q = q.Where("(id ILIKE ? OR customer ILIKE ?)", pattern, pattern)
	}

	var dtos []orderrepo.OrderDTO
	if err := q.Order("created_at DESC, id ASC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := orderrepo.ToDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (m *GormOrderReadModel) GetOrder(ctx context.Context, id order.ID) (*order.Order, error) {
	var dto orderrepo.OrderDTO
	if err := m.db.WithContext(ctx).First(&dto, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}
	return orderrepo.ToDomain(dto)
}

func (m *GormOrderReadModel) ListAuditEntries(ctx context.Context, id order.ID) ([]audit.Entry, error) {
	var dtos []auditrepo.AuditLogDTO
	err := m.db.WithContext(ctx).
		Where("order_id = ?", id.String()).
		Order(`"timestamp" ASC, seq ASC`).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]audit.Entry, 0, len(dtos))
	for _, dto := range dtos {
		e, convErr := auditrepo.ToDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (m *GormOrderReadModel) CountByStatus(ctx context.Context) (map[order.Status]int, error) {
	var rows []struct {
		Status string
		Count  int
	}
	err := m.db.WithContext(ctx).
		Model(&orderrepo.OrderDTO{}).
		Select("status, count(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[order.Status]int, len(rows))
	for _, row := range rows {
		status, parseErr := order.ParseStatus(row.Status)
		if parseErr != nil {
			return nil, parseErr
		}
		counts[status] = row.Count
	}
	return counts, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
