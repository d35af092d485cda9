// Package orderrepo maps order aggregates to the orders table and implements the
// transactional order repository on top of GORM.
package orderrepo

import (
	"time"

	"momoadmin/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderDTO is the persisted form of an order. Timestamps are written explicitly
// from the transaction's server time, so GORM's automatic tracking is disabled.
type OrderDTO struct {
	ID          string                       `gorm:"primaryKey;size:64"`
	Customer    string                       `gorm:"size:255"`
	UserID      string                       `gorm:"size:128;not null;index"`
	Items       datatypes.JSONSlice[ItemDTO] `gorm:"not null"`
	Total       decimal.Decimal              `gorm:"type:numeric(12,2);not null"`
	Status      string                       `gorm:"size:32;not null;index"`
	CreatedAt   time.Time                    `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt   time.Time                    `gorm:"not null;autoUpdateTime:false"`
	DeliveredAt *time.Time
	Version     int64 `gorm:"not null;default:0"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one element of the items JSON column.
type ItemDTO struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

func fromDomain(o *order.Order) OrderDTO {
	items := make([]ItemDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, ItemDTO{Name: item.Name(), Quantity: item.Quantity()})
	}

	return OrderDTO{
		ID:          o.ID().String(),
		Customer:    o.Customer(),
		UserID:      o.UserID(),
		Items:       items,
		Total:       o.Total(),
		Status:      o.Status().String(),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
		DeliveredAt: o.DeliveredAt(),
		Version:     o.Version(),
	}
}

// ToDomain rebuilds an order aggregate from its row, re-checking every invariant.
func ToDomain(dto OrderDTO) (*order.Order, error) {
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, it := range dto.Items {
		item, itemErr := order.NewItem(it.Name, it.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.Snapshot{
		ID:          order.ID(dto.ID),
		Customer:    dto.Customer,
		UserID:      dto.UserID,
		Items:       items,
		Total:       dto.Total,
		Status:      status,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
		DeliveredAt: dto.DeliveredAt,
		Version:     dto.Version,
	})
}
