package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ItemSnapshotList stores an order's item snapshots as a JSON text column,
// so an archived order stays a self-contained document after the live row
// and its item rows are gone.
type ItemSnapshotList []OrderItem

func (l ItemSnapshotList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *ItemSnapshotList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported item snapshot type %T", src)
	}
}

// ArchivedOrder is the history copy of a terminal order moved out of the
// live store by the sweep. OriginalID keeps the id the order had while live.
type ArchivedOrder struct {
	ID              uint             `json:"id" gorm:"primaryKey"`
	OriginalID      uint             `json:"original_id" gorm:"index;not null"`
	OwnerUserID     *uint            `json:"user_id"`
	CustomerName    string           `json:"customer_name"`
	CustomerPhone   string           `json:"customer_phone"`
	CustomerEmail   string           `json:"customer_email"`
	DeliveryAddress string           `json:"delivery_address"`
	Items           ItemSnapshotList `json:"items" gorm:"type:text"`
	Total           float64          `json:"total"`
	Status          OrderStatus      `json:"status" gorm:"type:varchar(32)"`
	PaymentMethod   string           `json:"payment_method"`
	OrderedAt       time.Time        `json:"ordered_at"`
	ArchivedAt      time.Time        `json:"archived_at" gorm:"index"`
}

// NewArchivedOrder snapshots a live order for the history store.
func NewArchivedOrder(o *Order, now time.Time) *ArchivedOrder {
	return &ArchivedOrder{
		OriginalID:      o.ID,
		OwnerUserID:     o.OwnerUserID,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerEmail:   o.CustomerEmail,
		DeliveryAddress: o.DeliveryAddress,
		Items:           ItemSnapshotList(o.Items),
		Total:           o.Total,
		Status:          o.Status,
		PaymentMethod:   o.PaymentMethod,
		OrderedAt:       o.CreatedAt,
		ArchivedAt:      now,
	}
}
