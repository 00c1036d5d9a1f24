package models

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// cancelledAliases is the single definition of the cancelled terminal set.
// Rows written by the previous backend use the French spelling.
var cancelledAliases = []string{string(OrderCancelled), "annulee"}

// CancelledStatuses returns every status value treated as cancelled.
func CancelledStatuses() []string {
	out := make([]string, len(cancelledAliases))
	copy(out, cancelledAliases)
	return out
}

func (s OrderStatus) IsCancelled() bool {
	for _, c := range cancelledAliases {
		if string(s) == c {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is permitted from s.
// Admin-defined intermediate statuses are non-terminal.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderCompleted || s.IsCancelled()
}

type Order struct {
	ID              uint        `json:"id" gorm:"primaryKey"`
	OwnerUserID     *uint       `json:"user_id" gorm:"index"`
	CustomerName    string      `json:"customer_name" gorm:"not null"`
	CustomerPhone   string      `json:"customer_phone" gorm:"not null"`
	CustomerEmail   string      `json:"customer_email"`
	DeliveryAddress string      `json:"delivery_address" gorm:"not null"`
	Items           []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Total           float64     `json:"total" gorm:"not null"`
	Status          OrderStatus `json:"status" gorm:"type:varchar(32);default:'pending';index"`
	PaymentMethod   string      `json:"payment_method"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at" gorm:"index"`
}
