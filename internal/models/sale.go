package models

import "time"

// Sale is the append-only record written when an order completes.
// At most one sale exists per order; the transition gate in the order
// service enforces that, not this table.
type Sale struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	OrderID       uint       `json:"order_id" gorm:"index;not null"`
	CustomerName  string     `json:"customer_name" gorm:"not null"`
	CustomerPhone string     `json:"customer_phone"`
	Items         []SaleItem `json:"items" gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	Total         float64    `json:"total" gorm:"not null"`
	PaymentMethod string     `json:"payment_method"`
	CreatedAt     time.Time  `json:"created_at"`
}

type SaleItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	SaleID    uint    `json:"sale_id" gorm:"index"`
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name" gorm:"not null"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}
