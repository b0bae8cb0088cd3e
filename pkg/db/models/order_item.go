package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem snapshots the product price at purchase time. Subtotal is always
// Price * Quantity; later product price edits never touch existing items.
type OrderItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"column:order_id;type:uuid;not null;index" json:"orderId"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null" json:"productId"`
	Quantity  int       `gorm:"column:quantity;not null" json:"quantity"`
	Price     int       `gorm:"column:price;not null" json:"price"`
	Subtotal  int       `gorm:"column:subtotal;not null" json:"subtotal"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
