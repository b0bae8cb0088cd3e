package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/permataindah/storefront-backend/pkg/enums"
	"github.com/permataindah/storefront-backend/pkg/types"
)

// Order is a purchase record. It is created atomically with its items and is
// never deleted; only the status field mutates afterwards.
type Order struct {
	ID        uuid.UUID             `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID             `gorm:"column:user_id;type:uuid;not null;index" json:"userId"`
	Total     int                   `gorm:"column:total;not null" json:"total"`
	Status    enums.OrderStatus     `gorm:"column:status;type:text;not null;default:'pending';index" json:"status"`
	Address   types.ShippingAddress `gorm:"column:address;type:text" json:"address"`
	Phone     string                `gorm:"column:phone;not null" json:"phone"`
	Notes     *string               `gorm:"column:notes" json:"notes,omitempty"`
	Items     []OrderItem           `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	User      *User                 `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
