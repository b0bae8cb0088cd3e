package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/permataindah/storefront-backend/pkg/enums"
)

// Product represents a catalog listing. Price is a plain integer amount in
// rupiah. Stock is only ever decremented by the order placement transaction.
type Product struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name        string                `gorm:"column:name;not null" json:"name"`
	Description string                `gorm:"column:description;type:text;not null" json:"description"`
	Price       int                   `gorm:"column:price;not null" json:"price"`
	ImageURL    string                `gorm:"column:image_url;not null" json:"imageUrl"`
	Category    enums.ProductCategory `gorm:"column:category;type:text;not null;index" json:"category"`
	Featured    bool                  `gorm:"column:featured;not null;default:false;index" json:"featured"`
	Stock       int                   `gorm:"column:stock;not null;default:0;check:stock >= 0" json:"stock"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
