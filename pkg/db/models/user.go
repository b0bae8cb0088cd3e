package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/permataindah/storefront-backend/pkg/enums"
)

// User represents the canonical identity entity. IDs are generated in Go
// before insert so the same model works against Postgres and the sqlite
// databases used by tests.
type User struct {
	ID                uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name              string         `gorm:"column:name;not null" json:"name"`
	Email             string         `gorm:"column:email;type:text;not null;uniqueIndex" json:"email"`
	PasswordHash      string         `gorm:"column:password_hash;not null" json:"-"`
	Role              enums.UserRole `gorm:"column:role;type:text;not null;default:'user'" json:"role"`
	Active            bool           `gorm:"column:active;not null;default:true" json:"active"`
	LastLoginAt       *time.Time     `gorm:"column:last_login_at" json:"lastLoginAt,omitempty"`
	Phone             *string        `gorm:"column:phone" json:"phone,omitempty"`
	AddressStreet     *string        `gorm:"column:address_street" json:"addressStreet,omitempty"`
	AddressCity       *string        `gorm:"column:address_city" json:"addressCity,omitempty"`
	AddressProvince   *string        `gorm:"column:address_province" json:"addressProvince,omitempty"`
	AddressPostalCode *string        `gorm:"column:address_postal_code" json:"addressPostalCode,omitempty"`
	CreatedAt         time.Time      `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
