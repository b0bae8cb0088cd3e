package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/permataindah/storefront-backend/pkg/db/models"
	"github.com/permataindah/storefront-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Role        enums.UserRole `json:"role"`
	Phone       *string        `json:"phone,omitempty"`
	Address     *AddressDTO    `json:"address,omitempty"`
	LastLoginAt *time.Time     `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// AddressDTO carries the saved shipping address parts of a profile.
type AddressDTO struct {
	Street     *string `json:"street,omitempty"`
	City       *string `json:"city,omitempty"`
	Province   *string `json:"province,omitempty"`
	PostalCode *string `json:"postalCode,omitempty"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Name         string
	Email        string
	PasswordHash string
	Role         enums.UserRole
	Phone        *string
}

// UpdateProfileDTO holds the columns the profile endpoint may overwrite.
// Nil fields are left untouched.
type UpdateProfileDTO struct {
	Name       *string
	Email      *string
	Phone      *string
	Street     *string
	City       *string
	Province   *string
	PostalCode *string
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	dto := &UserDTO{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Phone:       u.Phone,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}

	if u.AddressStreet != nil || u.AddressCity != nil || u.AddressProvince != nil || u.AddressPostalCode != nil {
		dto.Address = &AddressDTO{
			Street:     u.AddressStreet,
			City:       u.AddressCity,
			Province:   u.AddressProvince,
			PostalCode: u.AddressPostalCode,
		}
	}

	return dto
}

func (c CreateUserDTO) ToModel() *models.User {
	role := c.Role
	if !role.IsValid() {
		role = enums.UserRoleUser
	}

	return &models.User{
		ID:           uuid.New(),
		Name:         c.Name,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Role:         role,
		Active:       true,
		Phone:        c.Phone,
	}
}
