package products

import (
	"github.com/permataindah/storefront-backend/pkg/db/models"
	"github.com/permataindah/storefront-backend/pkg/enums"
	"github.com/permataindah/storefront-backend/pkg/pagination"
)

// CreateProductRequest is the admin payload for adding a catalog item.
type CreateProductRequest struct {
	Name        string                `json:"name" validate:"required,min=2,max=100"`
	Description string                `json:"description" validate:"required"`
	Price       int                   `json:"price" validate:"gte=0"`
	ImageURL    string                `json:"imageUrl" validate:"required,url"`
	Category    enums.ProductCategory `json:"category" validate:"required"`
	Featured    bool                  `json:"featured"`
	Stock       int                   `json:"stock" validate:"gte=0"`
}

// UpdateProductRequest overwrites only the provided fields.
type UpdateProductRequest struct {
	Name        *string                `json:"name" validate:"omitempty,min=2,max=100"`
	Description *string                `json:"description"`
	Price       *int                   `json:"price" validate:"omitempty,gte=0"`
	ImageURL    *string                `json:"imageUrl" validate:"omitempty,url"`
	Category    *enums.ProductCategory `json:"category"`
	Featured    *bool                  `json:"featured"`
	Stock       *int                   `json:"stock" validate:"omitempty,gte=0"`
}

// ListFilter narrows the catalog listing.
type ListFilter struct {
	Category *enums.ProductCategory
	Featured *bool
	Page     pagination.Params
}

// ListResult is one page of catalog items plus the cursor for the next page.
type ListResult struct {
	Items      []models.Product `json:"items"`
	NextCursor *string          `json:"nextCursor,omitempty"`
}
