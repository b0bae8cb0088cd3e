package orders

import (
	"github.com/google/uuid"

	"github.com/permataindah/storefront-backend/pkg/db/models"
	"github.com/permataindah/storefront-backend/pkg/enums"
	"github.com/permataindah/storefront-backend/pkg/pagination"
	"github.com/permataindah/storefront-backend/pkg/types"
)

// OrderLineInput is one cart line submitted at checkout.
type OrderLineInput struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

// PlaceOrderRequest is the checkout payload.
type PlaceOrderRequest struct {
	Items   []OrderLineInput      `json:"items" validate:"required,min=1,dive"`
	Address types.ShippingAddress `json:"address" validate:"required"`
	Notes   *string               `json:"notes"`
}

// UpdateStatusRequest carries the admin status overwrite.
type UpdateStatusRequest struct {
	Status enums.OrderStatus `json:"status" validate:"required"`
}

// ListFilter narrows the admin order listing.
type ListFilter struct {
	Status *enums.OrderStatus
	Page   pagination.Params
}

// ListResult is one page of orders plus the cursor for the next page.
type ListResult struct {
	Items      []models.Order `json:"items"`
	NextCursor *string        `json:"nextCursor,omitempty"`
}
