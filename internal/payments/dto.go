package payments

import (
	"github.com/google/uuid"

	"github.com/permataindah/storefront-backend/pkg/enums"
)

// CreateTokenRequest asks for a hosted-checkout token for an order.
type CreateTokenRequest struct {
	OrderID uuid.UUID `json:"orderId" validate:"required"`
}

// TokenResponse is returned to the storefront to open the payment popup.
type TokenResponse struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirectUrl"`
}

// NotificationPayload is the webhook body Midtrans posts after every
// transaction event. Field names follow the gateway's wire format.
type NotificationPayload struct {
	OrderID           string `json:"order_id" validate:"required"`
	StatusCode        string `json:"status_code" validate:"required"`
	GrossAmount       string `json:"gross_amount" validate:"required"`
	SignatureKey      string `json:"signature_key" validate:"required"`
	TransactionStatus string `json:"transaction_status" validate:"required"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
}

// NotificationResult reports what the webhook did to the order.
type NotificationResult struct {
	OrderID     uuid.UUID         `json:"orderId"`
	OrderStatus enums.OrderStatus `json:"orderStatus"`
}

// StatusResponse combines the gateway view with the local order status.
type StatusResponse struct {
	OrderID           uuid.UUID         `json:"orderId"`
	OrderStatus       enums.OrderStatus `json:"orderStatus"`
	TransactionStatus string            `json:"transactionStatus"`
	FraudStatus       string            `json:"fraudStatus,omitempty"`
	PaymentType       string            `json:"paymentType,omitempty"`
}
