package midtrans

import (
	"errors"

	mt "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/permataindah/storefront-backend/pkg/config"
)

// TransactionRequest carries what the gateway needs to mint a Snap token.
type TransactionRequest struct {
	OrderID       string
	GrossAmount   int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	ItemName      string
}

// TransactionToken is the Snap token plus its hosted-checkout URL.
type TransactionToken struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirectUrl"`
}

// TransactionStatus is the subset of the gateway status payload we act on.
type TransactionStatus struct {
	OrderID           string `json:"orderId"`
	TransactionStatus string `json:"transactionStatus"`
	FraudStatus       string `json:"fraudStatus"`
	StatusCode        string `json:"statusCode"`
	GrossAmount       string `json:"grossAmount"`
	PaymentType       string `json:"paymentType"`
}

// Client talks to Midtrans through the official SDK. A zero ServerKey leaves
// the client disabled; calls then fail with a clear error instead of hitting
// the sandbox with empty credentials.
type Client struct {
	serverKey string
	snap      snap.Client
	core      coreapi.Client
}

// New builds a Midtrans client for the configured environment.
func New(cfg config.MidtransConfig) *Client {
	env := mt.Sandbox
	if cfg.Environment() == config.MidtransEnvProduction {
		env = mt.Production
	}

	c := &Client{serverKey: cfg.ServerKey}
	if cfg.ServerKey != "" {
		c.snap.New(cfg.ServerKey, env)
		c.core.New(cfg.ServerKey, env)
	}
	return c
}

// ServerKey exposes the configured key for webhook signature checks.
func (c *Client) ServerKey() string {
	return c.serverKey
}

// CreateTransaction mints a Snap token for the given order.
func (c *Client) CreateTransaction(req TransactionRequest) (*TransactionToken, error) {
	if c.serverKey == "" {
		return nil, errors.New("midtrans server key not configured")
	}

	snapReq := &snap.Request{
		TransactionDetails: mt.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: req.GrossAmount,
		},
		CustomerDetail: &mt.CustomerDetails{
			FName: req.CustomerName,
			Email: req.CustomerEmail,
			Phone: req.CustomerPhone,
		},
		Items: &[]mt.ItemDetails{
			{
				ID:    req.OrderID,
				Price: req.GrossAmount,
				Qty:   1,
				Name:  req.ItemName,
			},
		},
	}

	resp, mtErr := c.snap.CreateTransaction(snapReq)
	if mtErr != nil {
		return nil, mtErr
	}
	return &TransactionToken{Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

// CheckTransaction pulls the current transaction status for an order.
func (c *Client) CheckTransaction(orderID string) (*TransactionStatus, error) {
	if c.serverKey == "" {
		return nil, errors.New("midtrans server key not configured")
	}

	resp, mtErr := c.core.CheckTransaction(orderID)
	if mtErr != nil {
		return nil, mtErr
	}
	return &TransactionStatus{
		OrderID:           resp.OrderID,
		TransactionStatus: resp.TransactionStatus,
		FraudStatus:       resp.FraudStatus,
		StatusCode:        resp.StatusCode,
		GrossAmount:       resp.GrossAmount,
		PaymentType:       resp.PaymentType,
	}, nil
}

// CancelTransaction voids a pending transaction at the gateway.
func (c *Client) CancelTransaction(orderID string) error {
	if c.serverKey == "" {
		return errors.New("midtrans server key not configured")
	}

	if _, mtErr := c.core.CancelTransaction(orderID); mtErr != nil {
		return mtErr
	}
	return nil
}
