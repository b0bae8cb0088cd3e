package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/permataindah/storefront-backend/pkg/config"
	"github.com/permataindah/storefront-backend/pkg/db/models"
	"github.com/permataindah/storefront-backend/pkg/enums"
	pkgerrors "github.com/permataindah/storefront-backend/pkg/errors"
	"github.com/permataindah/storefront-backend/pkg/midtrans"
	"github.com/permataindah/storefront-backend/pkg/types"
)

const testServerKey = "SB-test-server-key"

type stubGateway struct {
	createCalls []midtrans.TransactionRequest
	cancelCalls []string
	status      *midtrans.TransactionStatus
	createErr   error
	cancelErr   error
}

func (g *stubGateway) CreateTransaction(req midtrans.TransactionRequest) (*midtrans.TransactionToken, error) {
	g.createCalls = append(g.createCalls, req)
	if g.createErr != nil {
		return nil, g.createErr
	}
	return &midtrans.TransactionToken{Token: "snap-token", RedirectURL: "https://app.sandbox.midtrans.com/snap/v2/redirect"}, nil
}

func (g *stubGateway) CheckTransaction(orderID string) (*midtrans.TransactionStatus, error) {
	if g.status == nil {
		return &midtrans.TransactionStatus{OrderID: orderID, TransactionStatus: "pending"}, nil
	}
	return g.status, nil
}

func (g *stubGateway) CancelTransaction(orderID string) error {
	g.cancelCalls = append(g.cancelCalls, orderID)
	return g.cancelErr
}

func (g *stubGateway) ServerKey() string { return testServerKey }

type stubOrderRepo struct {
	orders        map[uuid.UUID]*models.Order
	statusUpdates map[uuid.UUID]enums.OrderStatus
}

func newStubOrderRepo(orders ...*models.Order) *stubOrderRepo {
	repo := &stubOrderRepo{
		orders:        map[uuid.UUID]*models.Order{},
		statusUpdates: map[uuid.UUID]enums.OrderStatus{},
	}
	for _, o := range orders {
		repo.orders[o.ID] = o
	}
	return repo
}

func (r *stubOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (r *stubOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error {
	if _, ok := r.orders[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.orders[id].Status = status
	r.statusUpdates[id] = status
	return nil
}

func pendingOrder(userID uuid.UUID) *models.Order {
	return &models.Order{
		ID:     uuid.New(),
		UserID: userID,
		Total:  3000,
		Status: enums.OrderStatusPending,
		Phone:  "081234567890",
		Address: types.ShippingAddress{
			Street:     "Jl. Melati No. 5",
			City:       "Bandung",
			Province:   "Jawa Barat",
			PostalCode: "40111",
			FullName:   "Siti Rahma",
			Phone:      "081234567890",
		},
		User: &models.User{ID: userID, Name: "Siti Rahma", Email: "siti@example.com"},
	}
}

func newService(t *testing.T, gateway *stubGateway, repo *stubOrderRepo) Service {
	t.Helper()

	svc, err := NewService(ServiceParams{
		Gateway:   gateway,
		OrderRepo: repo,
		Config:    config.MidtransConfig{ServerKey: testServerKey, ItemName: "Permata Indah Jewelry"},
	})
	require.NoError(t, err)
	return svc
}

func TestCreateTokenForPendingOrder(t *testing.T) {
	userID := uuid.New()
	order := pendingOrder(userID)
	gateway := &stubGateway{}
	svc := newService(t, gateway, newStubOrderRepo(order))

	resp, err := svc.CreateToken(context.Background(), userID, false, order.ID)
	require.NoError(t, err)

	assert.Equal(t, "snap-token", resp.Token)
	require.Len(t, gateway.createCalls, 1)
	call := gateway.createCalls[0]
	assert.Equal(t, order.ID.String(), call.OrderID)
	assert.Equal(t, int64(3000), call.GrossAmount)
	assert.Equal(t, "Siti Rahma", call.CustomerName)
	assert.Equal(t, "siti@example.com", call.CustomerEmail)
	assert.Equal(t, "Permata Indah Jewelry", call.ItemName)
}

func TestCreateTokenRejectsPaidOrder(t *testing.T) {
	userID := uuid.New()
	order := pendingOrder(userID)
	order.Status = enums.OrderStatusProcessing
	svc := newService(t, &stubGateway{}, newStubOrderRepo(order))

	_, err := svc.CreateToken(context.Background(), userID, false, order.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestCreateTokenHidesForeignOrder(t *testing.T) {
	order := pendingOrder(uuid.New())
	svc := newService(t, &stubGateway{}, newStubOrderRepo(order))

	_, err := svc.CreateToken(context.Background(), uuid.New(), false, order.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestCreateTokenGatewayFailure(t *testing.T) {
	userID := uuid.New()
	order := pendingOrder(userID)
	gateway := &stubGateway{createErr: errors.New("midtrans down")}
	svc := newService(t, gateway, newStubOrderRepo(order))

	_, err := svc.CreateToken(context.Background(), userID, false, order.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())
}

func signedPayload(order *models.Order, transactionStatus, fraudStatus string) NotificationPayload {
	payload := NotificationPayload{
		OrderID:           order.ID.String(),
		StatusCode:        "200",
		GrossAmount:       "3000.00",
		TransactionStatus: transactionStatus,
		FraudStatus:       fraudStatus,
	}
	payload.SignatureKey = midtrans.ComputeSignature(
		payload.OrderID, payload.StatusCode, payload.GrossAmount, testServerKey,
	)
	return payload
}

func TestHandleNotificationSettlement(t *testing.T) {
	order := pendingOrder(uuid.New())
	repo := newStubOrderRepo(order)
	svc := newService(t, &stubGateway{}, repo)

	result, err := svc.HandleNotification(context.Background(), signedPayload(order, "settlement", ""))
	require.NoError(t, err)

	assert.Equal(t, enums.OrderStatusProcessing, result.OrderStatus)
	assert.Equal(t, enums.OrderStatusProcessing, repo.statusUpdates[order.ID])
}

func TestHandleNotificationTamperedAmount(t *testing.T) {
	order := pendingOrder(uuid.New())
	repo := newStubOrderRepo(order)
	svc := newService(t, &stubGateway{}, repo)

	payload := signedPayload(order, "settlement", "")
	payload.GrossAmount = "1.00"

	_, err := svc.HandleNotification(context.Background(), payload)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeIntegrity, pkgerrors.As(err).Code())
	assert.Empty(t, repo.statusUpdates)
	assert.Equal(t, enums.OrderStatusPending, order.Status)
}

func TestHandleNotificationBadSignature(t *testing.T) {
	order := pendingOrder(uuid.New())
	repo := newStubOrderRepo(order)
	svc := newService(t, &stubGateway{}, repo)

	payload := signedPayload(order, "settlement", "")
	payload.SignatureKey = "deadbeef"

	_, err := svc.HandleNotification(context.Background(), payload)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeIntegrity, pkgerrors.As(err).Code())
	assert.Empty(t, repo.statusUpdates)
}

func TestHandleNotificationUnknownOrder(t *testing.T) {
	order := pendingOrder(uuid.New())
	svc := newService(t, &stubGateway{}, newStubOrderRepo())

	_, err := svc.HandleNotification(context.Background(), signedPayload(order, "settlement", ""))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestHandleNotificationStatusMapping(t *testing.T) {
	cases := []struct {
		transaction string
		fraud       string
		want        enums.OrderStatus
	}{
		{"capture", "accept", enums.OrderStatusProcessing},
		{"capture", "challenge", enums.OrderStatusPending},
		{"settlement", "", enums.OrderStatusProcessing},
		{"cancel", "", enums.OrderStatusCancelled},
		{"deny", "", enums.OrderStatusCancelled},
		{"expire", "", enums.OrderStatusCancelled},
		{"pending", "", enums.OrderStatusPending},
		{"refund", "", enums.OrderStatusPending},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, MapTransactionStatus(tc.transaction, tc.fraud),
			"transaction=%s fraud=%s", tc.transaction, tc.fraud)
	}
}

func TestStatusCombinesGatewayAndOrder(t *testing.T) {
	userID := uuid.New()
	order := pendingOrder(userID)
	gateway := &stubGateway{status: &midtrans.TransactionStatus{
		OrderID:           order.ID.String(),
		TransactionStatus: "settlement",
		PaymentType:       "qris",
	}}
	svc := newService(t, gateway, newStubOrderRepo(order))

	resp, err := svc.Status(context.Background(), userID, false, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "settlement", resp.TransactionStatus)
	assert.Equal(t, "qris", resp.PaymentType)
	assert.Equal(t, enums.OrderStatusPending, resp.OrderStatus)
}

func TestCancelPendingOrder(t *testing.T) {
	userID := uuid.New()
	order := pendingOrder(userID)
	gateway := &stubGateway{}
	repo := newStubOrderRepo(order)
	svc := newService(t, gateway, repo)

	result, err := svc.Cancel(context.Background(), userID, false, order.ID)
	require.NoError(t, err)

	assert.Equal(t, enums.OrderStatusCancelled, result.OrderStatus)
	assert.Equal(t, []string{order.ID.String()}, gateway.cancelCalls)
	assert.Equal(t, enums.OrderStatusCancelled, repo.statusUpdates[order.ID])
}

func TestCancelRejectsNonPending(t *testing.T) {
	userID := uuid.New()
	order := pendingOrder(userID)
	order.Status = enums.OrderStatusShipped
	svc := newService(t, &stubGateway{}, newStubOrderRepo(order))

	_, err := svc.Cancel(context.Background(), userID, false, order.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}
