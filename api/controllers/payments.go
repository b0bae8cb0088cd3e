package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/permataindah/storefront-backend/api/middleware"
	"github.com/permataindah/storefront-backend/api/responses"
	"github.com/permataindah/storefront-backend/api/validators"
	"github.com/permataindah/storefront-backend/internal/payments"
	pkgerrors "github.com/permataindah/storefront-backend/pkg/errors"
	"github.com/permataindah/storefront-backend/pkg/logger"
)

// CreatePaymentToken starts a Snap transaction for a pending order.
func CreatePaymentToken(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		var body payments.CreateTokenRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		token, err := svc.CreateToken(ctx, middleware.UserIDFromContext(ctx), middleware.IsAdmin(ctx), body.OrderID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, token)
	}
}

// PaymentNotification receives Midtrans webhook callbacks. It is unauthenticated;
// trust comes from the SHA-512 signature inside the payload. The decoder is
// deliberately lenient because Midtrans sends many fields beyond the ones we read.
func PaymentNotification(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		var payload payments.NotificationPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid notification body"))
			return
		}

		result, err := svc.HandleNotification(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// PaymentStatus returns the gateway and local status for an order.
func PaymentStatus(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		orderID, err := uuidURLParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		status, err := svc.Status(ctx, middleware.UserIDFromContext(ctx), middleware.IsAdmin(ctx), orderID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, status)
	}
}

// CancelPayment voids the gateway transaction and cancels the pending order.
func CancelPayment(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		orderID, err := uuidURLParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		result, err := svc.Cancel(ctx, middleware.UserIDFromContext(ctx), middleware.IsAdmin(ctx), orderID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
