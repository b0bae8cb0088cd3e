package controllers

import (
	"net/http"

	"github.com/permataindah/storefront-backend/api/responses"
	"github.com/permataindah/storefront-backend/api/validators"
	"github.com/permataindah/storefront-backend/internal/storehours"
	pkgerrors "github.com/permataindah/storefront-backend/pkg/errors"
	"github.com/permataindah/storefront-backend/pkg/logger"
)

// GetStoreHours serves the public weekly opening schedule.
func GetStoreHours(svc storehours.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store hours service unavailable"))
			return
		}

		hours, err := svc.GetHours(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, hours)
	}
}

// AdminUpdateStoreHours overwrites the schedule for the submitted days.
func AdminUpdateStoreHours(svc storehours.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store hours service unavailable"))
			return
		}

		var body storehours.UpdateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		hours, err := svc.UpdateHours(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, hours)
	}
}
