package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taglinkbr/taglink-backend/api/responses"
	pettagsvc "github.com/taglinkbr/taglink-backend/internal/pettags"
	pkgerrors "github.com/taglinkbr/taglink-backend/pkg/errors"
	"github.com/taglinkbr/taglink-backend/pkg/logger"
)

// PublicPetTag serves the unauthenticated view behind a scanned QR code.
func PublicPetTag(svc pettagsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pet tag service unavailable"))
			return
		}

		qrCode := strings.TrimSpace(chi.URLParam(r, "qrCode"))
		if qrCode == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "qr code is required"))
			return
		}

		view, err := svc.PublicView(r.Context(), qrCode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}
