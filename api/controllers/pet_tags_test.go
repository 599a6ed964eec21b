package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	pettagsvc "github.com/taglinkbr/taglink-backend/internal/pettags"
	pkgerrors "github.com/taglinkbr/taglink-backend/pkg/errors"
	"github.com/taglinkbr/taglink-backend/pkg/types"
)

type stubPetTagService struct {
	view *pettagsvc.PublicView
	err  error
}

func (s *stubPetTagService) PublicView(ctx context.Context, qrCode string) (*pettagsvc.PublicView, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.view, nil
}

func petTagRequest(qrCode string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/public/pet-tags/"+qrCode, nil)
	rc := chi.NewRouteContext()
	rc.URLParams.Add("qrCode", qrCode)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
}

func TestPublicPetTagReturnsView(t *testing.T) {
	t.Parallel()

	name := "Rex"
	svc := &stubPetTagService{view: &pettagsvc.PublicView{
		ID:      uuid.New(),
		QRCode:  "QR-PET-1",
		PetName: &name,
	}}

	rec := httptest.NewRecorder()
	PublicPetTag(svc, nil).ServeHTTP(rec, petTagRequest("QR-PET-1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Data pettagsvc.PublicView `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Data.QRCode != "QR-PET-1" {
		t.Fatalf("unexpected qr code %q", body.Data.QRCode)
	}
	if body.Data.OwnerName != nil {
		t.Fatal("owner contact must stay hidden outside lost mode")
	}
}

func TestPublicPetTagNotFound(t *testing.T) {
	t.Parallel()

	svc := &stubPetTagService{err: pkgerrors.New(pkgerrors.CodeNotFound, "pet tag not found")}

	rec := httptest.NewRecorder()
	PublicPetTag(svc, nil).ServeHTTP(rec, petTagRequest("MISSING"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var body types.ErrorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if body.Error.Message != "pet tag not found" {
		t.Fatalf("unexpected message %q", body.Error.Message)
	}
}
