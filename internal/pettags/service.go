package pettags

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/taglinkbr/taglink-backend/pkg/db/models"
	pkgerrors "github.com/taglinkbr/taglink-backend/pkg/errors"
	"gorm.io/gorm"
)

// PublicView is the reduced field set returned to a scanning finder. Owner
// contact fields stay null unless the tag is in lost mode; the gate lives
// here, never in the client.
type PublicView struct {
	ID        uuid.UUID `json:"id"`
	QRCode    string    `json:"qr_code"`
	PetName   *string   `json:"pet_name"`
	Breed     *string   `json:"breed"`
	PhotoURL  *string   `json:"photo_url"`
	LostMode  bool      `json:"lost_mode"`
	OwnerName *string   `json:"owner_name"`
	Phone     *string   `json:"phone"`
	Whatsapp  *string   `json:"whatsapp"`
	Address   *string   `json:"address"`
}

// Repository exposes pet tag reads.
type Repository interface {
	FindByQRCode(ctx context.Context, qrCode string) (*models.PetTag, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a pet tag repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByQRCode(ctx context.Context, qrCode string) (*models.PetTag, error) {
	var tag models.PetTag
	err := r.db.WithContext(ctx).
		Where("qr_code = ?", strings.TrimSpace(qrCode)).
		First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// Service serves the public scan surface.
type Service interface {
	PublicView(ctx context.Context, qrCode string) (*PublicView, error)
}

type service struct {
	repo Repository
}

// NewService builds a pet tag service backed by the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("pet tag repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) PublicView(ctx context.Context, qrCode string) (*PublicView, error) {
	if strings.TrimSpace(qrCode) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "qr code is required")
	}

	tag, err := s.repo.FindByQRCode(ctx, qrCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "pet tag not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pet tag")
	}

	view := &PublicView{
		ID:       tag.ID,
		QRCode:   tag.QRCode,
		PetName:  tag.PetName,
		Breed:    tag.Breed,
		PhotoURL: tag.PhotoURL,
		LostMode: tag.LostMode,
	}
	if tag.LostMode {
		view.OwnerName = tag.OwnerName
		view.Phone = tag.Phone
		view.Whatsapp = tag.Whatsapp
		view.Address = tag.Address
	}
	return view, nil
}
