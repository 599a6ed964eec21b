package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	pkgerrors "github.com/taglinkbr/taglink-backend/pkg/errors"
)

// Line is one cart entry; carts hold at most one line per distinct product.
type Line struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unit_price"`
	Quantity  int       `json:"quantity"`
}

// Cart is the materialized view returned to callers.
type Cart struct {
	Lines []Line  `json:"lines"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// ProductRef identifies the product being added.
type ProductRef struct {
	ProductID uuid.UUID
	Name      string
	UnitPrice float64
}

// Service manages per-user carts. Every mutation persists the full snapshot
// synchronously after the in-memory update.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*Cart, error)
	Add(ctx context.Context, userID uuid.UUID, product ProductRef) (*Cart, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, productID uuid.UUID, delta int) (*Cart, error)
	Remove(ctx context.Context, userID uuid.UUID, productID uuid.UUID) (*Cart, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	store SnapshotStore
}

// NewService builds a cart service backed by the provided snapshot store.
func NewService(store SnapshotStore) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart snapshot store required")
	}
	return &service{store: store}, nil
}

// load rehydrates the user's lines. Malformed snapshots are discarded and the
// cart resets to empty rather than failing the caller.
func (s *service) load(ctx context.Context, userID uuid.UUID) ([]Line, error) {
	raw, err := s.store.Load(ctx, userID.String())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var lines []Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, nil
	}
	return lines, nil
}

func (s *service) persist(ctx context.Context, userID uuid.UUID, lines []Line) error {
	snapshot, err := json.Marshal(lines)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.store.Save(ctx, userID.String(), snapshot); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return nil
}

func materialize(lines []Line) *Cart {
	total := decimal.Zero
	count := 0
	for _, line := range lines {
		total = total.Add(decimal.NewFromFloat(line.UnitPrice).Mul(decimal.NewFromInt(int64(line.Quantity))))
		count += line.Quantity
	}
	amount, _ := total.Round(2).Float64()
	if lines == nil {
		lines = []Line{}
	}
	return &Cart{Lines: lines, Total: amount, Count: count}
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	lines, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return materialize(lines), nil
}

func (s *service) Add(ctx context.Context, userID uuid.UUID, product ProductRef) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if product.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if strings.TrimSpace(product.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if product.UnitPrice < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit price must be non-negative")
	}

	lines, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range lines {
		if lines[i].ProductID == product.ProductID {
			lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, Line{
			ProductID: product.ProductID,
			Name:      product.Name,
			UnitPrice: product.UnitPrice,
			Quantity:  1,
		})
	}

	if err := s.persist(ctx, userID, lines); err != nil {
		return nil, err
	}
	return materialize(lines), nil
}

func (s *service) UpdateQuantity(ctx context.Context, userID uuid.UUID, productID uuid.UUID, delta int) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	lines, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range lines {
		if lines[i].ProductID != productID {
			continue
		}
		lines[i].Quantity += delta
		if lines[i].Quantity <= 0 {
			lines = append(lines[:i], lines[i+1:]...)
		}
		if err := s.persist(ctx, userID, lines); err != nil {
			return nil, err
		}
		return materialize(lines), nil
	}

	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not in cart")
}

func (s *service) Remove(ctx context.Context, userID uuid.UUID, productID uuid.UUID) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	lines, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range lines {
		if lines[i].ProductID == productID {
			lines = append(lines[:i], lines[i+1:]...)
			if err := s.persist(ctx, userID, lines); err != nil {
				return nil, err
			}
			return materialize(lines), nil
		}
	}

	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not in cart")
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if err := s.store.Delete(ctx, userID.String()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}
