package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"

	pkgerrors "github.com/taglinkbr/taglink-backend/pkg/errors"
)

type memoryStore struct {
	snapshots map[string][]byte
	saves     int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{snapshots: map[string][]byte{}}
}

func (s *memoryStore) Load(ctx context.Context, userID string) ([]byte, error) {
	return s.snapshots[userID], nil
}

func (s *memoryStore) Save(ctx context.Context, userID string, snapshot []byte) error {
	s.saves++
	s.snapshots[userID] = snapshot
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, userID string) error {
	delete(s.snapshots, userID)
	return nil
}

func newTestCartService(t *testing.T, store SnapshotStore) Service {
	t.Helper()
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc
}

func TestAddMergesDuplicateProduct(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	svc := newTestCartService(t, store)
	userID := uuid.New()
	product := ProductRef{ProductID: uuid.New(), Name: "Pet Tag Classic", UnitPrice: 49.9}

	if _, err := svc.Add(context.Background(), userID, product); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cart, err := svc.Add(context.Background(), userID, product)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cart.Lines) != 1 {
		t.Fatalf("expected one line, got %d", len(cart.Lines))
	}
	if cart.Lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", cart.Lines[0].Quantity)
	}
	if cart.Total != 99.8 {
		t.Fatalf("expected total 99.80, got %v", cart.Total)
	}
	if store.saves != 2 {
		t.Fatalf("every mutation must persist, got %d saves", store.saves)
	}
}

func TestUpdateQuantityRemovesLineAtZero(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	svc := newTestCartService(t, store)
	userID := uuid.New()
	product := ProductRef{ProductID: uuid.New(), Name: "Business Display", UnitPrice: 120}

	if _, err := svc.Add(context.Background(), userID, product); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cart, err := svc.UpdateQuantity(context.Background(), userID, product.ProductID, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cart.Lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(cart.Lines))
	}
	if cart.Total != 0 || cart.Count != 0 {
		t.Fatalf("expected zeroed totals, got %+v", cart)
	}
}

func TestUpdateQuantityUnknownProduct(t *testing.T) {
	t.Parallel()

	svc := newTestCartService(t, newMemoryStore())

	_, err := svc.UpdateQuantity(context.Background(), uuid.New(), uuid.New(), 1)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMalformedSnapshotResetsToEmpty(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	userID := uuid.New()
	store.snapshots[userID.String()] = []byte("{not json")
	svc := newTestCartService(t, store)

	cart, err := svc.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("expected malformed snapshot to fail open, got %v", err)
	}
	if len(cart.Lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(cart.Lines))
	}
}

func TestRemoveDropsLineRegardlessOfQuantity(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	svc := newTestCartService(t, store)
	userID := uuid.New()
	product := ProductRef{ProductID: uuid.New(), Name: "Pet Tag Classic", UnitPrice: 49.9}

	for i := 0; i < 3; i++ {
		if _, err := svc.Add(context.Background(), userID, product); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	cart, err := svc.Remove(context.Background(), userID, product.ProductID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(cart.Lines))
	}
}

func TestClearDeletesSnapshot(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	svc := newTestCartService(t, store)
	userID := uuid.New()

	if _, err := svc.Add(context.Background(), userID, ProductRef{ProductID: uuid.New(), Name: "Tag", UnitPrice: 10}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Clear(context.Background(), userID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.snapshots[userID.String()]; ok {
		t.Fatal("expected snapshot removed")
	}
}

func TestGetRequiresAuth(t *testing.T) {
	t.Parallel()

	svc := newTestCartService(t, newMemoryStore())

	_, err := svc.Get(context.Background(), uuid.Nil)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
