package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ministore-next/internal/models"

	"github.com/shopspring/decimal"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(NewMemoryStore(time.Hour), "test_session", time.Hour, false)
}

func TestUpdateCreatesMissingSession(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	err := m.Update(ctx, "sid-1", func(d *Data) error {
		d.UserID = 9
		return nil
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	var got uint
	if err := m.View(ctx, "sid-1", func(d *Data) { got = d.UserID }); err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if got != 9 {
		t.Fatalf("user id want 9 got %d", got)
	}
}

func TestUpdateErrorSkipsSave(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	if err := m.Update(ctx, "sid-1", func(d *Data) error {
		d.Cart.Add(models.ProductSnapshot{ProductID: 1, UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(10))}, 1)
		return nil
	}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	wantErr := context.Canceled // any sentinel works here
	err := m.Update(ctx, "sid-1", func(d *Data) error {
		d.Cart.Clear()
		return wantErr
	})
	if err != wantErr {
		t.Fatalf("expected fn error back, got %v", err)
	}

	var lines int
	if err := m.View(ctx, "sid-1", func(d *Data) { lines = d.Cart.Len() }); err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if lines != 1 {
		t.Fatalf("failed update must not persist, lines want 1 got %d", lines)
	}
}

func TestUpdateSerializesPerSession(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	snapshot := models.ProductSnapshot{ProductID: 7, UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(5))}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Update(ctx, "sid-1", func(d *Data) error {
				d.Cart.Add(snapshot, 1)
				return nil
			})
		}()
	}
	wg.Wait()

	var quantity int
	if err := m.View(ctx, "sid-1", func(d *Data) {
		if item, ok := d.Cart.Get(7); ok {
			quantity = item.Quantity
		}
	}); err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if quantity != 50 {
		t.Fatalf("concurrent adds lost updates: quantity want 50 got %d", quantity)
	}
}

func TestFlashIsOneShot(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	if err := m.Flash(ctx, "sid-1", "Product added to cart!"); err != nil {
		t.Fatalf("flash failed: %v", err)
	}

	first, err := m.TakeFlash(ctx, "sid-1")
	if err != nil {
		t.Fatalf("take flash failed: %v", err)
	}
	if first != "Product added to cart!" {
		t.Fatalf("flash want message got %q", first)
	}

	second, err := m.TakeFlash(ctx, "sid-1")
	if err != nil {
		t.Fatalf("take flash failed: %v", err)
	}
	if second != "" {
		t.Fatalf("flash must clear after one take, got %q", second)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	ctx := context.Background()

	if err := store.Set(ctx, "sid-1", &Data{UserID: 1}); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	_, found, err := store.Get(ctx, "sid-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if found {
		t.Fatalf("expired session should not be returned")
	}
}

func TestMemoryStoreCopiesCart(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	data := &Data{}
	data.Cart.Add(models.ProductSnapshot{ProductID: 1, UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(10))}, 2)
	if err := store.Set(ctx, "sid-1", data); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	// Mutating what Get returned must not leak back into the store.
	loaded, _, err := store.Get(ctx, "sid-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	loaded.Cart.Clear()

	reloaded, _, err := store.Get(ctx, "sid-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if reloaded.Cart.Len() != 1 {
		t.Fatalf("store data mutated through returned copy")
	}
}

func TestDestroyRemovesSession(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	if err := m.Update(ctx, "sid-1", func(d *Data) error { d.UserID = 3; return nil }); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if err := m.Destroy(ctx, "sid-1"); err != nil {
		t.Fatalf("destroy failed: %v", err)
	}

	var loggedIn bool
	if err := m.View(ctx, "sid-1", func(d *Data) { loggedIn = d.LoggedIn() }); err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if loggedIn {
		t.Fatalf("destroyed session should read as empty")
	}
}
