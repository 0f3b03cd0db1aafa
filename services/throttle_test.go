package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"backend/repository"
)

func TestThrottleDeniesWhileActiveOrderInWindow(t *testing.T) {
	env := newOrderTestEnv(t)
	throttle := NewThrottle(env.orderRepo)

	rows := []repository.OrderItemRow{{MenuItemID: env.espresso.ID, Quantity: 1, PriceCents: 2500}}
	if _, err := env.orderRepo.CreateWithItems(env.tableThree.ID, 15, 2*time.Minute, rows); err != nil {
		t.Fatalf("CreateWithItems: %v", err)
	}

	ok, err := throttle.MaySubmit(env.tableThree.ID, 2*time.Minute)
	if err != nil {
		t.Fatalf("MaySubmit: %v", err)
	}
	if ok {
		t.Fatalf("expected denial while a pending order sits in the window")
	}
}

func TestThrottleAllowsAfterWindowPasses(t *testing.T) {
	env := newOrderTestEnv(t)
	throttle := NewThrottle(env.orderRepo)

	rows := []repository.OrderItemRow{{MenuItemID: env.espresso.ID, Quantity: 1, PriceCents: 2500}}
	if _, err := env.orderRepo.CreateWithItems(env.tableThree.ID, 15, 10*time.Millisecond, rows); err != nil {
		t.Fatalf("CreateWithItems: %v", err)
	}

	time.Sleep(30 * time.Millisecond)

	ok, err := throttle.MaySubmit(env.tableThree.ID, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("MaySubmit: %v", err)
	}
	if !ok {
		t.Fatalf("expected allow once the window has passed")
	}
}

func TestThrottleCacheDeniesWithoutStorage(t *testing.T) {
	env := newOrderTestEnv(t)
	throttle := NewThrottle(env.orderRepo)

	// No order rows exist; only the cache knows about this acceptance.
	throttle.Record(env.tableThree.ID)

	ok, err := throttle.MaySubmit(env.tableThree.ID, 2*time.Minute)
	if err != nil {
		t.Fatalf("MaySubmit: %v", err)
	}
	if ok {
		t.Fatalf("expected cache denial after Record")
	}
}

func TestThrottleExpiredCacheFallsThroughToStorage(t *testing.T) {
	env := newOrderTestEnv(t)
	throttle := NewThrottle(env.orderRepo)

	throttle.Record(env.tableThree.ID)
	time.Sleep(30 * time.Millisecond)

	// Cache entry is stale for this window; storage has nothing, so the
	// table may submit.
	ok, err := throttle.MaySubmit(env.tableThree.ID, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("MaySubmit: %v", err)
	}
	if !ok {
		t.Fatalf("expected storage fall-through to allow")
	}
}

func TestConcurrentSubmissionsExactlyOneWins(t *testing.T) {
	env := newOrderTestEnv(t)

	// One connection so the two transactions serialize in the pool the
	// way they would on the locked table row in postgres.
	sqlDB, err := env.db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	req := &PlaceOrderReq{
		TableNumber: 3,
		Items:       []PlaceOrderItem{{MenuItemID: env.espresso.ID, Quantity: 1}},
	}

	results := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.svc.PlaceOrder(req)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, limited int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrRateLimited):
			limited++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || limited != 1 {
		t.Fatalf("want 1 win and 1 rate-limited, got wins=%d limited=%d", wins, limited)
	}

	orders, items := env.countRows(t)
	if orders != 1 || items != 1 {
		t.Fatalf("rows after race: orders=%d items=%d", orders, items)
	}
}

func TestCreateWithItemsClosesCheckThenInsertRace(t *testing.T) {
	env := newOrderTestEnv(t)

	rows := []repository.OrderItemRow{{MenuItemID: env.espresso.ID, Quantity: 1, PriceCents: 2500}}
	if _, err := env.orderRepo.CreateWithItems(env.tableThree.ID, 15, 2*time.Minute, rows); err != nil {
		t.Fatalf("first CreateWithItems: %v", err)
	}

	// A second insert that slipped past the application-level check must
	// still be rejected by the in-transaction re-check.
	_, err := env.orderRepo.CreateWithItems(env.tableThree.ID, 15, 2*time.Minute, rows)
	if !errors.Is(err, repository.ErrDuplicateRecent) {
		t.Fatalf("want ErrDuplicateRecent got %v", err)
	}

	orders, items := env.countRows(t)
	if orders != 1 || items != 1 {
		t.Fatalf("rows after rejected duplicate: orders=%d items=%d", orders, items)
	}
}
