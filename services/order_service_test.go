package services

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestPlaceOrderComputesExactTotal(t *testing.T) {
	env := newOrderTestEnv(t)

	res, err := env.svc.PlaceOrder(&PlaceOrderReq{
		TableNumber: 3,
		Items:       []PlaceOrderItem{{MenuItemID: env.espresso.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	if res.TotalAmount != 50.00 {
		t.Fatalf("total: want=50.00 got=%v", res.TotalAmount)
	}
	if res.Status != "pending" {
		t.Fatalf("status: want=pending got=%s", res.Status)
	}
	if res.EstimatedTime != 15 {
		t.Fatalf("estimated time: want=15 got=%d", res.EstimatedTime)
	}

	ev, ok := env.pub.find(ChannelAdmin, EventNewOrder)
	if !ok {
		t.Fatalf("expected new_order published to admin channel")
	}
	view, ok := ev.Payload.(OrderView)
	if !ok {
		t.Fatalf("new_order payload: want OrderView got %T", ev.Payload)
	}
	if view.TableNumber != 3 || view.TotalAmount != 50.00 {
		t.Fatalf("new_order view: table=%d total=%v", view.TableNumber, view.TotalAmount)
	}
}

func TestPlaceOrderTotalStableAcrossReads(t *testing.T) {
	env := newOrderTestEnv(t)

	// 3x3.33 + 7x25.00 = 184.99; integer cents keep it exact.
	res, err := env.svc.PlaceOrder(&PlaceOrderReq{
		TableNumber: 3,
		Items: []PlaceOrderItem{
			{MenuItemID: env.chai.ID, Quantity: 3},
			{MenuItemID: env.espresso.ID, Quantity: 7},
		},
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if res.TotalAmount != 184.99 {
		t.Fatalf("total: want=184.99 got=%v", res.TotalAmount)
	}

	for i := 0; i < 5; i++ {
		view, err := env.svc.GetOrder(res.OrderID)
		if err != nil {
			t.Fatalf("GetOrder: %v", err)
		}
		var sum float64
		for _, item := range view.Items {
			sum += item.Subtotal
		}
		if view.TotalAmount != 184.99 {
			t.Fatalf("read %d: total drifted to %v", i, view.TotalAmount)
		}
		if math.Abs(sum-view.TotalAmount) > 1e-9 {
			t.Fatalf("read %d: line subtotals %v != total %v", i, sum, view.TotalAmount)
		}
	}
}

func TestPlaceOrderResubmissionRateLimited(t *testing.T) {
	env := newOrderTestEnv(t)

	req := &PlaceOrderReq{
		TableNumber: 3,
		Items:       []PlaceOrderItem{{MenuItemID: env.espresso.ID, Quantity: 2}},
	}
	if _, err := env.svc.PlaceOrder(req); err != nil {
		t.Fatalf("first PlaceOrder: %v", err)
	}

	_, err := env.svc.PlaceOrder(req)
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("second PlaceOrder: want ErrRateLimited got %v", err)
	}

	orders, _ := env.countRows(t)
	if orders != 1 {
		t.Fatalf("orders: want=1 got=%d", orders)
	}
}

func TestPlaceOrderUnavailableItemLeavesNothing(t *testing.T) {
	env := newOrderTestEnv(t)

	_, err := env.svc.PlaceOrder(&PlaceOrderReq{
		TableNumber: 3,
		Items: []PlaceOrderItem{
			{MenuItemID: env.espresso.ID, Quantity: 1},
			{MenuItemID: env.offMenu.ID, Quantity: 1},
		},
	})
	if !errors.Is(err, ErrItemUnavailable) {
		t.Fatalf("want ErrItemUnavailable got %v", err)
	}

	orders, items := env.countRows(t)
	if orders != 0 || items != 0 {
		t.Fatalf("orphan rows after failure: orders=%d items=%d", orders, items)
	}
	if env.pub.count() != 0 {
		t.Fatalf("nothing may publish on a failed submission")
	}
}

func TestPlaceOrderUnknownItemRejected(t *testing.T) {
	env := newOrderTestEnv(t)

	_, err := env.svc.PlaceOrder(&PlaceOrderReq{
		TableNumber: 3,
		Items:       []PlaceOrderItem{{MenuItemID: 9999, Quantity: 1}},
	})
	if !errors.Is(err, ErrItemUnavailable) {
		t.Fatalf("want ErrItemUnavailable got %v", err)
	}

	orders, items := env.countRows(t)
	if orders != 0 || items != 0 {
		t.Fatalf("orphan rows after failure: orders=%d items=%d", orders, items)
	}
}

func TestPlaceOrderInvalidQuantity(t *testing.T) {
	env := newOrderTestEnv(t)

	for _, qty := range []int{0, -2} {
		_, err := env.svc.PlaceOrder(&PlaceOrderReq{
			TableNumber: 3,
			Items:       []PlaceOrderItem{{MenuItemID: env.espresso.ID, Quantity: qty}},
		})
		if !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("quantity %d: want ErrInvalidQuantity got %v", qty, err)
		}
	}
}

func TestPlaceOrderTableValidation(t *testing.T) {
	env := newOrderTestEnv(t)

	items := []PlaceOrderItem{{MenuItemID: env.espresso.ID, Quantity: 1}}

	_, err := env.svc.PlaceOrder(&PlaceOrderReq{TableNumber: 9, Items: items})
	if !errors.Is(err, ErrInvalidTable) {
		t.Fatalf("inactive table: want ErrInvalidTable got %v", err)
	}

	_, err = env.svc.PlaceOrder(&PlaceOrderReq{TableNumber: 77, Items: items})
	if !errors.Is(err, ErrInvalidTable) {
		t.Fatalf("unknown table: want ErrInvalidTable got %v", err)
	}
}

func TestUpdateStatusPublishesBothChannels(t *testing.T) {
	env := newOrderTestEnv(t)

	res, err := env.svc.PlaceOrder(&PlaceOrderReq{
		TableNumber: 3,
		Items:       []PlaceOrderItem{{MenuItemID: env.espresso.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	time.Sleep(10 * time.Millisecond) // so updated_at lands strictly later

	view, err := env.svc.UpdateStatus(res.OrderID, "completed", nil)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if view.Status != "completed" {
		t.Fatalf("status: want=completed got=%s", view.Status)
	}
	if !view.UpdatedAt.After(view.CreatedAt) {
		t.Fatalf("updated_at %v not after created_at %v", view.UpdatedAt, view.CreatedAt)
	}

	if _, ok := env.pub.find(TableChannel(3), EventOrderStatusUpdated); !ok {
		t.Fatalf("expected order_status_updated on table_3")
	}
	if _, ok := env.pub.find(ChannelAdmin, EventOrderUpdated); !ok {
		t.Fatalf("expected order_updated on admin channel")
	}

	got, err := env.svc.GetOrder(res.OrderID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if got.Status != "completed" {
		t.Fatalf("read-after-update status: want=completed got=%s", got.Status)
	}
}

func TestUpdateStatusSetsEstimatedTime(t *testing.T) {
	env := newOrderTestEnv(t)

	res, err := env.svc.PlaceOrder(&PlaceOrderReq{
		TableNumber: 3,
		Items:       []PlaceOrderItem{{MenuItemID: env.espresso.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	eta := 25
	view, err := env.svc.UpdateStatus(res.OrderID, "preparing", &eta)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if view.EstimatedTime != 25 {
		t.Fatalf("estimated time: want=25 got=%d", view.EstimatedTime)
	}
}

func TestUpdateStatusPermitsAnyOrderOfStatuses(t *testing.T) {
	env := newOrderTestEnv(t)

	res, err := env.svc.PlaceOrder(&PlaceOrderReq{
		TableNumber: 3,
		Items:       []PlaceOrderItem{{MenuItemID: env.espresso.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	// Staff may jump and go back freely; only the value set is checked.
	for _, status := range []string{"completed", "pending", "ready", "preparing"} {
		if _, err := env.svc.UpdateStatus(res.OrderID, status, nil); err != nil {
			t.Fatalf("UpdateStatus(%s): %v", status, err)
		}
	}
}

func TestUpdateStatusValidation(t *testing.T) {
	env := newOrderTestEnv(t)

	_, err := env.svc.UpdateStatus(12345, "pending", nil)
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("unknown order: want ErrOrderNotFound got %v", err)
	}

	res, err := env.svc.PlaceOrder(&PlaceOrderReq{
		TableNumber: 3,
		Items:       []PlaceOrderItem{{MenuItemID: env.espresso.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	_, err = env.svc.UpdateStatus(res.OrderID, "burnt", nil)
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("bad status: want ErrInvalidStatus got %v", err)
	}
}
