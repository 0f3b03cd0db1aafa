package services

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"backend/entity"
	"backend/pkg/logger"
	"backend/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func mustTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

// newTestDB opens a private in-memory database per test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&entity.Admin{},
		&entity.Table{},
		&entity.Category{}, &entity.MenuItem{},
		&entity.Order{}, &entity.OrderItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type publishedEvent struct {
	Channel string
	Event   string
	Payload any
}

// recordingPublisher stands in for the hub so tests can assert what the
// engine published without a socket.
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(channel, event string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Channel: channel, Event: event, Payload: payload})
}

func (p *recordingPublisher) find(channel, event string) (publishedEvent, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, ev := range p.events {
		if ev.Channel == channel && ev.Event == event {
			return ev, true
		}
	}
	return publishedEvent{}, false
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

type orderTestEnv struct {
	db        *gorm.DB
	orderRepo *repository.OrderRepository
	svc       *OrderService
	pub       *recordingPublisher

	tableThree entity.Table
	inactive   entity.Table
	espresso   entity.MenuItem
	chai       entity.MenuItem
	offMenu    entity.MenuItem
}

func newOrderTestEnv(t *testing.T) *orderTestEnv {
	t.Helper()
	db := newTestDB(t)

	env := &orderTestEnv{db: db, pub: &recordingPublisher{}}

	env.tableThree = entity.Table{TableNumber: 3, IsActive: true}
	env.inactive = entity.Table{TableNumber: 9, IsActive: false}
	for _, tbl := range []*entity.Table{&env.tableThree, &env.inactive} {
		if err := db.Create(tbl).Error; err != nil {
			t.Fatalf("seed table: %v", err)
		}
	}

	cat := entity.Category{Name: "Drinks", DisplayOrder: 1}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	env.espresso = entity.MenuItem{Name: "Espresso", PriceCents: 2500, CategoryID: cat.ID, IsAvailable: true}
	env.chai = entity.MenuItem{Name: "Masala Chai", PriceCents: 333, CategoryID: cat.ID, IsAvailable: true}
	env.offMenu = entity.MenuItem{Name: "Seasonal Special", PriceCents: 700, CategoryID: cat.ID, IsAvailable: false}
	for _, m := range []*entity.MenuItem{&env.espresso, &env.chai, &env.offMenu} {
		if err := db.Create(m).Error; err != nil {
			t.Fatalf("seed menu item: %v", err)
		}
	}

	env.orderRepo = repository.NewOrderRepository(db)
	tableRepo := repository.NewTableRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	throttle := NewThrottle(env.orderRepo)
	env.svc = NewOrderService(env.orderRepo, tableRepo, menuRepo, throttle, env.pub, mustTestLogger(t), 2*time.Minute)
	return env
}

func (env *orderTestEnv) countRows(t *testing.T) (orders int64, items int64) {
	t.Helper()
	if err := env.db.Model(&entity.Order{}).Count(&orders).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if err := env.db.Model(&entity.OrderItem{}).Count(&items).Error; err != nil {
		t.Fatalf("count order items: %v", err)
	}
	return orders, items
}
