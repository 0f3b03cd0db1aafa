package services

import (
	"sync"
	"time"

	"backend/repository"
)

// Throttle guards against duplicate submissions from the same table.
// The in-memory map only serves fast denials for tables this process
// recently accepted; anything else goes to storage, so the cache can
// never produce a false allow. The authoritative guard under concurrent
// submissions is the locked re-check inside OrderRepository.CreateWithItems.
type Throttle struct {
	mu     sync.Mutex
	recent map[uint]time.Time // tableID -> last accepted submission
	repo   *repository.OrderRepository
}

func NewThrottle(repo *repository.OrderRepository) *Throttle {
	return &Throttle{
		recent: make(map[uint]time.Time),
		repo:   repo,
	}
}

// MaySubmit reports whether the table may place an order right now.
func (t *Throttle) MaySubmit(tableID uint, window time.Duration) (bool, error) {
	t.mu.Lock()
	if ts, ok := t.recent[tableID]; ok && time.Since(ts) < window {
		t.mu.Unlock()
		return false, nil
	}
	t.mu.Unlock()

	recent, err := t.repo.HasRecentActiveOrder(t.repo.DB, tableID, window)
	if err != nil {
		return false, persistence(err)
	}
	return !recent, nil
}

// Record notes an accepted submission so repeats deny without a round-trip.
func (t *Throttle) Record(tableID uint) {
	t.mu.Lock()
	t.recent[tableID] = time.Now()
	t.mu.Unlock()
}
