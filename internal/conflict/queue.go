package conflict

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/iudanet/gophsync/internal/models"
)

// Queue holds conflicts waiting for a manual decision.
// Одна очередь создаётся при старте приложения и передаётся движку и CLI.
type Queue struct {
	conflicts map[string]*models.SyncConflict // map[id]conflict
	order     []string                        // порядок добавления для GetAll
	now       func() time.Time
	mu        sync.RWMutex
}

// NewQueue creates an empty conflict queue.
func NewQueue() *Queue {
	return &Queue{
		conflicts: make(map[string]*models.SyncConflict),
		now:       time.Now,
	}
}

// Add queues a conflict or replaces the queued one with the same id.
// Replacement keeps the original position.
func (q *Queue) Add(c models.SyncConflict) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, exists := q.conflicts[c.ID]; !exists {
		q.order = append(q.order, c.ID)
	}
	q.conflicts[c.ID] = cloneConflict(&c)
}

// Get returns the queued conflict with the given id.
func (q *Queue) Get(id string) (models.SyncConflict, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	c, exists := q.conflicts[id]
	if !exists {
		return models.SyncConflict{}, false
	}
	return *cloneConflict(c), true
}

// GetAll returns all queued conflicts in insertion order.
func (q *Queue) GetAll() []models.SyncConflict {
	q.mu.RLock()
	defer q.mu.RUnlock()

	result := make([]models.SyncConflict, 0, len(q.order))
	for _, id := range q.order {
		result = append(result, *cloneConflict(q.conflicts[id]))
	}
	return result
}

// HasConflicts reports whether anything is queued.
func (q *Queue) HasConflicts() bool {
	return q.Count() > 0
}

// Count returns the number of queued conflicts.
func (q *Queue) Count() int {
	q.mu.RLock()
	defer q.mu.RUnlock()

	return len(q.conflicts)
}

// Resolved is a conflict removed from the queue by Resolve.
type Resolved struct {
	// Conflict carries Resolution and ResolvedAt
	Conflict models.SyncConflict
	Data     models.Record
}

// Resolve stamps the decision, removes the conflict from the queue and
// returns it with the data chosen by the caller.
func (q *Queue) Resolve(id string, resolution models.Resolution, data models.Record) (*Resolved, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	c, exists := q.conflicts[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrConflictNotFound, id)
	}

	resolved := cloneConflict(c)
	resolved.Resolution = resolution
	resolved.ResolvedAt = models.NewTimestamp(q.now()).String()

	delete(q.conflicts, id)
	q.order = slices.DeleteFunc(q.order, func(v string) bool { return v == id })

	return &Resolved{Conflict: *resolved, Data: data.Clone()}, nil
}

// Clear removes every queued conflict.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.conflicts = make(map[string]*models.SyncConflict)
	q.order = nil
}

func cloneConflict(c *models.SyncConflict) *models.SyncConflict {
	out := *c
	out.LocalData = c.LocalData.Clone()
	out.RemoteData = c.RemoteData.Clone()
	return &out
}
