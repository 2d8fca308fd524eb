// Package clock provides the monotonic millisecond clock used to stamp
// createdAt/updatedAt on local records.
package clock

import (
	"sync"
	"time"

	"github.com/iudanet/gophsync/internal/models"
)

// Clock выдаёт неубывающие временные метки с точностью до миллисекунды.
// Если системное время откатилось назад, Now продолжает отдавать последнее
// выданное значение, поэтому updatedAt записи никогда не становится меньше createdAt.
type Clock struct {
	last   time.Time        // последнее выданное или наблюдённое значение
	source func() time.Time // источник физического времени
	mu     sync.Mutex       // мьютекс для потокобезопасности
}

// New creates a clock backed by time.Now.
func New() *Clock {
	return NewWithSource(time.Now)
}

// NewWithSource creates a clock backed by the given time source.
// Used in tests to control the wall clock.
func NewWithSource(source func() time.Time) *Clock {
	return &Clock{source: source}
}

// Now returns max(wall clock, last returned or observed value).
func (c *Clock) Now() models.Timestamp {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.source().UTC().Truncate(time.Millisecond)
	if now.Before(c.last) {
		now = c.last
	}
	c.last = now

	return models.Timestamp{Time: now}
}

// Observe advances the clock to a timestamp seen on a remote record, so that
// a local edit made after applying that record is never stamped earlier.
// Как в алгоритме Лампорта: last = max(last, remote).
func (c *Clock) Observe(ts models.Timestamp) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := ts.UTC().Truncate(time.Millisecond)
	if t.After(c.last) {
		c.last = t
	}
}

// Last returns the last value handed out or observed without advancing the clock.
func (c *Clock) Last() models.Timestamp {
	c.mu.Lock()
	defer c.mu.Unlock()

	return models.Timestamp{Time: c.last}
}
