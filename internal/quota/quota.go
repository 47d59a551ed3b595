// Package quota enforces the daily generation ceiling.
//
// The tracker is advisory and client-local: it counts generations per UTC
// calendar day in the durable store and refuses further generations once the
// ceiling is reached. It is not hardened against clock manipulation, and the
// read-increment-write sequence is not atomic across processes sharing the
// same store (accepted; see the kvstore package doc).
package quota

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kivosy/factory/internal/kvstore"
	"github.com/kivosy/factory/internal/log"
)

// DefaultMaxPerDay is the default daily generation ceiling.
const DefaultMaxPerDay = 10

// usageKey is the durable-store key holding the daily usage record.
const usageKey = "factory_usage"

// Record is one day's usage. A record whose Date is not the current day is
// treated as count zero; the stale record is lazily rewritten on the next
// increment, not eagerly expired.
type Record struct {
	Count int    `json:"count"`
	Date  string `json:"date"` // YYYY-MM-DD, UTC
}

// Tracker counts generations against the daily ceiling.
type Tracker struct {
	store  kvstore.Store
	max    int
	now    func() time.Time
	logger log.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithMaxPerDay overrides the daily ceiling.
func WithMaxPerDay(max int) Option {
	return func(t *Tracker) { t.max = max }
}

// WithClock overrides the time source. Tests use this to simulate rollover.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// New creates a Tracker backed by store.
func New(store kvstore.Store, logger log.Logger, opts ...Option) *Tracker {
	if logger == nil {
		logger = log.NewNop()
	}
	t := &Tracker{
		store:  store,
		max:    DefaultMaxPerDay,
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Usage returns today's usage record. Missing, corrupt, or stale-dated
// backing data yields a fresh zero record for the current date; Usage never
// fails.
func (t *Tracker) Usage() Record {
	today := t.today()
	fresh := Record{Count: 0, Date: today}

	raw, err := t.store.Get(usageKey)
	if err != nil {
		return fresh
	}

	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.logger.Warn("corrupt usage record, treating as empty", "error", err)
		return fresh
	}
	if rec.Date != today {
		return fresh
	}
	return rec
}

// Increment records one generation under today's date.
func (t *Tracker) Increment() error {
	rec := t.Usage()
	rec.Count++

	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding usage record: %w", err)
	}
	if err := t.store.Set(usageKey, string(raw)); err != nil {
		return fmt.Errorf("persisting usage record: %w", err)
	}

	t.logger.Debug("usage incremented", "count", rec.Count, "date", rec.Date)
	return nil
}

// CanGenerate reports whether today's count is below the ceiling.
func (t *Tracker) CanGenerate() bool {
	return t.Usage().Count < t.max
}

// Remaining returns the generations left today, floored at zero.
func (t *Tracker) Remaining() int {
	left := t.max - t.Usage().Count
	if left < 0 {
		return 0
	}
	return left
}

// MaxPerDay returns the configured daily ceiling.
func (t *Tracker) MaxPerDay() int {
	return t.max
}

func (t *Tracker) today() string {
	return t.now().UTC().Format("2006-01-02")
}
