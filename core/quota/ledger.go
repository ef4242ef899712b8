// ABOUTME: Quota ledger is a day-scoped counter enforcing a daily ceiling per identity
// ABOUTME: Counters live in the key-value store and expire at the next UTC midnight

package quota

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"postsheet-api/core/domain"
	"postsheet-api/core/interfaces"
)

// ScopeAI is the ledger scope for AI enrichment calls
const ScopeAI = "ai"

type counter struct {
	Count int `json:"count"`
}

// Ledger counts calls per (scope, identity, UTC date).
// Read-modify-write is not serialized; the ceiling is advisory under contention.
type Ledger struct {
	cache interfaces.Cache
	now   func() time.Time
}

// NewLedger creates a ledger over the given store
func NewLedger(cache interfaces.Cache) *Ledger {
	return &Ledger{
		cache: cache,
		now:   time.Now,
	}
}

// SetClock overrides the time source (used in tests)
func (l *Ledger) SetClock(now func() time.Time) {
	l.now = now
}

// Key returns the storage key for an identity on the given instant's UTC date
func Key(scope, identity string, at time.Time) string {
	return fmt.Sprintf("quota:%s:%s:%s", scope, identity, at.UTC().Format("2006-01-02"))
}

// untilMidnight returns the time left until the next UTC midnight
func untilMidnight(now time.Time) time.Duration {
	utc := now.UTC()
	next := time.Date(utc.Year(), utc.Month(), utc.Day()+1, 0, 0, 0, 0, time.UTC)
	return next.Sub(utc)
}

// Increment consumes one unit of the identity's daily allowance.
// A refused call does not change the stored count.
func (l *Ledger) Increment(ctx context.Context, scope, identity string, dailyLimit int) (domain.QuotaResult, error) {
	if dailyLimit <= 0 {
		return domain.QuotaResult{Allowed: false, QuotaSnapshot: domain.QuotaSnapshot{Limit: dailyLimit}}, nil
	}

	now := l.now()
	key := Key(scope, identity, now)

	count, err := l.read(ctx, key)
	if err != nil {
		return domain.QuotaResult{}, err
	}

	if count >= dailyLimit {
		return domain.QuotaResult{
			Allowed: false,
			QuotaSnapshot: domain.QuotaSnapshot{
				Limit:     dailyLimit,
				Remaining: 0,
				Count:     count,
			},
		}, nil
	}

	count++
	data, err := json.Marshal(counter{Count: count})
	if err != nil {
		return domain.QuotaResult{}, err
	}
	if err := l.cache.Set(ctx, key, data, untilMidnight(now)); err != nil {
		return domain.QuotaResult{}, fmt.Errorf("persist quota counter: %w", err)
	}

	return domain.QuotaResult{
		Allowed: true,
		QuotaSnapshot: domain.QuotaSnapshot{
			Limit:     dailyLimit,
			Remaining: dailyLimit - count,
			Count:     count,
		},
	}, nil
}

// Peek reports current usage without consuming allowance
func (l *Ledger) Peek(ctx context.Context, scope, identity string, dailyLimit int) (domain.QuotaResult, error) {
	if dailyLimit <= 0 {
		return domain.QuotaResult{Allowed: false, QuotaSnapshot: domain.QuotaSnapshot{Limit: dailyLimit}}, nil
	}

	count, err := l.read(ctx, Key(scope, identity, l.now()))
	if err != nil {
		return domain.QuotaResult{}, err
	}

	remaining := dailyLimit - count
	if remaining < 0 {
		remaining = 0
	}
	return domain.QuotaResult{
		Allowed: count < dailyLimit,
		QuotaSnapshot: domain.QuotaSnapshot{
			Limit:     dailyLimit,
			Remaining: remaining,
			Count:     count,
		},
	}, nil
}

func (l *Ledger) read(ctx context.Context, key string) (int, error) {
	data, err := l.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, interfaces.ErrCacheMiss) {
			return 0, nil
		}
		return 0, fmt.Errorf("read quota counter: %w", err)
	}

	var c counter
	if err := json.Unmarshal(data, &c); err != nil {
		return 0, fmt.Errorf("decode quota counter %s: %w", key, err)
	}
	return c.Count, nil
}
