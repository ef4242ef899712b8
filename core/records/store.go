// ABOUTME: Record store keeps a bounded, time-retained local index of saved captures
// ABOUTME: Backs duplicate detection; expired records are hidden on read and pruned on upsert

package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"postsheet-api/core/domain"
	"postsheet-api/core/interfaces"
)

const (
	// IndexKey is the storage key of the record index
	IndexKey = "records:index"

	// DefaultRetention hides and prunes records older than this
	DefaultRetention = 90 * 24 * time.Hour

	// DefaultMaxRecords caps the index size, oldest evicted first
	DefaultMaxRecords = 50
)

// Store is the local record index
type Store struct {
	cache      interfaces.Cache
	retention  time.Duration
	maxRecords int
	now        func() time.Time
}

// Option customises a Store
type Option func(*Store)

// WithRetention overrides the retention window
func WithRetention(d time.Duration) Option {
	return func(s *Store) {
		s.retention = d
	}
}

// WithMaxRecords overrides the count cap
func WithMaxRecords(n int) Option {
	return func(s *Store) {
		s.maxRecords = n
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a record store over the given key-value store
func NewStore(cache interfaces.Cache, opts ...Option) *Store {
	s := &Store{
		cache:      cache,
		retention:  DefaultRetention,
		maxRecords: DefaultMaxRecords,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindByHash returns the record for urlHash, or nil when absent
func (s *Store) FindByHash(ctx context.Context, urlHash string) (*domain.SavedRecord, error) {
	index, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	rec, ok := index[urlHash]
	if !ok || s.expired(rec, s.now()) {
		return nil, nil
	}
	return &rec, nil
}

// Upsert writes the record, overwriting any entry with the same hash,
// then applies age retention followed by the count cap.
func (s *Store) Upsert(ctx context.Context, record domain.SavedRecord) error {
	if record.URLHash == "" {
		return errors.New("record hash cannot be empty")
	}
	if record.SavedAt.IsZero() {
		record.SavedAt = s.now()
	}

	index, err := s.load(ctx)
	if err != nil {
		return err
	}
	index[record.URLHash] = record

	retained := s.applyRetention(index)
	return s.save(ctx, retained)
}

// ListAll returns every unexpired record, newest first
func (s *Store) ListAll(ctx context.Context) ([]domain.SavedRecord, error) {
	index, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	list := make([]domain.SavedRecord, 0, len(index))
	for _, rec := range index {
		if s.expired(rec, now) {
			continue
		}
		list = append(list, rec)
	}
	sortNewestFirst(list)
	return list, nil
}

func (s *Store) applyRetention(index map[string]domain.SavedRecord) map[string]domain.SavedRecord {
	now := s.now()
	list := make([]domain.SavedRecord, 0, len(index))
	for _, rec := range index {
		if s.expired(rec, now) {
			continue
		}
		list = append(list, rec)
	}

	sortNewestFirst(list)
	if s.maxRecords > 0 && len(list) > s.maxRecords {
		list = list[:s.maxRecords]
	}

	out := make(map[string]domain.SavedRecord, len(list))
	for _, rec := range list {
		out[rec.URLHash] = rec
	}
	return out
}

func (s *Store) expired(rec domain.SavedRecord, now time.Time) bool {
	return s.retention > 0 && rec.Age(now) > s.retention
}

func sortNewestFirst(list []domain.SavedRecord) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].SavedAt.Equal(list[j].SavedAt) {
			return list[i].URLHash < list[j].URLHash
		}
		return list[i].SavedAt.After(list[j].SavedAt)
	})
}

func (s *Store) load(ctx context.Context) (map[string]domain.SavedRecord, error) {
	data, err := s.cache.Get(ctx, IndexKey)
	if err != nil {
		if errors.Is(err, interfaces.ErrCacheMiss) {
			return map[string]domain.SavedRecord{}, nil
		}
		return nil, fmt.Errorf("load record index: %w", err)
	}

	index := map[string]domain.SavedRecord{}
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("decode record index: %w", err)
	}
	return index, nil
}

func (s *Store) save(ctx context.Context, index map[string]domain.SavedRecord) error {
	data, err := json.Marshal(index)
	if err != nil {
		return err
	}
	if err := s.cache.Set(ctx, IndexKey, data, 0); err != nil {
		return fmt.Errorf("save record index: %w", err)
	}
	return nil
}
