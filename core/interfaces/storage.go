// ABOUTME: Storage interfaces for persisting domain entities
// ABOUTME: Defines contracts for the record index, quota counters and settings

package interfaces

import (
	"context"

	"postsheet-api/core/domain"
)

// RecordStore is the bounded local index of saved records
type RecordStore interface {
	// FindByHash returns the record for a content id, or nil when absent
	FindByHash(ctx context.Context, urlHash string) (*domain.SavedRecord, error)

	// Upsert inserts or overwrites the record for its content id
	Upsert(ctx context.Context, record domain.SavedRecord) error

	// ListAll returns every retained record, newest first
	ListAll(ctx context.Context) ([]domain.SavedRecord, error)
}

// QuotaLedger is a day-scoped counter per caller identity
type QuotaLedger interface {
	Increment(ctx context.Context, scope, identity string, dailyLimit int) (domain.QuotaResult, error)
	Peek(ctx context.Context, scope, identity string, dailyLimit int) (domain.QuotaResult, error)
}

// SettingsStore holds user-level settings persisted in local storage
type SettingsStore interface {
	LicenseKey(ctx context.Context) (string, error)
	SheetID(ctx context.Context) (string, error)
}
