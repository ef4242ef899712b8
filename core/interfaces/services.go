// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts for the collaborators of the save pipeline

package interfaces

import (
	"context"

	"postsheet-api/core/domain"
)

// EnrichmentClient produces an AI outcome for a capture.
// It never fails; every failure is reported through the outcome status.
type EnrichmentClient interface {
	Summarize(ctx context.Context, capture domain.CaptureRequest) domain.AIOutcome
}

// SheetsClient persists rows to the remote spreadsheet
type SheetsClient interface {
	// Append adds a row and returns the A1 range the backend wrote to
	Append(ctx context.Context, sheetID string, row domain.SheetRow) (string, error)

	// Update overwrites the row at rangeA1 in place
	Update(ctx context.Context, sheetID, rangeA1 string, row domain.SheetRow) error
}

// TokenProvider acquires bearer credentials from an identity provider.
// Non-interactive calls may serve a cached token; interactive calls
// always go back to the provider.
type TokenProvider interface {
	Token(ctx context.Context, interactive bool) (string, error)

	// Invalidate drops a cached token that the resource server rejected
	Invalidate(ctx context.Context, token string) error
}

// Notifier delivers fire-and-forget notifications to a platform surface
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}
