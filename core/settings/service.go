// ABOUTME: Settings service persists user-level settings in local key-value storage
// ABOUTME: Holds the license key and destination sheet id used by the save pipeline

package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"postsheet-api/core/interfaces"
)

const (
	licenseKeyKey = "settings:license_key"
	sheetIDKey    = "settings:sheet_id"
)

// Settings is the user-visible view of stored settings
type Settings struct {
	SheetID       string `json:"sheetId"`
	HasLicenseKey bool   `json:"hasLicenseKey"`
	LicenseHint   string `json:"licenseHint,omitempty"`
}

// Service reads and writes settings
type Service struct {
	cache          interfaces.Cache
	defaultSheetID string
}

// NewService creates a settings service. defaultSheetID is used when no
// sheet id has been stored.
func NewService(cache interfaces.Cache, defaultSheetID string) *Service {
	return &Service{
		cache:          cache,
		defaultSheetID: strings.TrimSpace(defaultSheetID),
	}
}

// LicenseKey returns the stored license key, or "" when none is set
func (s *Service) LicenseKey(ctx context.Context) (string, error) {
	return s.read(ctx, licenseKeyKey)
}

// SheetID returns the stored sheet id, falling back to the configured default
func (s *Service) SheetID(ctx context.Context) (string, error) {
	id, err := s.read(ctx, sheetIDKey)
	if err != nil {
		return "", err
	}
	if id == "" {
		return s.defaultSheetID, nil
	}
	return id, nil
}

// SetLicenseKey stores a license key; an empty key clears it
func (s *Service) SetLicenseKey(ctx context.Context, key string) error {
	return s.write(ctx, licenseKeyKey, key)
}

// SetSheetID stores the destination sheet id; an empty id clears it
func (s *Service) SetSheetID(ctx context.Context, id string) error {
	return s.write(ctx, sheetIDKey, ExtractSheetID(id))
}

// Get returns the current settings without exposing the license key
func (s *Service) Get(ctx context.Context) (Settings, error) {
	sheetID, err := s.SheetID(ctx)
	if err != nil {
		return Settings{}, err
	}
	key, err := s.LicenseKey(ctx)
	if err != nil {
		return Settings{}, err
	}

	out := Settings{SheetID: sheetID, HasLicenseKey: key != ""}
	if len(key) > 4 {
		out.LicenseHint = "…" + key[len(key)-4:]
	}
	return out, nil
}

// ExtractSheetID accepts a bare sheet id or a full spreadsheet URL
func ExtractSheetID(input string) string {
	input = strings.TrimSpace(input)
	const marker = "/spreadsheets/d/"
	idx := strings.Index(input, marker)
	if idx < 0 {
		return input
	}
	rest := input[idx+len(marker):]
	if end := strings.IndexAny(rest, "/?#"); end >= 0 {
		rest = rest[:end]
	}
	return rest
}

// SheetURL returns the browser URL of a spreadsheet
func SheetURL(sheetID string) string {
	return "https://docs.google.com/spreadsheets/d/" + sheetID
}

func (s *Service) read(ctx context.Context, key string) (string, error) {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, interfaces.ErrCacheMiss) {
			return "", nil
		}
		return "", fmt.Errorf("read setting %s: %w", key, err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *Service) write(ctx context.Context, key, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return s.cache.Delete(ctx, key)
	}
	if err := s.cache.Set(ctx, key, []byte(value), 0); err != nil {
		return fmt.Errorf("write setting %s: %w", key, err)
	}
	return nil
}
