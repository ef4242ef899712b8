package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"postsheet-api/core/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapCache struct {
	data   map[string][]byte
	getErr error
}

func (c *mapCache) Get(ctx context.Context, key string) ([]byte, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	v, ok := c.data[key]
	if !ok {
		return nil, interfaces.ErrCacheMiss
	}
	return v, nil
}

func (c *mapCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *mapCache) Delete(ctx context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func TestSheetID_FallsBackToDefault(t *testing.T) {
	svc := NewService(&mapCache{data: map[string][]byte{}}, " default-sheet ")

	id, err := svc.SheetID(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "default-sheet", id)
}

func TestSetSheetID_AcceptsURL(t *testing.T) {
	svc := NewService(&mapCache{data: map[string][]byte{}}, "")
	ctx := context.Background()

	require.NoError(t, svc.SetSheetID(ctx, "https://docs.google.com/spreadsheets/d/1AbC_dEf/edit#gid=0"))

	id, err := svc.SheetID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1AbC_dEf", id)
}

func TestSetLicenseKey_EmptyClears(t *testing.T) {
	cache := &mapCache{data: map[string][]byte{}}
	svc := NewService(cache, "")
	ctx := context.Background()

	require.NoError(t, svc.SetLicenseKey(ctx, "LIC-12345678"))
	key, _ := svc.LicenseKey(ctx)
	assert.Equal(t, "LIC-12345678", key)

	require.NoError(t, svc.SetLicenseKey(ctx, "  "))
	key, err := svc.LicenseKey(ctx)
	require.NoError(t, err)
	assert.Empty(t, key)
}

func TestGet_HidesLicenseKey(t *testing.T) {
	svc := NewService(&mapCache{data: map[string][]byte{}}, "sheet-1")
	ctx := context.Background()
	require.NoError(t, svc.SetLicenseKey(ctx, "LIC-12345678"))

	s, err := svc.Get(ctx)

	require.NoError(t, err)
	assert.Equal(t, "sheet-1", s.SheetID)
	assert.True(t, s.HasLicenseKey)
	assert.Equal(t, "…5678", s.LicenseHint)
}

func TestRead_PropagatesStorageErrors(t *testing.T) {
	svc := NewService(&mapCache{data: map[string][]byte{}, getErr: errors.New("locked")}, "")

	_, err := svc.LicenseKey(context.Background())

	assert.Error(t, err)
}

func TestExtractSheetID(t *testing.T) {
	tests := map[string]string{
		"abc123": "abc123",
		"https://docs.google.com/spreadsheets/d/abc123/edit":    "abc123",
		"https://docs.google.com/spreadsheets/d/abc123?usp=x":   "abc123",
		"  https://docs.google.com/spreadsheets/d/abc123#gid=0": "abc123",
		"": "",
	}
	for in, want := range tests {
		assert.Equal(t, want, ExtractSheetID(in), in)
	}
}
