package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postsheet-api/core/domain"
)

type fakeRecordStore struct {
	records []domain.SavedRecord
	err     error
}

func (f *fakeRecordStore) FindByHash(ctx context.Context, urlHash string) (*domain.SavedRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, r := range f.records {
		if r.URLHash == urlHash {
			r := r
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeRecordStore) Upsert(ctx context.Context, record domain.SavedRecord) error {
	return errors.New("read only")
}

func (f *fakeRecordStore) ListAll(ctx context.Context) ([]domain.SavedRecord, error) {
	return f.records, f.err
}

func TestRecords_ListAndGet(t *testing.T) {
	now := time.Now()
	store := &fakeRecordStore{records: []domain.SavedRecord{
		{URLHash: "new", URL: "https://example.com/2", SavedAt: now.Add(-time.Minute)},
		{URLHash: "old", URL: "https://example.com/1", SavedAt: now.Add(-time.Hour)},
	}}
	_, api := humatest.New(t)
	NewRecordHandler(store).RegisterRoutes(api)

	resp := api.Get("/records")
	require.Equal(t, http.StatusOK, resp.Code)
	body := decode(t, resp.Body.Bytes())
	assert.Equal(t, float64(2), body["count"])
	first := body["records"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "new", first["urlHash"])

	resp = api.Get("/records/old")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "https://example.com/1", decode(t, resp.Body.Bytes())["url"])

	resp = api.Get("/records/none")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestRecords_StoreFailure(t *testing.T) {
	_, api := humatest.New(t)
	NewRecordHandler(&fakeRecordStore{err: errors.New("cache down")}).RegisterRoutes(api)

	resp := api.Get("/records")
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}
