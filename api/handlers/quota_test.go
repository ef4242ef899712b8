package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postsheet-api/core/domain"
)

type fakeReporter struct {
	licenseKey string
	usage      domain.QuotaResult
	err        error
}

func (f *fakeReporter) Identity(ctx context.Context, ip, ua string) (string, string) {
	return "id", f.licenseKey
}

func (f *fakeReporter) Usage(ctx context.Context, ip, ua string) (domain.QuotaResult, error) {
	return f.usage, f.err
}

func TestGetQuota(t *testing.T) {
	reporter := &fakeReporter{
		licenseKey: "key",
		usage:      domain.QuotaResult{Allowed: true, QuotaSnapshot: domain.QuotaSnapshot{Limit: 100, Count: 4, Remaining: 96}},
	}
	_, api := humatest.New(t)
	NewQuotaHandler(reporter).RegisterRoutes(api)

	resp := api.Get("/quota")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"licensed":true,"limit":100,"count":4,"remaining":96}`, stripSchema(t, resp.Body.Bytes()))
}

func TestGetQuota_LedgerFailure(t *testing.T) {
	_, api := humatest.New(t)
	NewQuotaHandler(&fakeReporter{err: errors.New("cache down")}).RegisterRoutes(api)

	resp := api.Get("/quota")
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

// stripSchema drops the $schema link huma adds to response bodies
func stripSchema(t *testing.T, body []byte) string {
	t.Helper()
	m := decode(t, body)
	delete(m, "$schema")
	out, err := json.Marshal(m)
	require.NoError(t, err)
	return string(out)
}
