package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"postsheet-api/core/domain"
	coreerrors "postsheet-api/core/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTokens hands out "cached" for silent calls and "fresh-N" for interactive ones
type fakeTokens struct {
	mu          sync.Mutex
	silentErr   error
	interactErr error
	interactive int
	invalidated []string
}

func (f *fakeTokens) Token(ctx context.Context, interactive bool) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !interactive {
		if f.silentErr != nil {
			return "", f.silentErr
		}
		return "cached", nil
	}
	if f.interactErr != nil {
		return "", f.interactErr
	}
	f.interactive++
	return "fresh", nil
}

func (f *fakeTokens) Invalidate(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, token)
	return nil
}

type recordedRequest struct {
	method string
	path   string
	query  string
	auth   string
	body   map[string]interface{}
}

// sheetsServer answers with status chosen per bearer token
type sheetsServer struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   map[string]int
}

func (s *sheetsServer) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]interface{}
		_ = json.Unmarshal(raw, &body)

		auth := r.Header.Get("Authorization")
		s.mu.Lock()
		s.requests = append(s.requests, recordedRequest{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			auth:   auth,
			body:   body,
		})
		status, ok := s.status[strings.TrimPrefix(auth, "Bearer ")]
		s.mu.Unlock()
		if !ok {
			status = http.StatusOK
		}

		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"code":` + strconv.Itoa(status) + `,"message":"denied by test","status":"FAILED"}}`))
			return
		}
		if strings.HasSuffix(r.URL.Path, ":append") {
			_, _ = w.Write([]byte(`{"spreadsheetId":"sheet-1","updates":{"updatedRange":"Posts!A7:P7","updatedRows":1}}`))
			return
		}
		_, _ = w.Write([]byte(`{"spreadsheetId":"sheet-1","updatedRange":"Posts!A3:P3"}`))
	}
}

func newServer(t *testing.T, status map[string]int) (*sheetsServer, *httptest.Server) {
	t.Helper()
	s := &sheetsServer{status: status}
	srv := httptest.NewServer(s.handler())
	t.Cleanup(srv.Close)
	return s, srv
}

func testRow() domain.SheetRow {
	return domain.SheetRow{
		Timestamp:   time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		Source:      "linkedin",
		URL:         "https://www.linkedin.com/posts/abc",
		PostContent: "hello",
		Tags:        []string{"growth", "ai"},
		Intent:      "insight",
		Status:      "to review",
		URLHash:     "deadbeef",
	}
}

func TestAppend_Success(t *testing.T) {
	server, srv := newServer(t, nil)
	tokens := &fakeTokens{}
	client := NewClient(Config{Endpoint: srv.URL}, tokens, nil)

	rng, err := client.Append(context.Background(), "sheet-1", testRow())

	require.NoError(t, err)
	assert.Equal(t, "Posts!A7:P7", rng)
	require.Len(t, server.requests, 1)

	req := server.requests[0]
	assert.Equal(t, http.MethodPost, req.method)
	assert.Contains(t, req.path, "/v4/spreadsheets/sheet-1/values/")
	assert.True(t, strings.HasSuffix(req.path, ":append"))
	assert.Contains(t, req.query, "valueInputOption=RAW")
	assert.Equal(t, "Bearer cached", req.auth)

	values := req.body["values"].([]interface{})
	require.Len(t, values, 1)
	cells := values[0].([]interface{})
	require.Len(t, cells, len(domain.RowColumns))
	assert.Equal(t, "2026-03-01T09:30:00Z", cells[0])
	assert.Equal(t, "growth, ai", cells[10])
	assert.Equal(t, "deadbeef", cells[14])
	assert.Zero(t, tokens.interactive)
}

func TestAppend_RetriesOnceWithFreshToken(t *testing.T) {
	server, srv := newServer(t, map[string]int{"cached": http.StatusUnauthorized})
	tokens := &fakeTokens{}
	client := NewClient(Config{Endpoint: srv.URL}, tokens, nil)

	rng, err := client.Append(context.Background(), "sheet-1", testRow())

	require.NoError(t, err)
	assert.Equal(t, "Posts!A7:P7", rng)
	require.Len(t, server.requests, 2)
	assert.Equal(t, "Bearer cached", server.requests[0].auth)
	assert.Equal(t, "Bearer fresh", server.requests[1].auth)
	assert.Equal(t, []string{"cached"}, tokens.invalidated)
	assert.Equal(t, 1, tokens.interactive)
}

func TestAppend_SecondAuthFailureIsUnauthorized(t *testing.T) {
	server, srv := newServer(t, map[string]int{
		"cached": http.StatusUnauthorized,
		"fresh":  http.StatusForbidden,
	})
	client := NewClient(Config{Endpoint: srv.URL}, &fakeTokens{}, nil)

	_, err := client.Append(context.Background(), "sheet-1", testRow())

	require.Error(t, err)
	assert.True(t, coreerrors.HasCode(err, coreerrors.CodeUnauthorized))
	assert.Len(t, server.requests, 2, "retried exactly once")
}

func TestAppend_ServerErrorIsAppendFailed(t *testing.T) {
	server, srv := newServer(t, map[string]int{"cached": http.StatusBadRequest})
	client := NewClient(Config{Endpoint: srv.URL}, &fakeTokens{}, nil)

	_, err := client.Append(context.Background(), "sheet-1", testRow())

	require.Error(t, err)
	assert.True(t, coreerrors.HasCode(err, coreerrors.CodeSheetsAppendFailed))
	assert.Contains(t, err.Error(), "denied by test")
	assert.Len(t, server.requests, 1, "no retry for non-auth failures")

	var saveErr *coreerrors.SaveError
	require.True(t, errors.As(err, &saveErr))
	assert.Equal(t, http.StatusBadRequest, saveErr.Status)
}

func TestAppend_TokenFailureIsUnauthorized(t *testing.T) {
	server, srv := newServer(t, nil)
	client := NewClient(Config{Endpoint: srv.URL}, &fakeTokens{silentErr: errors.New("consent required")}, nil)

	_, err := client.Append(context.Background(), "sheet-1", testRow())

	assert.True(t, coreerrors.HasCode(err, coreerrors.CodeUnauthorized))
	assert.Empty(t, server.requests)
}

func TestAppend_InteractiveTokenFailureIsUnauthorized(t *testing.T) {
	_, srv := newServer(t, map[string]int{"cached": http.StatusUnauthorized})
	client := NewClient(Config{Endpoint: srv.URL}, &fakeTokens{interactErr: errors.New("user closed dialog")}, nil)

	_, err := client.Append(context.Background(), "sheet-1", testRow())

	assert.True(t, coreerrors.HasCode(err, coreerrors.CodeUnauthorized))
}

func TestAppend_NoResponseIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	client := NewClient(Config{Endpoint: endpoint}, &fakeTokens{}, nil)
	_, err := client.Append(context.Background(), "sheet-1", testRow())

	assert.True(t, coreerrors.HasCode(err, coreerrors.CodeNetworkError))
}

func TestUpdate_WritesInPlace(t *testing.T) {
	server, srv := newServer(t, nil)
	client := NewClient(Config{Endpoint: srv.URL}, &fakeTokens{}, nil)

	err := client.Update(context.Background(), "sheet-1", "Posts!A3:P3", testRow())

	require.NoError(t, err)
	require.Len(t, server.requests, 1)
	assert.Equal(t, http.MethodPut, server.requests[0].method)
	assert.False(t, strings.HasSuffix(server.requests[0].path, ":append"))
	assert.Contains(t, server.requests[0].query, "valueInputOption=RAW")
}

func TestAppend_FormulaLikeTextStaysLiteral(t *testing.T) {
	server, srv := newServer(t, nil)
	client := NewClient(Config{Endpoint: srv.URL}, &fakeTokens{}, nil)
	row := testRow()
	row.PostContent = `=HYPERLINK("https://evil.example","click")`
	row.Notes = "0012"

	_, err := client.Append(context.Background(), "sheet-1", row)
	require.NoError(t, err)
	err = client.Update(context.Background(), "sheet-1", "Posts!A3:P3", row)
	require.NoError(t, err)

	require.Len(t, server.requests, 2)
	for _, req := range server.requests {
		assert.Contains(t, req.query, "valueInputOption=RAW")
		assert.NotContains(t, req.query, "USER_ENTERED")
		cells := req.body["values"].([]interface{})[0].([]interface{})
		assert.Equal(t, row.PostContent, cells[3])
		assert.Equal(t, "0012", cells[15])
	}
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Config{}, nil, nil)

	assert.Equal(t, DefaultRange, client.Range())
	assert.Equal(t, DefaultEndpoint, client.cfg.Endpoint)
}

func TestAppend_NoTokenProvider(t *testing.T) {
	_, srv := newServer(t, nil)
	client := NewClient(Config{Endpoint: srv.URL}, nil, nil)

	_, err := client.Append(context.Background(), "sheet-1", testRow())

	assert.True(t, coreerrors.HasCode(err, coreerrors.CodeUnauthorized))
}
