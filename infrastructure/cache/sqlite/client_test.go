package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postsheet-api/core/interfaces"
)

type logEntry struct {
	msg    string
	fields map[string]interface{}
}

type recordingLogger struct {
	mu       sync.Mutex
	warnings []logEntry
}

func (l *recordingLogger) Debug(string, map[string]interface{}) {}
func (l *recordingLogger) Info(string, map[string]interface{})  {}
func (l *recordingLogger) Error(string, map[string]interface{}) {}
func (l *recordingLogger) Warn(msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warnings = append(l.warnings, logEntry{msg: msg, fields: fields})
}

func newTestCache(t *testing.T, logger interfaces.Logger) *Client {
	t.Helper()
	c, err := NewSQLiteCacheWithLogger(filepath.Join(t.TempDir(), "cache.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestClient_SetGetDelete(t *testing.T) {
	c := newTestCache(t, nil)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "records:index", []byte(`{"a":1}`), time.Hour))

	got, err := c.Get(ctx, "records:index")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	require.NoError(t, c.Delete(ctx, "records:index"))
	_, err = c.Get(ctx, "records:index")
	assert.ErrorIs(t, err, interfaces.ErrCacheMiss)
}

func TestClient_MissingKeyIsCacheMiss(t *testing.T) {
	c := newTestCache(t, nil)

	_, err := c.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, interfaces.ErrCacheMiss)
}

func TestClient_ZeroTTLKeepsValue(t *testing.T) {
	c := newTestCache(t, nil)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "settings", []byte("x"), 0))
	c.cleanup()

	got, err := c.Get(ctx, "settings")
	require.NoError(t, err)
	assert.Equal(t, "x", string(got))
}

func TestClient_ExpiredValueIsMiss(t *testing.T) {
	c := newTestCache(t, nil)
	ctx := context.Background()

	_, err := c.db.Exec(setQuery, "old", []byte("v"), time.Now().Add(-time.Minute).Unix())
	require.NoError(t, err)

	_, err = c.Get(ctx, "old")
	assert.ErrorIs(t, err, interfaces.ErrCacheMiss)

	c.cleanup()
	stats, err := c.Stats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats["total_entries"])
}

func TestClient_EmptyValueRoundTrips(t *testing.T) {
	c := newTestCache(t, nil)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "empty", nil, 0))
	got, err := c.Get(ctx, "empty")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClient_BinaryIntegrity(t *testing.T) {
	c := newTestCache(t, nil)
	ctx := context.Background()

	data := make([]byte, 4096)
	for i := range data {
		data[i] = byte(i % 256)
	}
	require.NoError(t, c.Set(ctx, "bin", data, time.Hour))

	got, err := c.Get(ctx, "bin")
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestClient_InjectionShapedKeysAreData(t *testing.T) {
	logger := &recordingLogger{}
	c := newTestCache(t, logger)
	ctx := context.Background()

	key := "quota:ai:x';DROP TABLE cache;--"
	require.NoError(t, c.Set(ctx, key, []byte("1"), time.Hour))
	require.NoError(t, c.Set(ctx, "other", []byte("2"), time.Hour))

	got, err := c.Get(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, "2", string(got))

	got, err = c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "1", string(got))

	patterns := map[string]bool{}
	for _, w := range logger.warnings {
		patterns[w.fields["pattern"].(string)] = true
	}
	assert.True(t, patterns["'"])
	assert.True(t, patterns[";"])
	assert.True(t, patterns["--"])
}

func TestClient_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()

	c, err := NewSQLiteCache(path)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, "records:index", []byte("kept"), 0))
	require.NoError(t, c.Close())

	reopened, err := NewSQLiteCache(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "records:index")
	require.NoError(t, err)
	assert.Equal(t, "kept", string(got))
}

func TestClient_ConcurrentWriters(t *testing.T) {
	c := newTestCache(t, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, c.Set(ctx, "k", []byte{byte(i)}, time.Hour))
		}(i)
	}
	wg.Wait()

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestClient_Clear(t *testing.T) {
	c := newTestCache(t, nil)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), 0))
	require.NoError(t, c.Clear(ctx))

	stats, err := c.Stats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats["total_entries"])
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{name: "plain", key: "records:index"},
		{name: "empty", key: "", wantErr: true},
		{name: "null byte", key: "a\x00b", wantErr: true},
		{name: "too long", key: string(make([]byte, maxKeyLength+1)), wantErr: true},
		{name: "max length", key: func() string {
			b := make([]byte, maxKeyLength)
			for i := range b {
				b[i] = 'k'
			}
			return string(b)
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.key, nil)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateKey_TruncatesPreview(t *testing.T) {
	logger := &recordingLogger{}
	key := "'aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

	require.NoError(t, ValidateKey(key, logger))
	require.Len(t, logger.warnings, 1)
	preview := logger.warnings[0].fields["key_preview"].(string)
	assert.Len(t, preview, keyPreviewLen+3)
}

func TestValidateValue(t *testing.T) {
	assert.NoError(t, ValidateValue(nil))
	assert.NoError(t, ValidateValue(make([]byte, maxValueLength)))
	assert.Error(t, ValidateValue(make([]byte, maxValueLength+1)))
}
