package mappers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postsheet-api/api/dto/requests"
	"postsheet-api/core/domain"
)

func TestToCaptureRequest(t *testing.T) {
	body := requests.CaptureRequest{
		URL:            "https://www.linkedin.com/posts/x?utm_source=share",
		PostContent:    "hello",
		Status:         "later",
		AIEnabled:      true,
		Force:          true,
		AuthorName:     "Ada",
		AuthorHeadline: "Engineer",
		AuthorCompany:  "Analytical",
		AuthorURL:      "https://example.com/ada",
		TabID:          "tab-7",
		AIResult:       &requests.AIResultBody{Summary: "s", Tags: []string{"a"}, Intent: "learn"},
	}

	got := ToCaptureRequest(body)

	assert.Equal(t, body.URL, got.URL)
	assert.True(t, got.AIEnabled)
	assert.True(t, got.Force)
	assert.Equal(t, "tab-7", got.TabID)
	assert.Equal(t, domain.Author{Name: "Ada", Headline: "Engineer", Company: "Analytical", URL: "https://example.com/ada"}, got.Author)
	require.NotNil(t, got.AIResult)
	assert.Equal(t, "s", got.AIResult.Summary)
	assert.Equal(t, []string{"a"}, got.AIResult.Tags)
}

func TestToCaptureRequest_NoAIResult(t *testing.T) {
	got := ToCaptureRequest(requests.CaptureRequest{URL: "u", PostContent: "c"})
	assert.Nil(t, got.AIResult)
	assert.True(t, got.Author.IsEmpty())
}

func TestToSaveResponse_NeverNilNotices(t *testing.T) {
	resp := ToSaveResponse(&domain.SaveResult{AI: domain.DisabledOutcome()})
	assert.True(t, resp.OK)
	assert.NotNil(t, resp.Notices)
}

func TestToRecordListResponse(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	records := []domain.SavedRecord{
		{URLHash: "h1", URL: "https://a", SavedAt: now.Add(-2 * time.Hour)},
		{URLHash: "h2", URL: "https://b", SavedAt: now.Add(-48 * time.Hour)},
	}

	got := ToRecordListResponse(records, now)

	require.Equal(t, 2, got.Count)
	assert.Equal(t, "h1", got.Records[0].URLHash)
	assert.Equal(t, "2 hours", got.Records[0].SavedAgo)
	assert.Equal(t, "2 days", got.Records[1].SavedAgo)
}
