// ABOUTME: SavedRecord domain model is the persisted form of a capture keyed by content hash
// ABOUTME: Also defines the fixed-shape spreadsheet row built from a record

package domain

import (
	"strings"
	"time"
)

// SavedRecord is the local copy of a successfully saved capture
type SavedRecord struct {
	// URLHash is the content identifier of the canonical URL
	URLHash string `json:"urlHash"`

	URL         string    `json:"url"`
	PostContent string    `json:"post_content"`
	Highlight   string    `json:"highlight,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	Status      string    `json:"status"`
	Author      Author    `json:"author"`
	SavedAt     time.Time `json:"savedAt"`

	// SheetRange is the A1 range of the remote row, when the backend reported one
	SheetRange string `json:"sheetRange,omitempty"`
}

// Age returns how long ago the record was saved
func (r *SavedRecord) Age(now time.Time) time.Duration {
	return now.Sub(r.SavedAt)
}

// RowColumns is the header order of SheetRow
var RowColumns = []string{
	"timestamp", "source", "url", "post_content",
	"author_name", "author_headline", "author_company", "author_url",
	"highlight", "ai_summary", "ai_tags", "ai_intent", "ai_next_action",
	"status", "url_hash", "notes",
}

// SheetRow is one appended spreadsheet row
type SheetRow struct {
	Timestamp   time.Time `json:"timestamp"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	PostContent string    `json:"post_content"`
	Author      Author    `json:"author"`
	Highlight   string    `json:"highlight"`
	Summary     string    `json:"ai_summary"`
	Tags        []string  `json:"ai_tags"`
	Intent      string    `json:"ai_intent"`
	NextAction  string    `json:"ai_next_action"`
	Status      string    `json:"status"`
	URLHash     string    `json:"urlHash"`
	Notes       string    `json:"notes"`
}

// Cells renders the row as ordered string cells, empty for absent fields
func (r SheetRow) Cells() []string {
	ts := ""
	if !r.Timestamp.IsZero() {
		ts = r.Timestamp.UTC().Format(time.RFC3339)
	}
	return []string{
		ts,
		r.Source,
		r.URL,
		r.PostContent,
		r.Author.Name,
		r.Author.Headline,
		r.Author.Company,
		r.Author.URL,
		r.Highlight,
		r.Summary,
		strings.Join(r.Tags, ", "),
		r.Intent,
		r.NextAction,
		r.Status,
		r.URLHash,
		r.Notes,
	}
}
