// ABOUTME: Request DTOs for the capture endpoints
// ABOUTME: Field names follow the capture message sent by the browser extension

package requests

// AIResultBody is an enrichment the caller computed ahead of time
type AIResultBody struct {
	Summary    string   `json:"summary,omitempty" doc:"Summary, cut to 160 characters"`
	Tags       []string `json:"tags,omitempty" doc:"Up to five tags"`
	Intent     string   `json:"intent,omitempty" doc:"One of the intent values"`
	NextAction string   `json:"next_action,omitempty" doc:"Suggested follow-up"`
	TokensIn   int      `json:"tokens_in,omitempty"`
	TokensOut  int      `json:"tokens_out,omitempty"`
}

// CaptureRequest is the body of POST /captures. url and post_content are
// checked by the save pipeline so they surface as missing_fields.
type CaptureRequest struct {
	URL         string `json:"url,omitempty" maxLength:"4096" doc:"Post URL as captured"`
	PostContent string `json:"post_content,omitempty" doc:"Post body text"`
	ContentType string `json:"contentType,omitempty" enum:"text,html" doc:"Set to html when post_content and highlight carry markup"`
	Highlight   string `json:"highlight,omitempty" doc:"User-selected excerpt"`
	Status      string `json:"status,omitempty" doc:"Review status label" example:"to review"`
	Notes       string `json:"notes,omitempty"`
	Source      string `json:"source,omitempty" doc:"Platform label; derived from the URL when empty"`

	AIEnabled bool          `json:"aiEnabled,omitempty" doc:"Request AI enrichment"`
	AIResult  *AIResultBody `json:"aiResult,omitempty" doc:"Precomputed enrichment; skips the AI service"`
	Force     bool          `json:"force,omitempty" doc:"Save even if the URL was saved before"`

	AuthorName     string `json:"authorName,omitempty"`
	AuthorHeadline string `json:"authorHeadline,omitempty"`
	AuthorCompany  string `json:"authorCompany,omitempty"`
	AuthorURL      string `json:"authorUrl,omitempty"`

	TabID string `json:"tabId,omitempty" doc:"Browser tab whose staged metadata should be merged"`
}

// PendingCaptureRequest stages author metadata for a tab ahead of its capture
type PendingCaptureRequest struct {
	AuthorName     string `json:"authorName,omitempty"`
	AuthorHeadline string `json:"authorHeadline,omitempty"`
	AuthorCompany  string `json:"authorCompany,omitempty"`
	AuthorURL      string `json:"authorUrl,omitempty"`
	Highlight      string `json:"highlight,omitempty"`
}
