// ABOUTME: Capture domain model represents a single user-initiated post capture
// ABOUTME: Carries the raw URL, text and author metadata for one save call

package domain

import "strings"

// Author holds the optional author fields scraped alongside a post
type Author struct {
	Name     string `json:"authorName,omitempty"`
	Headline string `json:"authorHeadline,omitempty"`
	Company  string `json:"authorCompany,omitempty"`
	URL      string `json:"authorUrl,omitempty"`
}

// IsEmpty reports whether no author field is set
func (a Author) IsEmpty() bool {
	return a.Name == "" && a.Headline == "" && a.Company == "" && a.URL == ""
}

// Merge fills blank fields of a from other
func (a Author) Merge(other Author) Author {
	if a.Name == "" {
		a.Name = other.Name
	}
	if a.Headline == "" {
		a.Headline = other.Headline
	}
	if a.Company == "" {
		a.Company = other.Company
	}
	if a.URL == "" {
		a.URL = other.URL
	}
	return a
}

// Content types of a capture's text fields
const (
	ContentTypeText = "text"
	ContentTypeHTML = "html"
)

// CaptureRequest is the ephemeral input of one save call.
// It has no identity and is owned by the orchestrator for the duration of the call.
type CaptureRequest struct {
	// URL is the post's address as captured, tracking noise included
	URL string

	// PostContent is the post body text
	PostContent string

	// ContentType is ContentTypeHTML when PostContent and Highlight carry markup
	ContentType string

	// Highlight is an optional user-selected excerpt
	Highlight string

	Author Author

	// Status is the user's label for the capture (e.g. "to review")
	Status string

	Notes string

	// Source names the platform; derived from the URL host when empty
	Source string

	// AIEnabled requests AI enrichment
	AIEnabled bool

	// AIResult is a precomputed enrichment; when set the AI service is not called
	AIResult *AIResult

	// Force bypasses the duplicate short-circuit
	Force bool

	// TabID links the capture to metadata staged earlier for the same tab
	TabID string

	// ClientIP and UserAgent feed the anonymous quota fingerprint
	ClientIP  string
	UserAgent string
}

// IsHTML reports whether the text fields were sent as markup
func (c *CaptureRequest) IsHTML() bool {
	return strings.EqualFold(strings.TrimSpace(c.ContentType), ContentTypeHTML)
}

// HasRequiredFields reports whether URL and body text are present
func (c *CaptureRequest) HasRequiredFields() bool {
	return strings.TrimSpace(c.URL) != "" && strings.TrimSpace(c.PostContent) != ""
}
