// ABOUTME: Response DTOs for capture and record endpoints
// ABOUTME: Keeps the {ok, ...} envelope the extension expects

package responses

import (
	"time"

	"postsheet-api/core/domain"
)

// SaveResponse is returned by a successful POST /captures
type SaveResponse struct {
	OK             bool             `json:"ok"`
	Row            domain.SheetRow  `json:"row"`
	AI             domain.AIOutcome `json:"ai"`
	Notices        []domain.Notice  `json:"notices"`
	Updated        bool             `json:"updated"`
	NotificationID string           `json:"notificationId,omitempty"`
}

// RecordResponse is one saved record
type RecordResponse struct {
	URLHash    string        `json:"urlHash"`
	URL        string        `json:"url"`
	Status     string        `json:"status"`
	Summary    string        `json:"summary,omitempty"`
	Highlight  string        `json:"highlight,omitempty"`
	Author     domain.Author `json:"author"`
	SavedAt    time.Time     `json:"savedAt"`
	SheetRange string        `json:"sheetRange,omitempty"`
	SavedAgo   string        `json:"savedAgo" doc:"Human readable age"`
}

// RecordListResponse lists saved records newest first
type RecordListResponse struct {
	Records []RecordResponse `json:"records"`
	Count   int              `json:"count"`
}

// QuotaResponse reports AI usage for the caller
type QuotaResponse struct {
	Licensed  bool `json:"licensed"`
	Limit     int  `json:"limit"`
	Count     int  `json:"count"`
	Remaining int  `json:"remaining"`
}

// NotificationLinkResponse resolves a notification id
type NotificationLinkResponse struct {
	ID   string `json:"id"`
	Link string `json:"link"`
}

// SettingsResponse is the visible settings view
type SettingsResponse struct {
	SheetID       string `json:"sheetId"`
	SheetURL      string `json:"sheetUrl,omitempty"`
	HasLicenseKey bool   `json:"hasLicenseKey"`
	LicenseHint   string `json:"licenseHint,omitempty"`
}
