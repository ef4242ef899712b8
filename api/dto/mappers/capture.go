// ABOUTME: Mappers for converting between domain models and API DTOs
// ABOUTME: Provides clean separation between business logic and API layer

package mappers

import (
	"time"

	"postsheet-api/api/dto/requests"
	"postsheet-api/api/dto/responses"
	"postsheet-api/core/domain"
	"postsheet-api/core/save"
	"postsheet-api/pkg/utils/duration"
)

// ToCaptureRequest converts the request body into a domain capture
func ToCaptureRequest(body requests.CaptureRequest) domain.CaptureRequest {
	capture := domain.CaptureRequest{
		URL:         body.URL,
		PostContent: body.PostContent,
		ContentType: body.ContentType,
		Highlight:   body.Highlight,
		Status:      body.Status,
		Notes:       body.Notes,
		Source:      body.Source,
		AIEnabled:   body.AIEnabled,
		Force:       body.Force,
		TabID:       body.TabID,
		Author: domain.Author{
			Name:     body.AuthorName,
			Headline: body.AuthorHeadline,
			Company:  body.AuthorCompany,
			URL:      body.AuthorURL,
		},
	}
	if body.AIResult != nil {
		capture.AIResult = &domain.AIResult{
			Summary:    body.AIResult.Summary,
			Tags:       body.AIResult.Tags,
			Intent:     body.AIResult.Intent,
			NextAction: body.AIResult.NextAction,
			TokensIn:   body.AIResult.TokensIn,
			TokensOut:  body.AIResult.TokensOut,
		}
	}
	return capture
}

// ToPendingCapture converts staged tab metadata
func ToPendingCapture(body requests.PendingCaptureRequest, now time.Time) save.PendingCapture {
	return save.PendingCapture{
		Author: domain.Author{
			Name:     body.AuthorName,
			Headline: body.AuthorHeadline,
			Company:  body.AuthorCompany,
			URL:      body.AuthorURL,
		},
		Highlight: body.Highlight,
		UpdatedAt: now,
	}
}

// ToSaveResponse wraps a save result in the ok envelope
func ToSaveResponse(result *domain.SaveResult) responses.SaveResponse {
	notices := result.Notices
	if notices == nil {
		notices = []domain.Notice{}
	}
	return responses.SaveResponse{
		OK:             true,
		Row:            result.Row,
		AI:             result.AI,
		Notices:        notices,
		Updated:        result.Updated,
		NotificationID: result.NotificationID,
	}
}

// ToRecordResponse converts a saved record
func ToRecordResponse(record domain.SavedRecord, now time.Time) responses.RecordResponse {
	return responses.RecordResponse{
		URLHash:    record.URLHash,
		URL:        record.URL,
		Status:     record.Status,
		Summary:    record.Summary,
		Highlight:  record.Highlight,
		Author:     record.Author,
		SavedAt:    record.SavedAt,
		SheetRange: record.SheetRange,
		SavedAgo:   duration.HumanReadable(record.Age(now)),
	}
}

// ToRecordListResponse converts a newest-first record list
func ToRecordListResponse(records []domain.SavedRecord, now time.Time) responses.RecordListResponse {
	out := responses.RecordListResponse{
		Records: make([]responses.RecordResponse, 0, len(records)),
		Count:   len(records),
	}
	for _, r := range records {
		out.Records = append(out.Records, ToRecordResponse(r, now))
	}
	return out
}
