// ABOUTME: Notice and save result domain models returned to the capture producer
// ABOUTME: Notices are advisory messages derived from the AI outcome

package domain

import "fmt"

// NoticeLevel is the severity of an advisory notice
type NoticeLevel string

const (
	NoticeWarning NoticeLevel = "warning"
	NoticeInfo    NoticeLevel = "info"
)

// Notice is a user-facing advisory attached to a successful save
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
}

// NoticesFor derives notices purely from the AI outcome status
func NoticesFor(outcome AIOutcome) []Notice {
	switch outcome.Status {
	case AIStatusQuota:
		msg := "Daily AI summary limit reached. Saved without a summary."
		if outcome.Quota != nil && outcome.Quota.Limit > 0 {
			msg = fmt.Sprintf("Daily AI summary limit reached (%d/day). Saved without a summary.", outcome.Quota.Limit)
		}
		return []Notice{{Level: NoticeWarning, Code: "ai_quota", Message: msg}}
	case AIStatusTimeout:
		return []Notice{{Level: NoticeWarning, Code: "ai_timeout", Message: "AI summary timed out. Saved without a summary."}}
	case AIStatusError:
		return []Notice{{Level: NoticeWarning, Code: "ai_error", Message: "AI summary unavailable. Saved without a summary."}}
	default:
		return nil
	}
}

// SaveResult is the successful outcome of a save
type SaveResult struct {
	Row            SheetRow  `json:"row"`
	AI             AIOutcome `json:"ai"`
	Notices        []Notice  `json:"notices"`
	Updated        bool      `json:"updated"`
	NotificationID string    `json:"notificationId,omitempty"`
}

// Notification is a platform notification referencing the destination sheet
type Notification struct {
	ID      string
	Title   string
	Message string
	Link    string
	Tags    []string
}
