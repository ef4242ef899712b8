// ABOUTME: ntfy-backed notifier for saved-post notifications
// ABOUTME: Publishes a plain-text message with title, tags and a click-through link to the sheet

package ntfy

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"postsheet-api/core/domain"
	coreerrors "postsheet-api/core/errors"
	"postsheet-api/core/interfaces"
)

// Notifier posts notifications to an ntfy topic
type Notifier struct {
	topicURL string
	client   interfaces.HTTPClient
}

// New creates a notifier for topicURL, e.g. https://ntfy.sh/my-topic
func New(topicURL string, client interfaces.HTTPClient) *Notifier {
	return &Notifier{
		topicURL: strings.TrimSpace(topicURL),
		client:   client,
	}
}

// Notify publishes n; a nil notifier or client is a no-op
func (n *Notifier) Notify(ctx context.Context, note domain.Notification) error {
	if n == nil || n.client == nil || n.topicURL == "" {
		return nil
	}

	headers := map[string]string{
		"Content-Type": "text/plain; charset=utf-8",
	}
	if note.Title != "" {
		headers["Title"] = note.Title
	}
	if len(note.Tags) > 0 {
		headers["Tags"] = strings.Join(note.Tags, ",")
	}
	if note.Link != "" {
		headers["Click"] = note.Link
	}

	resp, err := n.client.Do(ctx, http.MethodPost, n.topicURL, strings.NewReader(note.Message), headers)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body().Close()

	if resp.StatusCode() >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body(), 2048))
		return &coreerrors.ExternalAPIError{
			API:        "ntfy",
			StatusCode: resp.StatusCode(),
			Message:    strings.TrimSpace(string(body)),
		}
	}
	_, _ = io.Copy(io.Discard, resp.Body())
	return nil
}

// Noop discards notifications
type Noop struct{}

// Notify implements interfaces.Notifier
func (Noop) Notify(context.Context, domain.Notification) error { return nil }
