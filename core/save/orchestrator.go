// ABOUTME: Save orchestrator sequences one capture through dedupe, enrichment and persistence
// ABOUTME: Remote persistence is the only fatal step; AI failures become advisory notices

package save

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"postsheet-api/core/canonical"
	"postsheet-api/core/domain"
	"postsheet-api/core/enrichment"
	coreerrors "postsheet-api/core/errors"
	"postsheet-api/core/interfaces"
	"postsheet-api/core/settings"
	"postsheet-api/pkg/featureflags"
	"postsheet-api/pkg/utils/duration"
	"postsheet-api/pkg/utils/html"
)

// State names a step of the save state machine
type State string

const (
	StateValidating        State = "validating"
	StateCheckingDuplicate State = "checking_duplicate"
	StateEnriching         State = "enriching"
	StatePersistingRemote  State = "persisting_remote"
	StatePersistingLocal   State = "persisting_local"
	StateNotifying         State = "notifying"
	StateDone              State = "done"
)

// DefaultStatus labels captures that arrive without one
const DefaultStatus = "to review"

// NotificationQueue accepts notifications for background delivery
type NotificationQueue interface {
	Enqueue(n domain.Notification) error
}

// DuplicateError is returned when the content id is already saved and the
// caller did not force an overwrite
type DuplicateError struct {
	Err    *coreerrors.SaveError
	Record domain.SavedRecord
}

func (e *DuplicateError) Error() string {
	return e.Err.Error()
}

// Unwrap exposes the coded save error
func (e *DuplicateError) Unwrap() error {
	return e.Err
}

// Config wires the orchestrator's collaborators
type Config struct {
	Records  interfaces.RecordStore
	Sheets   interfaces.SheetsClient
	Enricher interfaces.EnrichmentClient
	Settings interfaces.SettingsStore

	// Notifications may be nil to skip the notifying step
	Notifications NotificationQueue

	Session *Session
	Logger  interfaces.Logger
}

// Orchestrator runs the save pipeline
type Orchestrator struct {
	records       interfaces.RecordStore
	sheets        interfaces.SheetsClient
	enricher      interfaces.EnrichmentClient
	settings      interfaces.SettingsStore
	notifications NotificationQueue
	session       *Session
	logger        interfaces.Logger

	hasher canonical.Hasher
	locks  *keyedLocker
	now    func() time.Time
	newID  func() string
}

// Option customizes an orchestrator
type Option func(*Orchestrator)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// WithHasher overrides the content id hasher
func WithHasher(h canonical.Hasher) Option {
	return func(o *Orchestrator) {
		o.hasher = h
	}
}

// WithIDGenerator overrides notification id generation
func WithIDGenerator(newID func() string) Option {
	return func(o *Orchestrator) {
		o.newID = newID
	}
}

// New creates an orchestrator
func New(cfg Config, opts ...Option) *Orchestrator {
	session := cfg.Session
	if session == nil {
		session = NewSession()
	}
	o := &Orchestrator{
		records:       cfg.Records,
		sheets:        cfg.Sheets,
		enricher:      cfg.Enricher,
		settings:      cfg.Settings,
		notifications: cfg.Notifications,
		session:       session,
		logger:        cfg.Logger,
		hasher:        canonical.DefaultHasher,
		locks:         newKeyedLocker(),
		now:           time.Now,
		newID:         uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Session returns the state shared between save calls
func (o *Orchestrator) Session() *Session {
	return o.session
}

// Save persists one capture. Fatal failures are returned as *errors.SaveError,
// or *DuplicateError when the capture was saved before.
func (o *Orchestrator) Save(ctx context.Context, req domain.CaptureRequest) (*domain.SaveResult, error) {
	o.state(StateValidating, "", nil)
	req = o.prepare(req)
	if !req.HasRequiredFields() {
		return nil, coreerrors.NewSaveError(coreerrors.CodeMissingFields, "url and post_content are required", nil)
	}

	sheetID, err := o.settings.SheetID(ctx)
	if err != nil {
		return nil, coreerrors.NewSaveError(coreerrors.CodeInternal, "read sheet id", err)
	}
	if sheetID == "" {
		return nil, coreerrors.NewSaveError(coreerrors.CodeMissingSheetID, "no spreadsheet configured", nil)
	}

	urlHash := o.hasher.Hash(canonical.Canonicalize(req.URL))
	o.state(StateCheckingDuplicate, urlHash, nil)

	// held until the local record is written
	release, err := o.locks.Lock(ctx, urlHash)
	if err != nil {
		return nil, coreerrors.NewSaveError(coreerrors.CodeNetworkError, "timed out waiting for a concurrent save of this post", err)
	}
	unlock := sync.OnceFunc(release)
	defer unlock()

	existing, err := o.records.FindByHash(ctx, urlHash)
	if err != nil {
		return nil, coreerrors.NewSaveError(coreerrors.CodeInternal, "read record index", err)
	}
	if existing != nil && !req.Force {
		o.state(StateDone, urlHash, map[string]interface{}{"duplicate": true})
		return nil, &DuplicateError{
			Err: coreerrors.NewSaveError(coreerrors.CodeDuplicate,
				"already saved "+duration.HumanReadable(existing.Age(o.now()))+" ago", nil),
			Record: *existing,
		}
	}

	o.state(StateEnriching, urlHash, nil)
	outcome := o.enrich(ctx, req)

	o.state(StatePersistingRemote, urlHash, map[string]interface{}{"ai_status": string(outcome.Status)})
	row := o.buildRow(req, urlHash, outcome)
	sheetRange, updated, err := o.persistRemote(ctx, sheetID, existing, req.Force, row)
	if err != nil {
		o.logError("Remote persistence failed", urlHash, err)
		return nil, asSaveError(err)
	}

	o.state(StatePersistingLocal, urlHash, nil)
	record := domain.SavedRecord{
		URLHash:     urlHash,
		URL:         req.URL,
		PostContent: req.PostContent,
		Highlight:   req.Highlight,
		Status:      req.Status,
		Author:      req.Author,
		SavedAt:     row.Timestamp,
		SheetRange:  sheetRange,
	}
	if outcome.Succeeded() {
		record.Summary = outcome.Result.Summary
	}
	if err := o.records.Upsert(ctx, record); err != nil {
		o.logWarn("Local record upsert failed", urlHash, err)
	}
	unlock()
	if req.TabID != "" {
		o.session.ClearPending(req.TabID)
	}

	o.state(StateNotifying, urlHash, nil)
	notificationID := o.notify(ctx, sheetID, row, updated)

	o.state(StateDone, urlHash, nil)
	return &domain.SaveResult{
		Row:            row,
		AI:             outcome,
		Notices:        domain.NoticesFor(outcome),
		Updated:        updated,
		NotificationID: notificationID,
	}, nil
}

// prepare merges staged tab metadata and normalizes free text
func (o *Orchestrator) prepare(req domain.CaptureRequest) domain.CaptureRequest {
	if req.TabID != "" {
		if pending, ok := o.session.Pending(req.TabID); ok {
			req.Author = req.Author.Merge(pending.Author)
			if strings.TrimSpace(req.Highlight) == "" {
				req.Highlight = pending.Highlight
			}
		}
	}

	req.URL = strings.TrimSpace(req.URL)
	if req.IsHTML() {
		req.PostContent = html.StripHTML(req.PostContent)
		req.Highlight = html.StripHTML(req.Highlight)
	} else {
		req.PostContent = strings.TrimSpace(req.PostContent)
		req.Highlight = strings.TrimSpace(req.Highlight)
	}
	req.Notes = strings.TrimSpace(req.Notes)
	req.Status = strings.TrimSpace(req.Status)
	if req.Status == "" {
		req.Status = DefaultStatus
	}
	req.Source = strings.TrimSpace(req.Source)
	if req.Source == "" {
		req.Source = SourceFor(req.URL)
	}
	return req
}

func (o *Orchestrator) enrich(ctx context.Context, req domain.CaptureRequest) domain.AIOutcome {
	if req.AIResult != nil {
		result := enrichment.NormalizeResult(*req.AIResult)
		return domain.AIOutcome{Status: domain.AIStatusSuccess, Result: &result}
	}
	if !req.AIEnabled || o.enricher == nil {
		return domain.DisabledOutcome()
	}
	if featureflags.IsEnabled(ctx, featureflags.DisableAIEnrichment) {
		return domain.DisabledOutcome()
	}
	return o.enricher.Summarize(ctx, req)
}

func (o *Orchestrator) buildRow(req domain.CaptureRequest, urlHash string, outcome domain.AIOutcome) domain.SheetRow {
	row := domain.SheetRow{
		Timestamp:   o.now().UTC(),
		Source:      req.Source,
		URL:         req.URL,
		PostContent: req.PostContent,
		Author:      req.Author,
		Highlight:   req.Highlight,
		Status:      req.Status,
		URLHash:     urlHash,
		Notes:       req.Notes,
	}
	if outcome.Succeeded() {
		row.Summary = outcome.Result.Summary
		row.Tags = outcome.Result.Tags
		row.Intent = outcome.Result.Intent
		row.NextAction = outcome.Result.NextAction
	}
	return row
}

// persistRemote updates the known row in place on a forced re-save,
// otherwise appends a new row
func (o *Orchestrator) persistRemote(ctx context.Context, sheetID string, existing *domain.SavedRecord, force bool, row domain.SheetRow) (string, bool, error) {
	if force && existing != nil && existing.SheetRange != "" {
		if err := o.sheets.Update(ctx, sheetID, existing.SheetRange, row); err != nil {
			return "", false, err
		}
		return existing.SheetRange, true, nil
	}

	sheetRange, err := o.sheets.Append(ctx, sheetID, row)
	if err != nil {
		return "", false, err
	}
	return sheetRange, false, nil
}

func (o *Orchestrator) notify(ctx context.Context, sheetID string, row domain.SheetRow, updated bool) string {
	if o.notifications == nil || featureflags.IsEnabled(ctx, featureflags.DisableNotifications) {
		return ""
	}

	title := "Post saved"
	if updated {
		title = "Post updated"
	}
	n := domain.Notification{
		ID:      o.newID(),
		Title:   title,
		Message: notificationMessage(row),
		Link:    settings.SheetURL(sheetID),
		Tags:    []string{"postsheet", row.Source},
	}

	if err := o.notifications.Enqueue(n); err != nil {
		o.logWarn("Notification not queued", row.URLHash, err)
		return ""
	}
	o.session.RememberLink(n.ID, n.Link)
	return n.ID
}

func notificationMessage(row domain.SheetRow) string {
	text := row.Summary
	if text == "" {
		text = strings.Join(strings.Fields(row.PostContent), " ")
		if r := []rune(text); len(r) > 80 {
			text = string(r[:80]) + "..."
		}
	}
	if row.Author.Name != "" {
		return row.Author.Name + ": " + text
	}
	return text
}

// asSaveError keeps coded errors and files anything else under internal
func asSaveError(err error) error {
	var saveErr *coreerrors.SaveError
	if errors.As(err, &saveErr) {
		return err
	}
	return coreerrors.NewSaveError(coreerrors.CodeInternal, "save failed", err)
}

func (o *Orchestrator) state(s State, urlHash string, extra map[string]interface{}) {
	if o.logger == nil {
		return
	}
	fields := map[string]interface{}{"state": string(s)}
	if urlHash != "" {
		fields["url_hash"] = urlHash
	}
	for k, v := range extra {
		fields[k] = v
	}
	o.logger.Debug("Save state", fields)
}

func (o *Orchestrator) logWarn(msg, urlHash string, err error) {
	if o.logger != nil {
		o.logger.Warn(msg, map[string]interface{}{
			"url_hash": urlHash,
			"error":    err.Error(),
		})
	}
}

func (o *Orchestrator) logError(msg, urlHash string, err error) {
	if o.logger != nil {
		o.logger.Error(msg, map[string]interface{}{
			"url_hash": urlHash,
			"code":     string(coreerrors.CodeOf(err)),
			"error":    err.Error(),
		})
	}
}
