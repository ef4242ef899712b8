// ABOUTME: Spreadsheet sync client appends and updates capture rows in a Google sheet
// ABOUTME: Acquires bearer tokens per call and retries once with a fresh token on auth failure

package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"postsheet-api/core/domain"
	coreerrors "postsheet-api/core/errors"
	"postsheet-api/core/interfaces"
)

const (
	// DefaultRange covers the sixteen row columns of the Posts tab
	DefaultRange = "Posts!A:P"

	// DefaultEndpoint is the public Sheets API base URL
	DefaultEndpoint = "https://sheets.googleapis.com/"

	// cells are stored as sent, never parsed as formulas, numbers or dates
	valueInputOption = "RAW"
	insertDataOption = "INSERT_ROWS"
)

// Config configures the spreadsheet client
type Config struct {
	// Range is the A1 range rows are appended to
	Range string

	// Endpoint overrides the API base URL
	Endpoint string

	// HTTPClient carries requests; it must not add its own credentials
	HTTPClient *http.Client
}

// Client persists rows through the Sheets API
type Client struct {
	cfg    Config
	tokens interfaces.TokenProvider
	logger interfaces.Logger

	once    sync.Once
	service *gsheets.Service
	initErr error
}

// NewClient creates a spreadsheet client
func NewClient(cfg Config, tokens interfaces.TokenProvider, logger interfaces.Logger) *Client {
	if cfg.Range == "" {
		cfg.Range = DefaultRange
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if !strings.HasSuffix(cfg.Endpoint, "/") {
		cfg.Endpoint += "/"
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	return &Client{
		cfg:    cfg,
		tokens: tokens,
		logger: logger,
	}
}

// Range returns the configured append range
func (c *Client) Range() string {
	return c.cfg.Range
}

func (c *Client) sheetsService(ctx context.Context) (*gsheets.Service, error) {
	c.once.Do(func() {
		c.service, c.initErr = gsheets.NewService(ctx,
			option.WithHTTPClient(c.cfg.HTTPClient),
			option.WithEndpoint(c.cfg.Endpoint),
		)
	})
	return c.service, c.initErr
}

// Append adds the row after the last row of the configured range and
// returns the A1 range the backend wrote to
func (c *Client) Append(ctx context.Context, sheetID string, row domain.SheetRow) (string, error) {
	svc, err := c.sheetsService(ctx)
	if err != nil {
		return "", coreerrors.NewSaveError(coreerrors.CodeInternal, "sheets service", err)
	}

	values := rowValues(row)
	var updated string
	err = c.withAuth(ctx, "append", func(token string) error {
		call := svc.Spreadsheets.Values.Append(sheetID, c.cfg.Range, values).
			ValueInputOption(valueInputOption).
			InsertDataOption(insertDataOption).
			Context(ctx)
		call.Header().Set("Authorization", "Bearer "+token)

		resp, err := call.Do()
		if err != nil {
			return err
		}
		if resp.Updates != nil {
			updated = resp.Updates.UpdatedRange
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	c.debug("Appended sheet row", map[string]interface{}{
		"sheet_id": sheetID,
		"range":    updated,
		"url_hash": row.URLHash,
	})
	return updated, nil
}

// Update overwrites the row at rangeA1
func (c *Client) Update(ctx context.Context, sheetID, rangeA1 string, row domain.SheetRow) error {
	svc, err := c.sheetsService(ctx)
	if err != nil {
		return coreerrors.NewSaveError(coreerrors.CodeInternal, "sheets service", err)
	}

	values := rowValues(row)
	err = c.withAuth(ctx, "update", func(token string) error {
		call := svc.Spreadsheets.Values.Update(sheetID, rangeA1, values).
			ValueInputOption(valueInputOption).
			Context(ctx)
		call.Header().Set("Authorization", "Bearer "+token)

		_, err := call.Do()
		return err
	})
	if err != nil {
		return err
	}

	c.debug("Updated sheet row", map[string]interface{}{
		"sheet_id": sheetID,
		"range":    rangeA1,
		"url_hash": row.URLHash,
	})
	return nil
}

// withAuth runs call with a cached token, and once more with an
// interactively acquired token when the first is rejected
func (c *Client) withAuth(ctx context.Context, op string, call func(token string) error) error {
	if c.tokens == nil {
		return coreerrors.NewSaveError(coreerrors.CodeUnauthorized, "no token provider configured", nil)
	}

	token, err := c.tokens.Token(ctx, false)
	if err != nil {
		return coreerrors.NewSaveError(coreerrors.CodeUnauthorized, "token acquisition failed", err)
	}

	err = call(token)
	if err == nil {
		return nil
	}
	if !isAuthFailure(err) {
		return classify(op, err)
	}

	c.warn("Sheets rejected token, retrying with a fresh one", map[string]interface{}{
		"op":     op,
		"status": statusOf(err),
	})
	if invErr := c.tokens.Invalidate(ctx, token); invErr != nil {
		c.warn("Token invalidation failed", map[string]interface{}{
			"error": invErr.Error(),
		})
	}

	token, err = c.tokens.Token(ctx, true)
	if err != nil {
		return coreerrors.NewSaveError(coreerrors.CodeUnauthorized, "token acquisition failed", err)
	}

	err = call(token)
	if err == nil {
		return nil
	}
	if isAuthFailure(err) {
		return &coreerrors.SaveError{
			Code:    coreerrors.CodeUnauthorized,
			Message: "sheets rejected credentials",
			Status:  statusOf(err),
			Cause:   err,
		}
	}
	return classify(op, err)
}

// classify maps a non-auth transport or API failure onto a save error
func classify(op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(apiErr.Code)
		}
		return &coreerrors.SaveError{
			Code:    coreerrors.CodeSheetsAppendFailed,
			Message: fmt.Sprintf("%s %d: %s", op, apiErr.Code, msg),
			Status:  apiErr.Code,
			Cause:   err,
		}
	}
	return coreerrors.NewSaveError(coreerrors.CodeNetworkError, op+" request failed", err)
}

func isAuthFailure(err error) bool {
	code := statusOf(err)
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

func statusOf(err error) int {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}

func rowValues(row domain.SheetRow) *gsheets.ValueRange {
	cells := row.Cells()
	values := make([]interface{}, len(cells))
	for i, cell := range cells {
		values[i] = cell
	}
	return &gsheets.ValueRange{
		MajorDimension: "ROWS",
		Values:         [][]interface{}{values},
	}
}

func (c *Client) debug(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Debug(msg, fields)
	}
}

func (c *Client) warn(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Warn(msg, fields)
	}
}
