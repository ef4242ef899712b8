// ABOUTME: OAuth2 token provider for the Sheets API backed by a stored refresh token
// ABOUTME: Caches access tokens in the shared cache and collapses concurrent refreshes

package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"golang.org/x/sync/singleflight"
	gsheets "google.golang.org/api/sheets/v4"

	"postsheet-api/core/interfaces"
)

const (
	// TokenCacheKey holds the current access token
	TokenCacheKey = "auth:sheets:token"

	// expiryLeeway treats tokens about to expire as already expired
	expiryLeeway = time.Minute
)

// ErrNotConfigured is returned when no OAuth client credentials are set
var ErrNotConfigured = errors.New("google oauth credentials not configured")

// Config configures the token provider
type Config struct {
	ClientID     string
	ClientSecret string
	RefreshToken string

	// TokenURL overrides the Google token endpoint
	TokenURL string

	// Scopes defaults to read/write spreadsheet access
	Scopes []string

	HTTPClient *http.Client
}

type cachedToken struct {
	AccessToken string    `json:"access_token"`
	Expiry      time.Time `json:"expiry"`
}

// TokenProvider implements interfaces.TokenProvider
type TokenProvider struct {
	oauth      *oauth2.Config
	httpClient *http.Client
	cache      interfaces.Cache
	logger     interfaces.Logger
	now        func() time.Time

	mu           sync.RWMutex
	refreshToken string

	group singleflight.Group
}

// NewTokenProvider creates a provider; cache may be nil to skip caching
func NewTokenProvider(cfg Config, cache interfaces.Cache, logger interfaces.Logger) (*TokenProvider, error) {
	if cfg.ClientID == "" || cfg.RefreshToken == "" {
		return nil, ErrNotConfigured
	}

	endpoint := googleoauth.Endpoint
	if cfg.TokenURL != "" {
		endpoint = oauth2.Endpoint{
			AuthURL:   googleoauth.Endpoint.AuthURL,
			TokenURL:  cfg.TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		}
	}
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{gsheets.SpreadsheetsScope}
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	return &TokenProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     endpoint,
			Scopes:       scopes,
		},
		httpClient:   httpClient,
		cache:        cache,
		logger:       logger,
		now:          time.Now,
		refreshToken: cfg.RefreshToken,
	}, nil
}

// Token returns a cached access token, or refreshes one. Interactive calls
// always refresh.
func (p *TokenProvider) Token(ctx context.Context, interactive bool) (string, error) {
	if !interactive {
		if tok, ok := p.cached(ctx); ok {
			return tok.AccessToken, nil
		}
	}

	v, err, shared := p.group.Do("refresh", func() (interface{}, error) {
		return p.refresh(ctx)
	})
	if err != nil {
		return "", err
	}
	if shared {
		p.debug("Joined in-flight token refresh", nil)
	}
	return v.(string), nil
}

// Invalidate drops the cached token if it is the one that was rejected
func (p *TokenProvider) Invalidate(ctx context.Context, token string) error {
	if p.cache == nil {
		return nil
	}
	tok, ok := p.cached(ctx)
	if ok && token != "" && tok.AccessToken != token {
		return nil
	}
	if err := p.cache.Delete(ctx, TokenCacheKey); err != nil {
		return fmt.Errorf("drop cached token: %w", err)
	}
	return nil
}

func (p *TokenProvider) refresh(ctx context.Context) (string, error) {
	p.mu.RLock()
	refreshToken := p.refreshToken
	p.mu.RUnlock()

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	tok, err := p.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		p.warn("Token refresh failed", map[string]interface{}{
			"error": err.Error(),
		})
		return "", fmt.Errorf("refresh access token: %w", err)
	}

	if tok.RefreshToken != "" && tok.RefreshToken != refreshToken {
		p.mu.Lock()
		p.refreshToken = tok.RefreshToken
		p.mu.Unlock()
		p.info("Refresh token rotated", nil)
	}

	p.store(ctx, tok)
	p.debug("Access token refreshed", map[string]interface{}{
		"expiry": tok.Expiry.Format(time.RFC3339),
	})
	return tok.AccessToken, nil
}

func (p *TokenProvider) cached(ctx context.Context) (cachedToken, bool) {
	if p.cache == nil {
		return cachedToken{}, false
	}
	data, err := p.cache.Get(ctx, TokenCacheKey)
	if err != nil {
		if !errors.Is(err, interfaces.ErrCacheMiss) {
			p.warn("Token cache read failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return cachedToken{}, false
	}

	var tok cachedToken
	if err := json.Unmarshal(data, &tok); err != nil || tok.AccessToken == "" {
		return cachedToken{}, false
	}
	if !tok.Expiry.IsZero() && !p.now().Add(expiryLeeway).Before(tok.Expiry) {
		return cachedToken{}, false
	}
	return tok, true
}

func (p *TokenProvider) store(ctx context.Context, tok *oauth2.Token) {
	if p.cache == nil {
		return
	}
	data, err := json.Marshal(cachedToken{AccessToken: tok.AccessToken, Expiry: tok.Expiry})
	if err != nil {
		return
	}

	var ttl time.Duration
	if !tok.Expiry.IsZero() {
		ttl = tok.Expiry.Sub(p.now())
		if ttl <= 0 {
			return
		}
	}
	if err := p.cache.Set(ctx, TokenCacheKey, data, ttl); err != nil {
		p.warn("Token cache write failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (p *TokenProvider) debug(msg string, fields map[string]interface{}) {
	if p.logger != nil {
		p.logger.Debug(msg, fields)
	}
}

func (p *TokenProvider) info(msg string, fields map[string]interface{}) {
	if p.logger != nil {
		p.logger.Info(msg, fields)
	}
}

func (p *TokenProvider) warn(msg string, fields map[string]interface{}) {
	if p.logger != nil {
		p.logger.Warn(msg, fields)
	}
}
