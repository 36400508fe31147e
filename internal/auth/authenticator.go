package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Identity-provider endpoints. The host is applied consistently to the
// authorization and token endpoints; mixing IAM hosts across the two breaks
// the code exchange.
const (
	DefaultAuthorizeURL = "https://iam.viessmann-climatesolutions.com/idp/v3/authorize"
	DefaultTokenURL     = "https://iam.viessmann-climatesolutions.com/idp/v3/token"

	// DefaultScope requests API access plus a refresh token.
	DefaultScope = "IoT User offline_access"
)

// defaultHTTPTimeout bounds token-endpoint requests.
const defaultHTTPTimeout = 30 * time.Second

// staticTokenValidity is the nominal lifetime assumed for a pre-supplied
// access token. No refresh token or secret is guaranteed to exist in that
// mode, so the token is trusted until the provider rejects it.
const staticTokenValidity = 10 * 365 * 24 * time.Hour

// Config carries the client credentials and endpoints. Immutable after
// construction.
type Config struct {
	// ClientID identifies the application at the identity provider.
	// Required unless a pre-supplied AccessToken is given.
	ClientID string

	// ClientSecret is only needed for the refresh grant and the legacy
	// password grant; the PKCE code flow runs as a public client.
	ClientSecret string

	// AccessToken, when set, bypasses the whole flow: the token is adopted
	// as-is with a far-future nominal expiry and never refreshed.
	AccessToken string

	// RefreshToken optionally seeds the refresh grant when no stored
	// record carries one.
	RefreshToken string

	// Scope for the authorization request. Defaults to DefaultScope.
	Scope string

	// AuthorizeURL and TokenURL default to the Viessmann IAM v3 endpoints.
	AuthorizeURL string
	TokenURL     string

	// CallbackPort is the loopback redirect port. Defaults to
	// DefaultCallbackPort and must match the registered redirect URI.
	CallbackPort int

	// OnAuthURL, when set, receives the authorization URL before the flow
	// blocks on the callback, so callers can surface it for manual use.
	OnAuthURL func(authURL string)

	// HTTPClient optionally overrides the client used for token requests.
	HTTPClient *http.Client
}

// Authenticator owns the token lifecycle. All access to the in-process
// session goes through EnsureAuthenticated; there is no ambient global
// token state.
type Authenticator struct {
	mu         sync.Mutex
	cfg        Config
	store      Store
	httpClient *http.Client
	session    *TokenRecord

	// static marks a pre-supplied access token: adopt as-is, never refresh.
	static bool

	// openBrowser is swappable in tests.
	openBrowser func(url string) error
}

// NewAuthenticator creates an authenticator persisting through the given
// store.
func NewAuthenticator(cfg Config, store Store) (*Authenticator, error) {
	if cfg.AccessToken == "" && cfg.ClientID == "" {
		return nil, fmt.Errorf("client id is required")
	}
	if store == nil {
		return nil, fmt.Errorf("token store is required")
	}

	if cfg.Scope == "" {
		cfg.Scope = DefaultScope
	}
	if cfg.AuthorizeURL == "" {
		cfg.AuthorizeURL = DefaultAuthorizeURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	if cfg.CallbackPort == 0 {
		cfg.CallbackPort = DefaultCallbackPort
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}

	a := &Authenticator{
		cfg:         cfg,
		store:       store,
		httpClient:  httpClient,
		openBrowser: OpenBrowser,
	}

	if cfg.AccessToken != "" {
		a.static = true
		a.session = &TokenRecord{
			AccessToken:  cfg.AccessToken,
			RefreshToken: cfg.RefreshToken,
			TokenType:    "Bearer",
			ExpiresIn:    int(staticTokenValidity.Seconds()),
			CreatedAt:    time.Now(),
		}
	}

	return a, nil
}

// EnsureAuthenticated returns a non-expired access token, performing the
// cheapest step that can produce one: adopt the current session, adopt the
// stored record, refresh, or run the full interactive authorization.
//
// Callers issue this before every outgoing API request; when the session
// is still valid it is a pure in-memory check.
func (a *Authenticator) EnsureAuthenticated(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.static {
		return a.session.AccessToken, nil
	}

	if a.session != nil && !a.session.Expired() {
		return a.session.AccessToken, nil
	}

	// The on-disk copy is the source of truth across process restarts.
	stored, err := a.store.Load()
	if err == nil && !stored.Expired() {
		a.session = stored
		return stored.AccessToken, nil
	}

	if rt := a.refreshTokenCandidate(stored); rt != "" {
		fresh, rerr := a.refreshGrant(ctx, rt)
		if rerr == nil {
			a.adopt(fresh)
			return fresh.AccessToken, nil
		}
		slog.Warn("Token refresh failed, falling back to interactive authorization",
			"error", rerr.Error(),
		)
		// The stale record is unusable now; a dangling copy on disk would
		// just send the next run down the same failed path.
		_ = a.store.Delete()
		a.session = nil
	}

	fresh, err := a.authorizeInteractively(ctx)
	if err != nil {
		return "", err
	}
	a.adopt(fresh)
	return fresh.AccessToken, nil
}

// Login unconditionally runs the interactive authorization flow and adopts
// the result, replacing any current session.
func (a *Authenticator) Login(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.static {
		return fmt.Errorf("authenticator was constructed with a pre-supplied access token")
	}

	fresh, err := a.authorizeInteractively(ctx)
	if err != nil {
		return err
	}
	a.adopt(fresh)
	return nil
}

// Refresh forces a refresh grant with the best refresh token at hand and
// adopts the result. Unlike EnsureAuthenticated it does not fall back to
// the interactive flow; the failure is surfaced to the caller.
func (a *Authenticator) Refresh(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.static {
		return fmt.Errorf("authenticator was constructed with a pre-supplied access token")
	}

	stored, _ := a.store.Load()
	rt := a.refreshTokenCandidate(stored)
	if rt == "" {
		return fmt.Errorf("no refresh token available")
	}

	fresh, err := a.refreshGrant(ctx, rt)
	if err != nil {
		return err
	}
	a.adopt(fresh)
	return nil
}

// AuthenticateWithPassword runs the legacy resource-owner password grant
// and adopts the result.
//
// Deprecated: retained for compatibility with provider accounts that still
// allow it. New setups should use the interactive code flow.
func (a *Authenticator) AuthenticateWithPassword(ctx context.Context, username, password string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	fresh, err := a.passwordGrant(ctx, username, password)
	if err != nil {
		return err
	}
	a.adopt(fresh)
	return nil
}

// Session returns a read-only copy of the current in-memory token record,
// or nil when none is held. Diagnostic use only; API callers go through
// EnsureAuthenticated.
func (a *Authenticator) Session() *TokenRecord {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session == nil {
		return nil
	}
	cp := *a.session
	return &cp
}

// Logout drops the in-memory session and deletes the stored record.
func (a *Authenticator) Logout() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.session = nil
	return a.store.Delete()
}

// HasValidToken reports whether a non-expired token is available without
// touching the network.
func (a *Authenticator) HasValidToken() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.static {
		return true
	}
	if a.session != nil && !a.session.Expired() {
		return true
	}
	stored, err := a.store.Load()
	return err == nil && !stored.Expired()
}

// refreshTokenCandidate picks the refresh token to try: the stored
// record's, then the in-memory session's, then a configured one.
func (a *Authenticator) refreshTokenCandidate(stored *TokenRecord) string {
	if stored != nil && stored.RefreshToken != "" {
		return stored.RefreshToken
	}
	if a.session != nil && a.session.RefreshToken != "" {
		return a.session.RefreshToken
	}
	return a.cfg.RefreshToken
}

// adopt makes the record the current session and mirrors it to the store.
// A persistence failure is logged, not fatal: the token stays valid for
// this process.
func (a *Authenticator) adopt(rec *TokenRecord) {
	a.session = rec
	if err := a.store.Save(rec); err != nil {
		slog.Warn("Failed to persist token record",
			"error", err.Error(),
		)
	}
}

// authorizeInteractively drives one full authorization round-trip: PKCE
// pair and state, callback listener, best-effort browser launch, then the
// code exchange with the original verifier.
func (a *Authenticator) authorizeInteractively(ctx context.Context) (*TokenRecord, error) {
	pkce, err := GeneratePKCE()
	if err != nil {
		return nil, err
	}
	state, err := GenerateState()
	if err != nil {
		return nil, err
	}

	srv := NewCallbackServer(a.cfg.CallbackPort, state)
	redirectURI, err := srv.Start(ctx)
	if err != nil {
		return nil, err
	}

	authURL := a.buildAuthorizationURL(redirectURI, state, pkce)
	if a.cfg.OnAuthURL != nil {
		a.cfg.OnAuthURL(authURL)
	}

	slog.Debug("Starting interactive authorization",
		"redirect_uri", redirectURI,
	)

	// The browser launch and the callback wait run concurrently; only the
	// listener's outcome decides the flow.
	var code string
	g := new(errgroup.Group)
	g.Go(func() error {
		if berr := a.openBrowser(authURL); berr != nil {
			slog.Warn("Could not open browser, open the URL manually",
				"url", authURL,
				"error", berr.Error(),
			)
		}
		return nil
	})
	g.Go(func() error {
		c, werr := srv.Wait(ctx)
		if werr != nil {
			return werr
		}
		code = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rec, err := a.exchangeCode(ctx, code, pkce.CodeVerifier, redirectURI)
	if err != nil {
		return nil, err
	}

	slog.Info("Interactive authorization successful",
		"expires_in", rec.ExpiresIn,
		"has_refresh_token", rec.RefreshToken != "",
	)
	return rec, nil
}

// buildAuthorizationURL assembles the browser-facing authorization request.
func (a *Authenticator) buildAuthorizationURL(redirectURI, state string, pkce *PKCEChallenge) string {
	params := url.Values{
		"client_id":             {a.cfg.ClientID},
		"redirect_uri":          {redirectURI},
		"response_type":         {"code"},
		"scope":                 {a.cfg.Scope},
		"code_challenge":        {pkce.CodeChallenge},
		"code_challenge_method": {pkce.CodeChallengeMethod},
		"state":                 {state},
	}
	return a.cfg.AuthorizeURL + "?" + params.Encode()
}
