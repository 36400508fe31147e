package auth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// exchangeCode redeems an authorization code, together with the original
// PKCE verifier, at the token endpoint. No client secret is involved; the
// code flow runs as a public client.
func (a *Authenticator) exchangeCode(ctx context.Context, code, verifier, redirectURI string) (*TokenRecord, error) {
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"client_id":     {a.cfg.ClientID},
		"redirect_uri":  {redirectURI},
		"code_verifier": {verifier},
	}
	return a.tokenRequest(ctx, "authorization_code", form, false)
}

// refreshGrant trades a refresh token for a new record. The provider
// requires the client secret on this grant.
func (a *Authenticator) refreshGrant(ctx context.Context, refreshToken string) (*TokenRecord, error) {
	if a.cfg.ClientSecret == "" {
		return nil, ErrMissingClientSecret
	}

	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
		"client_id":     {a.cfg.ClientID},
		"client_secret": {a.cfg.ClientSecret},
	}
	return a.tokenRequest(ctx, "refresh_token", form, false)
}

// passwordGrant is the legacy resource-owner credentials exchange. The
// client authenticates with HTTP Basic auth on this grant.
func (a *Authenticator) passwordGrant(ctx context.Context, username, password string) (*TokenRecord, error) {
	if username == "" || password == "" || a.cfg.ClientSecret == "" {
		return nil, ErrMissingCredentials
	}

	form := url.Values{
		"grant_type": {"password"},
		"username":   {username},
		"password":   {password},
		"client_id":  {a.cfg.ClientID},
	}
	return a.tokenRequest(ctx, "password", form, true)
}

// tokenRequest posts a form-encoded grant to the token endpoint and decodes
// the standard token response. Failures carry the provider's status and
// body in a *TokenRequestError.
func (a *Authenticator) tokenRequest(ctx context.Context, grant string, form url.Values, basicAuth bool) (*TokenRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &TokenRequestError{Grant: grant, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	if basicAuth {
		req.SetBasicAuth(a.cfg.ClientID, a.cfg.ClientSecret)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, &TokenRequestError{Grant: grant, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TokenRequestError{Grant: grant, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &TokenRequestError{
			Grant:      grant,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var tr struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    int    `json:"expires_in"`
		TokenType    string `json:"token_type"`
	}
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, &TokenRequestError{Grant: grant, Err: err}
	}

	rec := &TokenRecord{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		ExpiresIn:    tr.ExpiresIn,
		TokenType:    tr.TokenType,
		CreatedAt:    time.Now(),
	}
	if rec.TokenType == "" {
		rec.TokenType = "Bearer"
	}
	return rec, nil
}
