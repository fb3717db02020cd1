package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/datahawk-io/datahawk-go/internal/constants"
	"github.com/datahawk-io/datahawk-go/pkg/datahawk"
)

// TokenManager produces bearer tokens for authenticated API calls.
type TokenManager interface {
	// GetToken returns a token that was fresh at the time of the check, an
	// empty string when the manager holds nothing and has no way to acquire
	// anything, or an error when acquisition or decoding fails.
	GetToken(ctx context.Context) (string, error)
	// RefreshToken forces a new client_credentials grant.
	RefreshToken(ctx context.Context) error
	// SetToken manually installs a token.
	SetToken(token string)
}

// ClientCredentialsConfig configures a ClientCredentialsTokenManager.
type ClientCredentialsConfig struct {
	// TokenURL is the full token endpoint (".../v1/oauth/token").
	TokenURL string
	// Key and Secret are the OAuth2 client credentials.
	Key    string
	Secret string
	// Audience is the OAuth2 audience claim.
	Audience string
	// AccessToken optionally seeds the manager with a pre-supplied token.
	AccessToken string
	// HTTPClient overrides the client used for the grant request.
	HTTPClient *http.Client
	// Logger and Debug gate request/response trace events around the grant.
	Logger datahawk.Logger
	Debug  bool
}

// ClientCredentialsTokenManager acquires tokens via the OAuth2
// client_credentials grant and reuses them while their exp claim says they
// are fresh. Freshness is re-derived from the token itself on every check
// rather than cached separately.
type ClientCredentialsTokenManager struct {
	config     *ClientCredentialsConfig
	store      *TokenStore
	httpClient *http.Client

	// refreshMu serializes grant requests so concurrent callers that all
	// observe a stale token trigger one refresh, not one each.
	refreshMu sync.Mutex
}

// NewClientCredentialsTokenManager creates a token manager. A pre-supplied
// AccessToken is installed immediately and used until its exp claim lapses.
func NewClientCredentialsTokenManager(config *ClientCredentialsConfig) *ClientCredentialsTokenManager {
	store := NewTokenStore()
	if config.AccessToken != "" {
		store.Set(&Token{AccessToken: config.AccessToken, TokenType: "bearer"})
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.TokenHTTPTimeout}
	}

	return &ClientCredentialsTokenManager{
		config:     config,
		store:      store,
		httpClient: httpClient,
	}
}

// GetToken implements TokenManager.GetToken.
func (m *ClientCredentialsTokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()

	fresh, err := m.isFresh(token)
	if err != nil {
		return "", err
	}

	if fresh {
		return token.AccessToken, nil
	}

	if !m.hasCredentials() {
		// Nothing to replace a stale token with; the remote API is the
		// final validator either way.
		if token != nil {
			return token.AccessToken, nil
		}

		return "", nil
	}

	m.refreshMu.Lock()
	defer m.refreshMu.Unlock()

	// Another caller may have finished a grant while we waited for the lock.
	token = m.store.Get()

	fresh, err = m.isFresh(token)
	if err != nil {
		return "", err
	}

	if fresh {
		return token.AccessToken, nil
	}

	return m.acquire(ctx)
}

// RefreshToken implements TokenManager.RefreshToken.
func (m *ClientCredentialsTokenManager) RefreshToken(ctx context.Context) error {
	m.refreshMu.Lock()
	defer m.refreshMu.Unlock()

	_, err := m.acquire(ctx)

	return err
}

// SetToken implements TokenManager.SetToken.
func (m *ClientCredentialsTokenManager) SetToken(token string) {
	m.store.Set(&Token{AccessToken: token, TokenType: "bearer"})
}

func (m *ClientCredentialsTokenManager) hasCredentials() bool {
	return m.config.Key != "" && m.config.Secret != ""
}

// isFresh decodes the held token's exp claim. Tokens without an exp claim
// never go stale here. Malformed tokens surface as AuthError.
func (m *ClientCredentialsTokenManager) isFresh(token *Token) (bool, error) {
	if token == nil || token.AccessToken == "" {
		return false, nil
	}

	expiresAt, err := DecodeExpiry(token.AccessToken)
	if err != nil {
		return false, &datahawk.AuthError{Detail: err.Error()}
	}

	if expiresAt.IsZero() {
		return true, nil
	}

	return time.Now().Before(expiresAt), nil
}

type grantRequest struct {
	GrantType    string `json:"grant_type"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Audience     string `json:"audience"`
}

// acquire performs the client_credentials grant and installs the result.
// Caller must hold refreshMu.
func (m *ClientCredentialsTokenManager) acquire(ctx context.Context) (string, error) {
	body, err := json.Marshal(grantRequest{
		GrantType:    "client_credentials",
		ClientID:     m.config.Key,
		ClientSecret: m.config.Secret,
		Audience:     m.config.Audience,
	})
	if err != nil {
		return "", fmt.Errorf("encoding grant request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.TokenURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating grant request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	m.trace("Token Request", map[string]interface{}{
		"method": http.MethodPost,
		"url":    m.config.TokenURL,
	})

	resp, err := m.httpClient.Do(req)
	if err != nil {
		m.trace("Token Request Failed", map[string]interface{}{"error": err.Error()})

		return "", fmt.Errorf("requesting token: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading token response: %w", err)
	}

	m.trace("Token Response", map[string]interface{}{
		"status": resp.StatusCode,
	})

	if datahawk.IsClientOrServerError(resp.StatusCode) {
		return "", &datahawk.AuthError{
			StatusCode: resp.StatusCode,
			Detail:     string(respBody),
		}
	}

	var token Token

	err = json.Unmarshal(respBody, &token)
	if err != nil {
		return "", fmt.Errorf("parsing token response: %w", err)
	}

	m.store.Set(&token)

	return token.AccessToken, nil
}

func (m *ClientCredentialsTokenManager) trace(msg string, fields map[string]interface{}) {
	if m.config.Debug && m.config.Logger != nil {
		m.config.Logger.Debug(msg, fields)
	}
}
