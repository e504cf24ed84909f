// Package auth implements the authorization-code flow of the AeroFS
// appliance: building the authorize URL, exchanging a code for a bearer
// token, and revoking or inspecting that token.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/Ning0612/aerofs-go/internal/logger"
	"github.com/Ning0612/aerofs-go/pkg/api"
)

// Config describes the registered application
type Config struct {
	Hostname     string
	ClientID     string
	ClientSecret string
	RedirectURI  string

	// Scheme defaults to https
	Scheme string
	// BaseURL overrides {scheme}://{hostname}
	BaseURL    string
	HTTPClient *http.Client
}

// TokenInfo is the result of a token introspection
type TokenInfo struct {
	ExpiresIn int64     `json:"expires_in"`
	Principal Principal `json:"principal"`
	// MDID identifies the mobile device the token was issued to, if any
	MDID   string   `json:"mdid"`
	Scopes []string `json:"scopes"`
}

type Principal struct {
	Name       string            `json:"name"`
	Attributes map[string]string `json:"attributes"`
}

// Client talks to the token endpoints
type Client struct {
	oauth      *oauth2.Config
	baseURL    string
	httpClient *http.Client
	log        logger.Logger
}

// New builds a Client
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		if cfg.Hostname == "" {
			return nil, errors.New("auth: hostname is required")
		}
		scheme := cfg.Scheme
		if scheme == "" {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s", scheme, cfg.Hostname)
	}
	if cfg.ClientID == "" {
		return nil, errors.New("auth: client id is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Endpoint: oauth2.Endpoint{
				AuthURL:   base + "/authorize",
				TokenURL:  base + "/auth/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		baseURL:    base,
		httpClient: httpClient,
		log:        logger.With("component", "auth"),
	}, nil
}

// AuthorizationURL returns the page the user visits to grant access. The
// service expects scopes joined by commas rather than spaces.
func (c *Client) AuthorizationURL(scopes []string, state string) string {
	var opts []oauth2.AuthCodeOption
	if len(scopes) > 0 {
		opts = append(opts, oauth2.SetAuthURLParam("scope", strings.Join(scopes, ",")))
	}
	return c.oauth.AuthCodeURL(state, opts...)
}

// Exchange trades an authorization code for a token. A code that was already
// used, expired or never issued yields (nil, nil); every other failure is
// returned as an error.
func (c *Client) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.ErrorCode == "invalid_grant" {
			c.log.Info("authorization code rejected", "error", re.ErrorCode)
			return nil, nil
		}
		return nil, fmt.Errorf("auth: exchange code: %w", err)
	}

	c.log.Debug("token issued", "type", tok.TokenType)
	return tok, nil
}

// Revoke invalidates a token
func (c *Client) Revoke(ctx context.Context, token string) error {
	route := "/auth/token/" + url.PathEscape(token)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+route, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := api.CheckResponse(http.MethodDelete, "/auth/token", resp); err != nil {
		return err
	}
	c.log.Info("token revoked")
	return nil
}

// Introspect validates a token and describes what it grants. The request is
// authenticated with the application credentials.
func (c *Client) Introspect(ctx context.Context, token string) (*TokenInfo, error) {
	u := c.baseURL + "/auth/tokeninfo?" + url.Values{"access_token": {token}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.oauth.ClientID, c.oauth.ClientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := api.CheckResponse(http.MethodGet, "/auth/tokeninfo", resp); err != nil {
		return nil, err
	}

	var info TokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("auth: decode token info: %w", err)
	}
	return &info, nil
}
