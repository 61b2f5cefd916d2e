package alipay

import (
	"context"
	"fmt"
	"io"
	"net/http"

	json "github.com/json-iterator/go"
)

const maxResponseSize = 1 << 20

// Doer is the HTTP transport the client sends gateway requests through.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	cfg        Config
	httpClient Doer
}

type ClientOption func(*Client)

func WithHTTPClient(c Doer) ClientOption {
	return func(cli *Client) {
		cli.httpClient = c
	}
}

// NewClient validates cfg and returns a client bound to it. The config is
// copied and never changes afterwards.
func NewClient(cfg Config, opts ...ClientOption) (*Client, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Client{
		cfg:        cfg,
		httpClient: http.DefaultClient,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func (c *Client) Config() Config {
	return c.cfg
}

func (c *Client) AuthURL(state string) (string, error) {
	return AuthorizationURL(c.cfg, state)
}

// ExchangeCode trades an authorization code for an access token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	p, err := TokenRequest(c.cfg, code, nil)
	if err != nil {
		return nil, err
	}
	body, err := c.get(ctx, p)
	if err != nil {
		return nil, err
	}
	return ParseTokenResponse(c.cfg, body)
}

func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	p, err := RefreshRequest(c.cfg, refreshToken, nil)
	if err != nil {
		return nil, err
	}
	body, err := c.get(ctx, p)
	if err != nil {
		return nil, err
	}
	return ParseTokenResponse(c.cfg, body)
}

// UserProfile fetches the shared profile of the token owner.
func (c *Client) UserProfile(ctx context.Context, accessToken string) (*UserProfile, error) {
	p, err := ProfileRequest(c.cfg, accessToken, nil)
	if err != nil {
		return nil, err
	}
	body, err := c.get(ctx, p)
	if err != nil {
		return nil, err
	}
	return ParseProfileResponse(c.cfg, body)
}

// Login runs the code exchange and profile fetch back to back.
func (c *Client) Login(ctx context.Context, code string) (*TokenResponse, *UserProfile, error) {
	tk, err := c.ExchangeCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}
	up, err := c.UserProfile(ctx, tk.AccessToken)
	if err != nil {
		return nil, nil, err
	}
	return tk, up, nil
}

func (c *Client) get(ctx context.Context, p Params) ([]byte, error) {
	u, err := RequestURL(c.cfg, p)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode/100 != 2 && !json.Valid(body) {
		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected response: %s", http.StatusText(resp.StatusCode)),
		}
	}
	return body, nil
}
