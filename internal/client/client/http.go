package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/together/internal/common"
	"github.com/dmitrijs2005/together/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const (
	pathToken        = "token/"
	pathTokenRefresh = "token/refresh/"
	pathCurrentUser  = "users/me/"
	pathHealth       = "health/"

	maxBodySize = 1 << 20
)

// HTTPClient talks to the Together REST API. Authenticated calls go through
// an authTransport that attaches the stored bearer token and refreshes it
// when it has expired.
type HTTPClient struct {
	baseURL *url.URL
	plain   *http.Client
	authed  *http.Client
	tokens  TokenStore
	logger  logging.Logger

	refreshGroup singleflight.Group
	now          func() time.Time
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the API rooted at baseURL. The timeout
// applies to every request, including token refreshes.
func NewHTTPClient(baseURL string, tokens TokenStore, timeout time.Duration, logger logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("parse base url: %q is not absolute", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	c := &HTTPClient{
		baseURL: u,
		plain:   &http.Client{Timeout: timeout},
		tokens:  tokens,
		logger:  logger,
		now:     time.Now,
	}
	c.authed = &http.Client{
		Timeout:   timeout,
		Transport: &authTransport{base: http.DefaultTransport, client: c},
	}
	return c, nil
}

func (c *HTTPClient) endpoint(path string) string {
	return c.baseURL.ResolveReference(&url.URL{Path: path}).String()
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), r)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(common.RequestIDHeader, uuid.NewString())
	return req, nil
}

func (c *HTTPClient) do(hc *http.Client, req *http.Request) (*http.Response, error) {
	resp, err := hc.Do(req)
	if err != nil {
		c.logger.Warn(req.Context(), "request failed",
			"method", req.Method, "path", req.URL.Path,
			"request_id", req.Header.Get(common.RequestIDHeader), "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return resp, nil
}

// Login exchanges username/password for a token pair. Bad credentials come
// back as ErrInvalidCredentials.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (TokenPair, error) {
	req, err := c.newRequest(ctx, http.MethodPost, pathToken, map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return TokenPair{}, err
	}

	resp, err := c.do(c.plain, req)
	if err != nil {
		return TokenPair{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusUnauthorized:
		return TokenPair{}, ErrInvalidCredentials
	}
	if err := mapStatus(resp); err != nil {
		return TokenPair{}, err
	}

	var pair TokenPair
	if err := decodeBody(resp, &pair); err != nil {
		return TokenPair{}, err
	}
	if pair.Access == "" {
		return TokenPair{}, fmt.Errorf("%w: empty access token", ErrUnexpectedResponse)
	}
	return pair, nil
}

// CurrentUser fetches the identity payload of the logged-in user.
func (c *HTTPClient) CurrentUser(ctx context.Context) (json.RawMessage, error) {
	req, err := c.newRequest(ctx, http.MethodGet, pathCurrentUser, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(c.authed, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := mapStatus(resp); err != nil {
		return nil, err
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if !json.Valid(b) {
		return nil, fmt.Errorf("%w: body is not json", ErrUnexpectedResponse)
	}
	return json.RawMessage(b), nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, pathHealth, nil)
	if err != nil {
		return err
	}

	resp, err := c.do(c.plain, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))

	if resp.StatusCode/100 != 2 {
		return ErrUnavailable
	}
	return nil
}

// refresh trades the stored refresh token for a new access token and stores
// the result. Concurrent callers share one round trip.
func (c *HTTPClient) refresh(ctx context.Context) (string, error) {
	v, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		refreshToken, err := c.tokens.RefreshToken(ctx)
		if err != nil {
			return "", err
		}
		if refreshToken == "" {
			return "", ErrNoRefreshCredential
		}

		req, err := c.newRequest(ctx, http.MethodPost, pathTokenRefresh, map[string]string{"refresh": refreshToken})
		if err != nil {
			return "", err
		}
		resp, err := c.do(c.plain, req)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusBadRequest {
			return "", ErrUnauthorized
		}
		if err := mapStatus(resp); err != nil {
			return "", err
		}

		var pair TokenPair
		if err := decodeBody(resp, &pair); err != nil {
			return "", err
		}
		if pair.Access == "" {
			return "", fmt.Errorf("%w: empty access token", ErrUnexpectedResponse)
		}
		replaced, err := c.tokens.ReplaceTokens(ctx, refreshToken, pair.Access, pair.Refresh)
		if err != nil {
			return "", fmt.Errorf("store refreshed tokens: %w", err)
		}
		if !replaced {
			c.logger.Debug(ctx, "refreshed tokens discarded, stored credentials changed")
			return "", fmt.Errorf("%w: credentials changed during refresh", ErrNoRefreshCredential)
		}

		c.logger.Debug(ctx, "access token refreshed", "rotated", pair.Refresh != "")
		return pair.Access, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// mapStatus turns a non-2xx response into one of the package sentinels.
func mapStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode/100 == 2:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode >= 500,
		resp.StatusCode == http.StatusRequestTimeout,
		resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", ErrUnexpectedResponse, resp.StatusCode, strings.TrimSpace(string(b)))
	}
}

func decodeBody(resp *http.Response, v any) error {
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}
	return nil
}
