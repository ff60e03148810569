package client

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/together/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// expirySkew refreshes tokens slightly before their exp claim.
const expirySkew = 10 * time.Second

// authTransport attaches the stored access token to outgoing requests.
//
// A token whose exp claim has passed is refreshed before sending. A 401
// response triggers one refresh and one retry when a refresh token exists;
// if that refresh fails the original 401 is returned untouched.
type authTransport struct {
	base   http.RoundTripper
	client *HTTPClient
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	token, err := t.client.tokens.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	refreshed := false
	if token != "" && tokenExpired(token, t.client.now()) {
		if fresh, err := t.client.refresh(ctx); err == nil {
			token, refreshed = fresh, true
		} else {
			t.client.logger.Debug(ctx, "proactive refresh failed", "error", err)
		}
	}

	resp, err := t.send(req, token)
	if err != nil || resp.StatusCode != http.StatusUnauthorized || refreshed {
		return resp, err
	}

	fresh, rerr := t.client.refresh(ctx)
	if rerr != nil {
		if !errors.Is(rerr, ErrNoRefreshCredential) {
			t.client.logger.Debug(ctx, "refresh after 401 failed", "error", rerr)
		}
		return resp, nil
	}

	if req.Body != nil && req.GetBody == nil {
		return resp, nil
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	retry := req.Clone(ctx)
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		retry.Body = body
	}
	return t.send(retry, fresh)
}

func (t *authTransport) send(req *http.Request, token string) (*http.Response, error) {
	out := req.Clone(req.Context())
	if token != "" {
		out.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}
	return t.base.RoundTrip(out)
}

// tokenExpired reports whether a JWT's exp claim is past. Tokens that are
// not JWTs, or carry no exp, are never considered expired here; the server
// will answer 401 for those.
func tokenExpired(token string, now time.Time) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !claims.ExpiresAt.Time.After(now.Add(expirySkew))
}
