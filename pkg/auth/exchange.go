package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// grantType is the fixed grant used to trade a signed assertion for an
// access token (RFC 7523).
const grantType = "urn:ietf:params:oauth:grant-type:jwt-bearer"

// TokenResponse is the token endpoint's answer to a successful exchange.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Exchanger trades a signed assertion for an access token. It performs
// a single attempt: retry policy, if any, belongs to the caller.
type Exchanger interface {
	Exchange(ctx context.Context, tokenURL, assertion string) (*TokenResponse, error)
}

// HTTPExchanger is the production Exchanger, posting the jwt-bearer
// grant form-encoded to the token endpoint.
type HTTPExchanger struct {
	Client *http.Client
}

var _ Exchanger = (*HTTPExchanger)(nil)

func (e *HTTPExchanger) httpClient() *http.Client {
	if e.Client != nil {
		return e.Client
	}
	return http.DefaultClient
}

// Exchange performs the token exchange. Any non-200 answer is returned
// as an *AuthServerError carrying the status and body; a 200 answer
// that cannot be parsed or is missing required fields is returned as
// an error wrapping ErrMalformedResponse.
func (e *HTTPExchanger) Exchange(ctx context.Context, tokenURL, assertion string) (*TokenResponse, error) {
	form := url.Values{
		"grant_type": {grantType},
		"assertion":  {assertion},
	}

	req, err := http.NewRequestWithContext(ctx, "POST", tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := e.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("connecting to token endpoint: %w", err)
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &AuthServerError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var result TokenResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: decoding body: %v", ErrMalformedResponse, err)
	}
	if result.AccessToken == "" {
		return nil, fmt.Errorf("%w: missing access_token", ErrMalformedResponse)
	}
	if result.ExpiresIn <= 0 {
		return nil, fmt.Errorf("%w: missing expires_in", ErrMalformedResponse)
	}
	if result.TokenType == "" {
		result.TokenType = "Bearer"
	}

	return &result, nil
}
