package bucket

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// APIError is a storage API rejection. Message is the human-readable
// error extracted from the response when the body followed the API's
// error envelope; Body is always the raw response.
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("storage api error: '%s' (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("storage api error: status %d: %s", e.StatusCode, e.Body)
}

func parseErrorResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("request failed with status %d and unreadable body: %w", resp.StatusCode, err)
	}

	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
	if json.Unmarshal(body, &envelope) == nil {
		apiErr.Message = envelope.Error.Message
	}
	return apiErr
}

// authorize attaches the Authorization header for the next request.
func (b *Bucket) authorize(req *http.Request) error {
	token, err := b.tokens.Token(req.Context())
	if err != nil {
		return fmt.Errorf("obtaining access token: %w", err)
	}
	req.Header.Set("Authorization", token.TokenType+" "+token.AccessToken)
	return nil
}

// do runs an authorized request and decodes the JSON response into
// result, if non-nil.
func (b *Bucket) do(req *http.Request, result any) error {
	if err := b.authorize(req); err != nil {
		return err
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	if resp.StatusCode >= 400 {
		return parseErrorResponse(resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// doRaw runs an authorized request and returns the raw response body,
// for media downloads.
func (b *Bucket) doRaw(req *http.Request) ([]byte, error) {
	if err := b.authorize(req); err != nil {
		return nil, err
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("connection failed: %w", err)
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	if resp.StatusCode >= 400 {
		return nil, parseErrorResponse(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return data, nil
}
