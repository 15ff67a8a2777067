package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "meetscribe/internal/app/errors"
)

// RetryPolicy controls how transient poll failures are retried.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// DefaultRetryPolicy matches the providers config defaults.
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 3, Backoff: 2 * time.Second}

// GetJSON issues a GET with the given headers and decodes the body into
// out. Network failures and 5xx responses come back as transient
// provider errors and are retried per policy; 4xx responses are
// terminal.
func GetJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, policy RetryPolicy, out interface{}) error {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < policy.MaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return apperrors.TransientProvider(ctx.Err(), "poll")
			case <-time.After(policy.Backoff):
			}
		}

		lastErr = getJSONOnce(ctx, client, url, headers, out)
		if lastErr == nil {
			return nil
		}
		if !apperrors.IsKind(lastErr, apperrors.KindTransientProvider) {
			return lastErr
		}
	}
	return lastErr
}

func getJSONOnce(ctx context.Context, client *http.Client, url string, headers map[string]string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return apperrors.Wrap(err, apperrors.KindTerminalProvider, "building request")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return apperrors.TransientProvider(err, "provider request")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return apperrors.Newf(apperrors.KindTransientProvider,
			"provider returned %d", resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return apperrors.Newf(apperrors.KindTerminalProvider,
			"provider returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrap(err, apperrors.KindTerminalProvider, "decoding provider response")
	}
	return nil
}

// FlexFloat decodes a JSON number that providers sometimes quote or
// omit. Unparsable values default to zero rather than failing the
// surrounding record.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

// FlexInt behaves like FlexFloat for integer fields and additionally
// remembers whether the field was present at all, so records missing a
// speaker can be skipped instead of silently becoming speaker 0.
type FlexInt struct {
	Value int
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	f.Value = int(v)
	f.Set = true
	return nil
}

// ParseSeconds parses a duration string of the form "<float>s" as
// produced by FanoLab; unparsable input defaults to zero.
func ParseSeconds(value string) float64 {
	trimmed := strings.TrimSuffix(strings.TrimSpace(value), "s")
	if trimmed == "" {
		return 0
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0
	}
	return v
}

// NewHTTPClient builds the provider HTTP client with an explicit
// timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// String implements fmt.Stringer for debugging.
func (f FlexInt) String() string {
	if !f.Set {
		return "<unset>"
	}
	return fmt.Sprintf("%d", f.Value)
}
