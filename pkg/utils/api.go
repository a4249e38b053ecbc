package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jmgilman/go/errors"
)

type API struct {
	client  *http.Client
	baseURL string
}

// NewAPIWithTimeout returns an API whose requests give up after timeout.
func NewAPIWithTimeout(baseURL string, timeout time.Duration) *API {
	return &API{client: &http.Client{Timeout: timeout}, baseURL: baseURL}
}

func (a *API) URL(path string) string {
	if path == "" {
		return a.baseURL
	}
	return strings.TrimSuffix(a.baseURL, "/") + "/" + strings.TrimPrefix(path, "/")
}

// Get fetches path and decodes the JSON body into v. Transport failures are
// coded CodeNetwork, non-2xx responses CodeUnavailable and undecodable bodies
// CodeSchemaFailed.
func (a *API) Get(ctx context.Context, path string, params url.Values, v any) error {
	target := a.URL(path)
	if params != nil {
		target += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return errors.Wrap(err, errors.CodeInvalidInput, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	resp, err := a.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, errors.CodeNetwork, "GET %s", target)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Newf(errors.CodeUnavailable, "GET %s: bad status: %s", target, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrapf(err, errors.CodeSchemaFailed, "GET %s: malformed response", target)
	}
	return nil
}
