// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package http

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"runtime"
	"time"

	"github.com/wneessen/placeresolver/internal/logger"
)

const (
	// DefaultTimeout is the per-call timeout applied to every upstream request
	DefaultTimeout = time.Second * 10
)

var (
	// version is the version of the application (will be set at build time)
	version = "dev"
	// UserAgent is the User-Agent that the HTTP client sends with API requests. The OSM
	// usage policy requires an identifying agent on every request.
	UserAgent = fmt.Sprintf("Mozilla/5.0 (%s; %s) placeresolver/%s (+https://github.com/wneessen/placeresolver/)",
		runtime.GOOS,
		runtime.GOARCH,
		version,
	)

	ErrNonPointerTarget = errors.New("target must be a non-nil pointer")
)

// Client is a type wrapper for the Go stdlib http.Client and the logger
type Client struct {
	*http.Client
	logger *logger.Logger
}

// New returns a new HTTP client
func New(logger *logger.Logger) *Client {
	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}
	httpTransport := &http.Transport{TLSClientConfig: tlsConfig}
	httpClient := &http.Client{
		Timeout:   DefaultTimeout,
		Transport: httpTransport,
	}
	return &Client{httpClient, logger}
}

// Get performs a HTTP GET request for the given URL and json-unmarshals the response
// into target
func (h *Client) Get(ctx context.Context, endpoint string, target any, query url.Values, headers map[string]string) (int, error) {
	return h.GetWithTimeout(ctx, endpoint, target, query, headers, DefaultTimeout)
}

// GetWithTimeout performs a HTTP GET request for the given URL and timeout and JSON-unmarshals
// the response into target
func (h *Client) GetWithTimeout(ctx context.Context, endpoint string, target any, query url.Values, headers map[string]string, timeout time.Duration) (int, error) {
	return h.doJSON(ctx, http.MethodGet, endpoint, target, query, nil, headers, timeout)
}

// Post performs a HTTP POST request for the given URL and json-unmarshals the response
// into target
func (h *Client) Post(ctx context.Context, endpoint string, target any, query url.Values, body io.Reader, headers map[string]string) (int, error) {
	return h.PostWithTimeout(ctx, endpoint, target, query, body, headers, DefaultTimeout)
}

// PostWithTimeout performs a HTTP POST request for the given URL and timeout and JSON-unmarshals
// the response into target
func (h *Client) PostWithTimeout(ctx context.Context, endpoint string, target any, query url.Values, body io.Reader, headers map[string]string, timeout time.Duration) (int, error) {
	return h.doJSON(ctx, http.MethodPost, endpoint, target, query, body, headers, timeout)
}

// ResolveRedirect performs a HTTP GET request for the given URL, follows all redirects and returns
// the final URL. The response body is discarded.
func (h *Client) ResolveRedirect(ctx context.Context, endpoint string, query url.Values, headers map[string]string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	response, err := h.do(ctx, http.MethodGet, endpoint, query, nil, headers)
	if err != nil {
		return "", err
	}
	defer h.closeBody(response.Body)

	if response.Request == nil || response.Request.URL == nil {
		return "", &UpstreamError{Message: "redirect target unknown"}
	}
	return response.Request.URL.String(), nil
}

func (h *Client) doJSON(ctx context.Context, method, endpoint string, target any, query url.Values, body io.Reader, headers map[string]string, timeout time.Duration) (int, error) {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return 0, ErrNonPointerTarget
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	response, err := h.do(ctx, method, endpoint, query, body, headers)
	if err != nil {
		var upstreamErr *UpstreamError
		if errors.As(err, &upstreamErr) {
			return upstreamErr.StatusCode, err
		}
		return 0, err
	}
	defer h.closeBody(response.Body)

	// Unmarshal the JSON API response into target
	if err = json.NewDecoder(response.Body).Decode(target); err != nil {
		return response.StatusCode, &UpstreamError{
			StatusCode: response.StatusCode,
			Message:    "failed to decode JSON",
			Err:        err,
		}
	}

	return response.StatusCode, nil
}

// do executes the request. Non-2xx responses are consumed and returned as *UpstreamError, so the
// caller only has to close the body of successful responses.
func (h *Client) do(ctx context.Context, method, endpoint string, query url.Values, body io.Reader, headers map[string]string) (*http.Response, error) {
	// Prepare URL and query parameters
	reqURL, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if len(query) > 0 {
		reqURL.RawQuery = query.Encode()
	}

	// Prepare HTTP request
	request, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed create new HTTP request with context: %w", err)
	}
	request.Header.Set("User-Agent", UserAgent)
	for k, v := range headers {
		request.Header.Set(k, v)
	}

	// Execute HTTP request
	response, err := h.Do(request)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, &UpstreamError{Message: err.Error(), Err: err}
		}
		return nil, &UpstreamError{Message: "failed to perform HTTP request", Err: err}
	}
	if response == nil {
		return nil, &UpstreamError{Message: "nil response received"}
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		defer h.closeBody(response.Body)
		return nil, newUpstreamError(response)
	}
	return response, nil
}

func (h *Client) closeBody(body io.ReadCloser) {
	if err := body.Close(); err != nil {
		h.logger.Error("failed to close HTTP request body", logger.Err(err))
	}
}
