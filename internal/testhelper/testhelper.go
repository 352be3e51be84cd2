// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package testhelper provides shared helpers for package tests.
package testhelper

import (
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
)

const (
	// TestOnlineAPIURL is an endpoint that is only contacted by online tests.
	TestOnlineAPIURL = "https://nominatim.openstreetmap.org/status?format=json"

	onlineTestsEnv = "PERFORM_ONLINE_TESTS"
)

// MockRoundTripper is a http.RoundTripper that hands every request to Fn.
type MockRoundTripper struct {
	Fn func(req *http.Request) (*http.Response, error)
}

func (m MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.Fn(req)
}

// PerformIntegrationTests skips the calling test unless online tests are enabled.
func PerformIntegrationTests(t *testing.T) {
	t.Helper()
	if os.Getenv(onlineTestsEnv) == "" {
		t.Skipf("skipping online test, set %s to enable", onlineTestsEnv)
	}
}

// FileResponse returns a response with the given status code whose body is the content of file.
func FileResponse(t *testing.T, status int, file string) *http.Response {
	t.Helper()
	data, err := os.Open(file)
	if err != nil {
		t.Fatalf("failed to open JSON response file: %s", err)
	}
	return &http.Response{
		StatusCode: status,
		Body:       data,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

// StringResponse returns a response with the given status code and body.
func StringResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

// RedirectResponse returns a 302 response pointing to location.
func RedirectResponse(location string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusFound,
		Body:       io.NopCloser(strings.NewReader("")),
		Header:     http.Header{"Location": []string{location}},
	}
}
