// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

// genericMessage is used when the upstream error envelope carries no readable message.
const genericMessage = "Request failed"

// UpstreamError reports a failed upstream request. StatusCode is 0 for transport failures,
// otherwise it holds the non-2xx status returned by the upstream.
type UpstreamError struct {
	StatusCode int
	Message    string
	Body       []byte
	Err        error
}

func (e *UpstreamError) Error() string {
	if e == nil {
		return "upstream request failed"
	}
	msg := e.Message
	if msg == "" {
		msg = genericMessage
	}
	if e.StatusCode == 0 {
		if e.Err != nil && !strings.Contains(msg, e.Err.Error()) {
			return fmt.Sprintf("%s: %s", msg, e.Err)
		}
		return msg
	}
	return fmt.Sprintf("upstream returned HTTP %d: %s", e.StatusCode, msg)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// newUpstreamError reads the body of a non-2xx response and extracts a human-readable message
// from the upstream's error envelope. Google style envelopes ({"error":{"message":...}}) are
// handled by googleapi, flat envelopes ({"message":...}) as used by OSRM are handled here.
func newUpstreamError(response *http.Response) *UpstreamError {
	upstreamErr := &UpstreamError{
		StatusCode: response.StatusCode,
		Message:    genericMessage,
	}

	err := googleapi.CheckResponse(response)
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return upstreamErr
	}
	upstreamErr.Err = apiErr
	upstreamErr.Body = []byte(apiErr.Body)
	if apiErr.Message != "" {
		upstreamErr.Message = apiErr.Message
		return upstreamErr
	}

	var flat struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if jsonErr := json.Unmarshal(upstreamErr.Body, &flat); jsonErr == nil {
		switch {
		case flat.Message != "":
			upstreamErr.Message = flat.Message
		case flat.Error != "":
			upstreamErr.Message = flat.Error
		}
	}
	return upstreamErr
}

// StatusCode returns the upstream status code carried by err, or 0 if err is not an upstream
// error or a transport failure.
func StatusCode(err error) int {
	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		return upstreamErr.StatusCode
	}
	return 0
}
