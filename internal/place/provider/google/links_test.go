// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package google

import (
	"errors"
	stdhttp "net/http"
	"testing"

	"github.com/wneessen/placeresolver/internal/http"
	"github.com/wneessen/placeresolver/internal/testhelper"
)

func TestParseCID(t *testing.T) {
	tests := []struct {
		name  string
		link  string
		want  uint64
		found bool
	}{
		{"bare pair", "0x0:0x1a", 26, true},
		{"full map link", longLink, 26, true},
		{"uppercase hex", "https://maps.example/?ftid=0x47A851C5:0xFF", 255, true},
		{"first pair wins", "0x1:0x2 0x3:0x4", 2, true},
		{"no pair", "https://www.google.com/maps/place/Berlin", 0, false},
		{"overflowing value", "0x0:0x1ffffffffffffffff", 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, found := parseCID(tc.link)
			if found != tc.found {
				t.Fatalf("expected found to be %t, got %t", tc.found, found)
			}
			if got != tc.want {
				t.Errorf("expected CID %d, got %d", tc.want, got)
			}
		})
	}
}

func TestShortlinkID(t *testing.T) {
	id, ok := ShortlinkID("see https://maps.app.goo.gl/abc123?g_st=ic")
	if !ok || id != "abc123" {
		t.Errorf("expected shortlink id abc123, got %q (%t)", id, ok)
	}
	if _, ok = ShortlinkID("https://www.google.com/maps/place/Berlin"); ok {
		t.Error("expected no shortlink id for a regular map link")
	}
}

func TestGoogle_URLToPlace(t *testing.T) {
	t.Run("a shortlink is resolved to place details", func(t *testing.T) {
		provider := testProvider(t, routeRequests(t))
		record, ok := provider.URLToPlace(t.Context(), "https://maps.app.goo.gl/abc123")
		if !ok {
			t.Fatal("expected shortlink to resolve")
		}
		if record.RecordID() != "ChIJ_museum" {
			t.Errorf("expected record ChIJ_museum, got %s", record.RecordID())
		}
	})
	t.Run("a full link is resolved without shortlink expansion", func(t *testing.T) {
		var shortlinkCalled bool
		route := routeRequests(t)
		provider := testProvider(t, func(req *stdhttp.Request) (*stdhttp.Response, error) {
			if req.URL.Host == "maps.app.goo.gl" {
				shortlinkCalled = true
			}
			return route(req)
		})
		record, ok := provider.URLToPlace(t.Context(), longLink)
		if !ok {
			t.Fatal("expected link to resolve")
		}
		if record.RecordID() != "ChIJ_museum" {
			t.Errorf("expected record ChIJ_museum, got %s", record.RecordID())
		}
		if shortlinkCalled {
			t.Error("expected no shortlink request for a full link")
		}
	})
	t.Run("a link without CID yields nothing and makes no request", func(t *testing.T) {
		provider := testProvider(t, nil)
		if _, ok := provider.URLToPlace(t.Context(), "https://www.google.com/maps/place/Berlin"); ok {
			t.Error("expected link without CID to yield nothing")
		}
	})
	t.Run("a failing shortlink yields nothing", func(t *testing.T) {
		provider := testProvider(t, func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return nil, errors.New("intentionally failing")
		})
		if _, ok := provider.URLToPlace(t.Context(), "https://maps.app.goo.gl/abc123"); ok {
			t.Error("expected failing shortlink to yield nothing")
		}
	})
	t.Run("a CID without place id yields nothing", func(t *testing.T) {
		provider := testProvider(t, func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return testhelper.StringResponse(200, `{"result":{},"status":"NOT_FOUND"}`), nil
		})
		if _, ok := provider.URLToPlace(t.Context(), longLink); ok {
			t.Error("expected unknown CID to yield nothing")
		}
	})
	t.Run("failing details yield nothing", func(t *testing.T) {
		provider := testProvider(t, func(req *stdhttp.Request) (*stdhttp.Response, error) {
			if req.URL.Host == "maps.googleapis.com" {
				return testhelper.FileResponse(t, 200, legacyDetailsFile), nil
			}
			return testhelper.StringResponse(404, `{"error":{"code":404,"message":"Not found"}}`), nil
		})
		if _, ok := provider.URLToPlace(t.Context(), longLink); ok {
			t.Error("expected failing details lookup to yield nothing")
		}
	})
}

func TestGoogle_ResolveShortlink(t *testing.T) {
	t.Run("resolving a shortlink returns the final URL", func(t *testing.T) {
		provider := testProvider(t, routeRequests(t))
		resolved, err := provider.ResolveShortlink(t.Context(), "abc123")
		if err != nil {
			t.Fatalf("failed to resolve shortlink: %s", err)
		}
		if resolved != longLink {
			t.Errorf("expected %s, got %s", longLink, resolved)
		}
	})
	t.Run("resolution errors are propagated", func(t *testing.T) {
		provider := testProvider(t, func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return testhelper.StringResponse(404, ""), nil
		})
		_, err := provider.ResolveShortlink(t.Context(), "gone")
		if err == nil {
			t.Fatal("expected shortlink resolution to fail")
		}
		if http.StatusCode(err) != 404 {
			t.Errorf("expected upstream status 404, got %d", http.StatusCode(err))
		}
	})
}
