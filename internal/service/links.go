// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

const shortlinkHost = "maps.app.goo.gl"

// IsGoogleMapsLink reports whether content is a link to Google Maps on any Google domain,
// including maps.app.goo.gl shortlinks.
func IsGoogleMapsLink(content string) bool {
	content = strings.TrimSpace(content)
	if strings.Contains(content, "google.com/maps") || strings.Contains(content, shortlinkHost+"/") {
		return true
	}

	link, err := url.Parse(content)
	if err != nil || link.Host == "" {
		return false
	}
	host := strings.ToLower(link.Hostname())
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return false
	}
	if label, _, _ := strings.Cut(domain, "."); label != "google" {
		return false
	}
	return strings.HasPrefix(host, "maps.") || strings.HasPrefix(link.Path, "/maps")
}
