// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"fmt"

	apikeys "cloud.google.com/go/apikeys/apiv2"
	"cloud.google.com/go/apikeys/apiv2/apikeyspb"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/iterator"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

var (
	ErrNoADCProject = errors.New("no project ID found in application default credentials")
	ErrADCKeyAbsent = errors.New("no matching API key found")
)

// ResolveGoogleAPIKey fills in the Google Maps API key from the API keys of the project behind the
// Application Default Credentials. It does nothing if a key is configured already or the lookup
// is disabled.
func (c *Config) ResolveGoogleAPIKey(ctx context.Context) error {
	if c.Account.GoogleAPIKey != "" || !c.Google.KeyFromADC {
		return nil
	}
	key, err := apiKeyFromADC(ctx, c.Google.ADCKeyName)
	if err != nil {
		return fmt.Errorf("failed to look up Google Maps API key: %w", err)
	}
	c.Account.GoogleAPIKey = key
	return nil
}

// apiKeyFromADC returns the key string of the project key with the given display name, or of
// the first key if displayName is empty.
func apiKeyFromADC(ctx context.Context, displayName string) (string, error) {
	creds, err := google.FindDefaultCredentials(ctx, cloudPlatformScope)
	if err != nil {
		return "", fmt.Errorf("failed to find default credentials: %w", err)
	}
	if creds.ProjectID == "" {
		return "", ErrNoADCProject
	}

	client, err := apikeys.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create API keys client: %w", err)
	}
	defer func() {
		_ = client.Close()
	}()

	keys := client.ListKeys(ctx, &apikeyspb.ListKeysRequest{
		Parent: fmt.Sprintf("projects/%s/locations/global", creds.ProjectID),
	})
	for {
		key, err := keys.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to list API keys: %w", err)
		}
		if displayName != "" && key.GetDisplayName() != displayName {
			continue
		}

		// Listed keys are redacted, the key string has to be requested separately
		resp, err := client.GetKeyString(ctx, &apikeyspb.GetKeyStringRequest{Name: key.GetName()})
		if err != nil {
			return "", fmt.Errorf("failed to retrieve API key string: %w", err)
		}
		if resp.GetKeyString() == "" {
			return "", fmt.Errorf("API key %q has an empty key string", key.GetName())
		}
		return resp.GetKeyString(), nil
	}

	if displayName != "" {
		return "", fmt.Errorf("key %q in project %s: %w", displayName, creds.ProjectID, ErrADCKeyAbsent)
	}
	return "", fmt.Errorf("project %s: %w", creds.ProjectID, ErrADCKeyAbsent)
}
