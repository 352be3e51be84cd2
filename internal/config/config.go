// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/kkyr/fig"
)

const (
	configEnv = "PLACERESOLVER"

	ProviderOSM    = "osm"
	ProviderGoogle = "google"

	DefaultListen = "127.0.0.1:8080"
)

// Config represents the application's configuration structure.
type Config struct {
	Locale   string     `fig:"locale"`
	LogLevel slog.Level `fig:"loglevel" default:"0"`

	Account struct {
		// Allowed values: osm, google
		MapProvider  string `fig:"map_provider" default:"osm"`
		GoogleAPIKey string `fig:"google_apikey"`
	} `fig:"account"`

	Google struct {
		// Look up the Maps API key via Application Default Credentials if no key is configured
		KeyFromADC bool `fig:"key_from_adc"`
		// Display name of the API key to use. The first key of the project is used if empty.
		ADCKeyName string `fig:"adc_key_name"`
	} `fig:"google"`

	Server struct {
		Listen string `fig:"listen" default:"127.0.0.1:8080"`
	} `fig:"server"`
}

func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read config: %w", err)
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load config: %w", err)
	}

	return conf, conf.Validate()
}

func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load config: %w", err)
	}

	return conf, conf.Validate()
}

// Load reads the config file at confPath. Without a path the first config file found in the
// default location is used, and without any file only defaults and environment apply.
func Load(confPath string) (*Config, error) {
	if confPath != "" {
		return NewFromFile(filepath.Dir(confPath), filepath.Base(confPath))
	}
	if path, file := FindConfigFile(); path != "" && file != "" {
		return NewFromFile(path, file)
	}
	return New()
}

func (c *Config) Validate() error {
	c.Account.MapProvider = strings.ToLower(strings.TrimSpace(c.Account.MapProvider))
	switch c.Account.MapProvider {
	case "":
		c.Account.MapProvider = ProviderOSM
	case ProviderOSM, ProviderGoogle:
	default:
		return fmt.Errorf("invalid map provider: %s", c.Account.MapProvider)
	}
	c.Account.GoogleAPIKey = strings.TrimSpace(c.Account.GoogleAPIKey)
	if c.Locale == "" {
		c.Locale = getLocale()
	}
	if c.Server.Listen == "" {
		c.Server.Listen = DefaultListen
	}

	return nil
}

// FindConfigFile returns the directory and file name of the first config file found in
// ~/.config/placeresolver.
func FindConfigFile() (string, string) {
	homedir, err := os.UserHomeDir()
	if err != nil {
		return "", ""
	}
	exts := []string{"toml", "yaml", "yml", "json"}
	for _, ext := range exts {
		path := filepath.Join(homedir, ".config", "placeresolver", "config."+ext)
		if _, err = os.Stat(path); err == nil {
			return filepath.Dir(path), filepath.Base(path)
		}
	}
	return "", ""
}

func getLocale() string {
	locale := os.Getenv("LC_MESSAGES")
	if idx := strings.Index(locale, "."); idx != -1 {
		lang := locale[:idx]
		return strings.ReplaceAll(lang, "_", "-")
	}
	return locale
}
