// Package config loads the YAML configuration of a digest run.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
	_ "time/tzdata" // zone database for minimal images

	"github.com/bdxtown/agenda-digest/internal/event"
	"github.com/bdxtown/agenda-digest/internal/mobilizon"
	"github.com/bdxtown/agenda-digest/internal/notifier"
	"github.com/bdxtown/agenda-digest/internal/scraper"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTimezone     = "Europe/Paris"
	DefaultOutputLocale = "fr"
	DefaultLogLevel     = "INFO"
	DefaultHTTPTimeout  = 30 * time.Second
)

// AgendaConfig locates the municipal agenda.
type AgendaConfig struct {
	BaseURL string `yaml:"base_url"`
	// EndMarker starts the section of ongoing events, which is ignored.
	EndMarker string `yaml:"end_marker"`
}

// MobilizonConfig holds the search endpoint and query variables.
type MobilizonConfig struct {
	Endpoint  string  `yaml:"endpoint"`
	EventsURL string  `yaml:"events_url"`
	Location  string  `yaml:"location"` // geohash
	Radius    float64 `yaml:"radius"`   // km
	Limit     int     `yaml:"limit"`
}

// MastodonConfig holds the instance and OAuth credentials.
type MastodonConfig struct {
	Instance          string `yaml:"instance"`
	ClientID          string `yaml:"client_id"`
	ClientSecret      string `yaml:"client_secret"`
	AuthorizationCode string `yaml:"authorization_code"`
	AccessToken       string `yaml:"access_token"`
}

// TwitterConfig holds OAuth1 user-context credentials.
type TwitterConfig struct {
	APIKey       string `yaml:"api_key"`
	APISecret    string `yaml:"api_secret"`
	AccessToken  string `yaml:"access_token"`
	AccessSecret string `yaml:"access_secret"`
}

// HTTPConfig applies to every outgoing request.
type HTTPConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// Config is the top-level configuration.
type Config struct {
	// Timezone is the IANA zone the window and dates are computed in.
	Timezone string `yaml:"timezone"`
	// City is named in the digest header.
	City string `yaml:"city"`
	// WindowDays is how many days past today the digest covers.
	WindowDays int `yaml:"window_days"`
	// OutputLocale renders Mobilizon dates ("fr" or "en").
	OutputLocale string `yaml:"output_locale"`

	Agenda    AgendaConfig    `yaml:"agenda"`
	Mobilizon MobilizonConfig `yaml:"mobilizon"`
	Mastodon  MastodonConfig  `yaml:"mastodon"`
	Twitter   TwitterConfig   `yaml:"twitter"`
	HTTP      HTTPConfig      `yaml:"http"`

	// Pushgateway receives run metrics when set.
	Pushgateway string `yaml:"pushgateway"`
	LogLevel    string `yaml:"log_level"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	vars := mobilizon.DefaultVariables()
	return &Config{
		Timezone:     DefaultTimezone,
		City:         "Bordeaux",
		WindowDays:   event.DefaultWindowDays,
		OutputLocale: DefaultOutputLocale,
		Agenda: AgendaConfig{
			BaseURL:   scraper.DefaultBaseURL,
			EndMarker: scraper.DefaultEndMarker,
		},
		Mobilizon: MobilizonConfig{
			Endpoint:  mobilizon.DefaultEndpoint,
			EventsURL: mobilizon.DefaultEventsBaseURL,
			Location:  vars.Location,
			Radius:    vars.Radius,
			Limit:     vars.Limit,
		},
		Mastodon: MastodonConfig{
			Instance: notifier.DefaultInstance,
		},
		HTTP: HTTPConfig{
			Timeout:   DefaultHTTPTimeout,
			UserAgent: scraper.UserAgent,
		},
		LogLevel: DefaultLogLevel,
	}
}

// Normalize fills in missing or zero values with defaults so partially
// filled files still behave.
func (c *Config) Normalize() {
	d := DefaultConfig()
	if c.Timezone == "" {
		c.Timezone = d.Timezone
	}
	if c.City == "" {
		c.City = d.City
	}
	if c.WindowDays <= 0 {
		c.WindowDays = d.WindowDays
	}
	if c.OutputLocale == "" {
		c.OutputLocale = d.OutputLocale
	}
	if c.Agenda.BaseURL == "" {
		c.Agenda.BaseURL = d.Agenda.BaseURL
	}
	if c.Agenda.EndMarker == "" {
		c.Agenda.EndMarker = d.Agenda.EndMarker
	}
	if c.Mobilizon.Endpoint == "" {
		c.Mobilizon.Endpoint = d.Mobilizon.Endpoint
	}
	if c.Mobilizon.EventsURL == "" {
		c.Mobilizon.EventsURL = d.Mobilizon.EventsURL
	}
	if c.Mobilizon.Location == "" {
		c.Mobilizon.Location = d.Mobilizon.Location
	}
	if c.Mobilizon.Radius <= 0 {
		c.Mobilizon.Radius = d.Mobilizon.Radius
	}
	if c.Mobilizon.Limit <= 0 {
		c.Mobilizon.Limit = d.Mobilizon.Limit
	}
	if c.Mastodon.Instance == "" {
		c.Mastodon.Instance = d.Mastodon.Instance
	}
	if c.HTTP.Timeout <= 0 {
		c.HTTP.Timeout = d.HTTP.Timeout
	}
	if c.HTTP.UserAgent == "" {
		c.HTTP.UserAgent = d.HTTP.UserAgent
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
}

// envOverrides maps environment variables onto secret fields.
func (c *Config) envOverrides() map[string]*string {
	return map[string]*string{
		"MASTODON_CLIENT_ID":     &c.Mastodon.ClientID,
		"MASTODON_CLIENT_SECRET": &c.Mastodon.ClientSecret,
		"MASTODON_AUTH_CODE":     &c.Mastodon.AuthorizationCode,
		"MASTODON_ACCESS_TOKEN":  &c.Mastodon.AccessToken,
		"TWITTER_API_KEY":        &c.Twitter.APIKey,
		"TWITTER_API_SECRET":     &c.Twitter.APISecret,
		"TWITTER_ACCESS_TOKEN":   &c.Twitter.AccessToken,
		"TWITTER_ACCESS_SECRET":  &c.Twitter.AccessSecret,
	}
}

// ApplyEnv overrides secrets with the non-empty values returned by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	for name, field := range c.envOverrides() {
		if v, ok := lookup(name); ok && v != "" {
			*field = v
		}
	}
}

// Location loads the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// MobilizonVariables returns the search variables for the configured area.
func (c *Config) MobilizonVariables() mobilizon.Variables {
	vars := mobilizon.DefaultVariables()
	vars.Location = c.Mobilizon.Location
	vars.Radius = c.Mobilizon.Radius
	vars.Limit = c.Mobilizon.Limit
	return vars
}

// MastodonCredentials returns the credentials for the Mastodon publisher.
func (c *Config) MastodonCredentials() notifier.Credentials {
	return notifier.Credentials{
		ClientID:          c.Mastodon.ClientID,
		ClientSecret:      c.Mastodon.ClientSecret,
		AuthorizationCode: c.Mastodon.AuthorizationCode,
		AccessToken:       c.Mastodon.AccessToken,
	}
}

// TwitterCredentials returns the credentials for the Twitter publisher.
func (c *Config) TwitterCredentials() notifier.TwitterCredentials {
	return notifier.TwitterCredentials{
		APIKey:       c.Twitter.APIKey,
		APISecret:    c.Twitter.APISecret,
		AccessToken:  c.Twitter.AccessToken,
		AccessSecret: c.Twitter.AccessSecret,
	}
}

// Load reads the YAML file at path, then applies environment overrides and
// defaults. An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// defaults
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	cfg.ApplyEnv(os.LookupEnv)
	cfg.Normalize()
	return cfg, nil
}
