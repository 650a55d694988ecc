package scraper

import (
	"context"
	"fmt"
	"io"
	"iter"
	"net/http"
	"strings"
	"time"

	"github.com/bdxtown/agenda-digest/internal/errs"
	"github.com/bdxtown/agenda-digest/internal/event"
	"github.com/bdxtown/agenda-digest/internal/locale"
	"github.com/dghubble/sling"
)

const (
	DefaultBaseURL = "https://www.bordeaux-metropole.fr"
	UserAgent      = "agenda-digest/1.0 (+https://bdx.town)"
	Timeout        = 30 * time.Second
)

// agendaQuery is the custom-period search form of the agenda page. Empty
// filters are sent as empty parameters.
type agendaQuery struct {
	Periode    string `url:"periode"`
	Debut      string `url:"debut"`
	Fin        string `url:"fin"`
	Q          string `url:"q"`
	Commune    string `url:"commune"`
	Type       string `url:"type"`
	Thematique string `url:"thematique"`
}

// Scraper fetches the agenda page for a date window
type Scraper struct {
	client    *http.Client
	baseURL   string
	endMarker string
	userAgent string
}

// New creates a Scraper for the agenda hosted at baseURL. A nil client gets
// a default one with Timeout.
func New(baseURL string, client *http.Client) *Scraper {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: Timeout}
	}
	return &Scraper{
		client:    client,
		baseURL:   strings.TrimRight(baseURL, "/"),
		endMarker: DefaultEndMarker,
		userAgent: UserAgent,
	}
}

// BaseURL is the origin relative listing links resolve against.
func (s *Scraper) BaseURL() string {
	return s.baseURL
}

// SetEndMarker overrides the marker that starts the undated section.
func (s *Scraper) SetEndMarker(marker string) {
	s.endMarker = marker
}

// SetUserAgent overrides the User-Agent header.
func (s *Scraper) SetUserAgent(ua string) {
	if ua != "" {
		s.userAgent = ua
	}
}

// newRequest builds the agenda search request for w.
func (s *Scraper) newRequest(ctx context.Context, w event.Window) (*http.Request, error) {
	req, err := sling.New().
		Base(s.baseURL+"/").
		Get("Agenda").
		Set("User-Agent", s.userAgent).
		QueryStruct(agendaQuery{
			Periode: "personnaliser",
			Debut:   locale.FormatNumeric(w.Start),
			Fin:     locale.FormatNumeric(w.End),
		}).
		Request()
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	return req.WithContext(ctx), nil
}

// FetchListings fetches the agenda for w and extracts its dated listings.
func (s *Scraper) FetchListings(ctx context.Context, w event.Window) (iter.Seq[Listing], error) {
	req, err := s.newRequest(ctx, w)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &errs.FetchError{Op: "agenda", URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &errs.FetchError{
			Op:  "agenda",
			URL: req.URL.String(),
			Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errs.FetchError{Op: "agenda", URL: req.URL.String(), Err: fmt.Errorf("reading body: %w", err)}
	}

	return Extract(Trim(string(body), s.endMarker)), nil
}
