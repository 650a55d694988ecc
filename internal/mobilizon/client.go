package mobilizon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"net/http"
	"time"

	"github.com/bdxtown/agenda-digest/internal/errs"
	"github.com/dghubble/sling"
)

const (
	DefaultEndpoint      = "https://mobilizon.fr/api"
	DefaultEventsBaseURL = "https://mobilizon.fr/events/"
	DefaultLocation      = "ezzx5529g" // geohash around Bordeaux
	DefaultRadius        = 100
	DefaultLimit         = 100
	timeout              = 30 * time.Second
)

// Variables are the search parameters sent with the query
type Variables struct {
	Location  string  `json:"location"`
	Radius    float64 `json:"radius"`
	EventPage int     `json:"eventPage"`
	GroupPage int     `json:"groupPage"`
	Limit     int     `json:"limit"`
}

// DefaultVariables searches the first page around Bordeaux.
func DefaultVariables() Variables {
	return Variables{
		Location:  DefaultLocation,
		Radius:    DefaultRadius,
		EventPage: 1,
		GroupPage: 1,
		Limit:     DefaultLimit,
	}
}

type graphQLRequest struct {
	OperationName string    `json:"operationName"`
	Variables     Variables `json:"variables"`
	Query         string    `json:"query"`
}

// Client represents a Mobilizon GraphQL API client
type Client struct {
	endpoint      string
	eventsBaseURL string
	variables     Variables
	userAgent     string
	httpClient    *http.Client
}

// NewClient creates a new Mobilizon client. A nil httpClient gets a default one.
func NewClient(endpoint, eventsBaseURL string, vars Variables, httpClient *http.Client) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if eventsBaseURL == "" {
		eventsBaseURL = DefaultEventsBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		endpoint:      endpoint,
		eventsBaseURL: eventsBaseURL,
		variables:     vars,
		userAgent:     "agenda-digest/1.0",
		httpClient:    httpClient,
	}
}

// SetUserAgent overrides the User-Agent header.
func (c *Client) SetUserAgent(ua string) {
	if ua != "" {
		c.userAgent = ua
	}
}

// Search runs the search query and decodes the response envelope.
func (c *Client) Search(ctx context.Context) (*SearchResponse, error) {
	req, err := sling.New().
		Post(c.endpoint).
		Set("User-Agent", c.userAgent).
		BodyJSON(graphQLRequest{
			OperationName: operationName,
			Variables:     c.variables,
			Query:         searchQuery,
		}).
		Request()
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req = req.WithContext(ctx)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &errs.FetchError{Op: "mobilizon", URL: c.endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errs.FetchError{Op: "mobilizon", URL: c.endpoint, Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &errs.FetchError{
			Op:  "mobilizon",
			URL: c.endpoint,
			Err: fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body)),
		}
	}

	var result SearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &errs.MalformedResponseError{Source: "mobilizon", Reason: "parsing response", Err: err}
	}

	return &result, nil
}

// FetchEvents searches and extracts the raw events.
func (c *Client) FetchEvents(ctx context.Context) (iter.Seq[RawEvent], error) {
	resp, err := c.Search(ctx)
	if err != nil {
		return nil, err
	}
	return Extract(resp, c.eventsBaseURL)
}
