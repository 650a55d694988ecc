package notifier

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bdxtown/agenda-digest/internal/errs"
	"github.com/dghubble/sling"
)

const (
	DefaultInstance = "https://bdx.town"
	statusesPath    = "api/v1/statuses"
	timeout         = 30 * time.Second
)

// Credentials authenticate against the instance. AccessToken wins when set;
// otherwise AuthorizationCode is exchanged using the client credentials.
type Credentials struct {
	ClientID          string
	ClientSecret      string
	AuthorizationCode string
	AccessToken       string
}

// statusRequest is the body of POST /api/v1/statuses
type statusRequest struct {
	Status      string    `json:"status"`
	InReplyToID *string   `json:"in_reply_to_id"`
	MediaIDs    []string  `json:"media_ids"`
	Sensitive   bool      `json:"sensitive"`
	SpoilerText string    `json:"spoiler_text"`
	Visibility  string    `json:"visibility"`
	ContentType string    `json:"content_type"`
	Poll        *struct{} `json:"poll"`
	ScheduledAt *string   `json:"scheduled_at"`
}

// MastodonNotifier posts the digest as a public status
type MastodonNotifier struct {
	instance       string
	creds          Credentials
	httpClient     *http.Client
	idempotencyKey string
}

// NewMastodonNotifier creates a notifier for instance (e.g. https://bdx.town).
func NewMastodonNotifier(instance string, creds Credentials, httpClient *http.Client) (*MastodonNotifier, error) {
	if instance == "" {
		instance = DefaultInstance
	}
	if creds.AccessToken == "" && (creds.ClientID == "" || creds.ClientSecret == "" || creds.AuthorizationCode == "") {
		return nil, fmt.Errorf("missing Mastodon credentials: need an access token or client id, secret and authorization code")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &MastodonNotifier{
		instance:   strings.TrimRight(instance, "/"),
		creds:      creds,
		httpClient: httpClient,
	}, nil
}

// SetIdempotencyKey makes the instance ignore a repeated post with the same key.
func (n *MastodonNotifier) SetIdempotencyKey(key string) {
	n.idempotencyKey = key
}

// Publish obtains a token and posts message as a public Markdown status.
func (n *MastodonNotifier) Publish(ctx context.Context, message string) error {
	if message == "" {
		return fmt.Errorf("status text is required")
	}

	token, err := n.Token(ctx)
	if err != nil {
		return err
	}

	s := sling.New().
		Base(n.instance+"/").
		Post(statusesPath).
		Set("Authorization", "Bearer "+token).
		BodyJSON(statusRequest{
			Status:      message,
			MediaIDs:    []string{},
			Visibility:  "public",
			ContentType: "text/markdown",
		})
	if n.idempotencyKey != "" {
		s = s.Set("Idempotency-Key", n.idempotencyKey)
	}

	req, err := s.Request()
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := n.httpClient.Do(req.WithContext(ctx))
	if err != nil {
		return &errs.FetchError{Op: "statuses", URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &errs.PublishError{Status: resp.StatusCode, Body: string(body)}
	}

	return nil
}
