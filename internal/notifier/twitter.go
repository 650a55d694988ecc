package notifier

import (
	"context"
	"fmt"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"
)

// tweetLimit is the maximum tweet length in characters
const tweetLimit = 280

// TwitterCredentials are the OAuth1 user-context keys
type TwitterCredentials struct {
	APIKey       string
	APISecret    string
	AccessToken  string
	AccessSecret string
}

// TwitterNotifier posts the digest as a single tweet
type TwitterNotifier struct {
	client *twitter.Client
}

// NewTwitterNotifier creates a new Twitter notifier. All four credentials are required.
func NewTwitterNotifier(creds TwitterCredentials) (*TwitterNotifier, error) {
	if creds.APIKey == "" || creds.APISecret == "" || creds.AccessToken == "" || creds.AccessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials")
	}

	config := oauth1.NewConfig(creds.APIKey, creds.APISecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessSecret)
	httpClient := config.Client(oauth1.NoContext, token)

	return &TwitterNotifier{client: twitter.NewClient(httpClient)}, nil
}

// Publish posts message, truncated to fit in one tweet
func (n *TwitterNotifier) Publish(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, _, err := n.client.Statuses.Update(formatTweet(message), nil); err != nil {
		return fmt.Errorf("failed to post tweet: %w", err)
	}
	return nil
}

// formatTweet truncates message to the tweet limit, counted in characters
func formatTweet(message string) string {
	runes := []rune(message)
	if len(runes) <= tweetLimit {
		return message
	}
	return string(runes[:tweetLimit-3]) + "..."
}
