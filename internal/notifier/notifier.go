package notifier

import "context"

// Publisher defines the interface for posting the digest
type Publisher interface {
	// Publish posts message as a single post
	Publish(ctx context.Context, message string) error
}
