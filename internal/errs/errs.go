// Package errs defines the stage-level failures of a digest run.
//
// Any of these errors aborts the run: the CLI logs it and exits non-zero.
// Per-item problems (an unparseable date, an incomplete listing block) are
// not represented here; those items are dropped where they are found.
package errs

import "fmt"

// FetchError is a transport-level failure reaching a source or the publish endpoint.
type FetchError struct {
	Op  string // e.g. "agenda", "mobilizon", "statuses"
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s (%s): %v", e.Op, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// MalformedResponseError means a response did not have the expected shape.
type MalformedResponseError struct {
	Source string
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed %s response: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed %s response: %s", e.Source, e.Reason)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// AuthError is returned when the token endpoint refuses to issue a token.
type AuthError struct {
	Status int
	Err    error
}

func (e *AuthError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("token request rejected (status %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("token request rejected: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// PublishError is returned when the status endpoint answers with a non-200 code.
type PublishError struct {
	Status int
	Body   string
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish failed (status %d): %s", e.Status, e.Body)
}
