// Package notifier publishes the rendered digest.
//
// The main target is a Mastodon-compatible instance: a bearer token is taken
// from configuration or obtained through the OAuth authorization-code grant,
// then the digest is posted as one public Markdown status. Twitter and a
// dry-run printer implement the same Publisher interface.
package notifier
