// Package normalize turns raw listings from either source into canonical
// events.
//
// Agenda listings carry a French day/month/year triple and escaped HTML;
// Mobilizon events carry an ISO timestamp and plain text. Both end up as an
// event.Event with an absolute link and decoded title and place. Entries
// whose date cannot be built are dropped, never included with a guessed date.
package normalize
