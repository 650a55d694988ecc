// Package scraper fetches the Bordeaux Métropole agenda page and extracts its
// dated listings.
//
// The agenda is requested for an explicit debut/fin date range. Everything
// after the "Et toujours" marker (ongoing events the page groups separately)
// is discarded, and each remaining div.agenda-content block is parsed into a
// raw Listing. Month names and HTML entities are left untouched; turning a
// Listing into an event is the normalize package's job.
package scraper
