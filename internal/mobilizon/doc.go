// Package mobilizon queries the Mobilizon GraphQL search API and extracts
// the events it returns.
//
// A single SearchEventsAndGroups request is sent around a geohash location.
// Extraction surfaces every element verbatim; window filtering happens later
// on normalized events.
package mobilizon
