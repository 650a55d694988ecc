// Package event provides the canonical event record shared by every source.
//
// Events from the Bordeaux Métropole agenda and from Mobilizon are normalized
// into the same Event type, filtered against a one-week Window, merged and
// sorted chronologically before the digest is rendered. Each event carries a
// deterministic SHA1-based ID and a StableKey used by the optional
// cross-source dedup pass.
package event
