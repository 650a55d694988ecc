// Package pipeline runs one digest: fetch both sources, normalize, keep the
// events inside the window, merge, render and publish.
//
// Stages run sequentially. Any stage error aborts the run before anything is
// published; entries that merely fail to parse are dropped by the normalizer.
package pipeline
