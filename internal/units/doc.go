// Package units converts the human-readable durations and byte sizes used by
// the platform API and the configuration file into integer milliseconds and
// bytes, and renders them back for display.
//
// Every function here is total: malformed input degrades to 0 instead of
// returning an error, so a single odd field in a queue record never stops the
// rest of the queue from being evaluated.
package units
