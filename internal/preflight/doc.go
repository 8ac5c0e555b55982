// Package preflight provides readiness checks for the platform API and the
// local paths strikearr depends on.
//
// The CLI "strikearr check" command runs RunAll and prints one line per check.
// Checks never fail hard; each returns a Result the caller can render.
package preflight
