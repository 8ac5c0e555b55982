// Command strikearr watches a Radarr or Sonarr download queue and removes
// downloads that stay stalled for too many consecutive runs.
//
// `strikearr run` starts the scheduled monitor, `strikearr once` performs a
// single run, `strikearr check` validates the platform URL and API key, and
// the `strikes` and `config` command groups inspect local state.
package main
