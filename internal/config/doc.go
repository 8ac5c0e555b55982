// Package config loads, normalizes, and validates strikearr configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// BASEURL, APIKEY and STRIKE_THRESHOLD, optionally seeded from a .env file.
// The Config type centralizes every knob the monitor and CLI need.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, parsed thresholds, and clear validation errors.
package config
