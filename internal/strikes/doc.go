// Package strikes keeps the per-item strike counts that survive between
// monitor runs.
//
// Ledger is the in-memory map the engine mutates during a run. Store persists
// a ledger to SQLite so counts survive restarts; it is optional and the
// monitor only touches it when ledger persistence is enabled.
package strikes
