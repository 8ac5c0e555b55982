// Package engine decides, for each item of a queue snapshot, whether the
// download is progressing, exempt, accruing strikes, or due for removal.
//
// The engine is pure apart from its two collaborators: a Ledger holding the
// per-item strike counts across runs and a Remover that asks the platform to
// drop an item. It never fails; upstream parse problems have already been
// degraded to zero values by the time items reach it.
package engine
