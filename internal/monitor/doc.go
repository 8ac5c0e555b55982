// Package monitor drives strike evaluation runs.
//
// A Runner owns the strike ledger for the life of the process. Each run
// fetches a queue snapshot, prunes ledger entries for items that left the
// queue, lets the engine classify every item, hands the outcomes to a sink
// and persists the ledger. Start repeats runs on a cron schedule under a
// single-instance file lock.
package monitor
