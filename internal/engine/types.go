package engine

import (
	"context"
	"strconv"
)

// Status is the per-run classification of a queue item.
type Status string

const (
	StatusPending Status = "Pending"
	StatusIgnored Status = "Ignored"
	StatusNormal  Status = "Normal"
	StatusStriked Status = "Striked"
	StatusRemoved Status = "Removed"
)

// Item is one canonical queue entry observed on a run. RemainingMS of zero
// means the platform reported no estimate.
type Item struct {
	ID          int64
	Name        string
	Size        uint64
	RemainingMS uint64
}

// Thresholds stay fixed for the duration of a run.
type Thresholds struct {
	SizeBytes         uint64
	TimeMS            uint64
	MaxStrikes        int
	AggressiveStrikes bool
}

// Outcome is the reporting projection of one evaluated item.
type Outcome struct {
	ID         int64  `json:"id"`
	Status     Status `json:"status"`
	Strikes    int    `json:"strikes"`
	MaxStrikes int    `json:"max_strikes"`
	Name       string `json:"name"`
	ETA        string `json:"eta"`
	Size       string `json:"size"`
}

// StrikesLabel renders the strike column, e.g. "2/3".
func (o Outcome) StrikesLabel() string {
	return strconv.Itoa(o.Strikes) + "/" + strconv.Itoa(o.MaxStrikes)
}

// Ledger stores strike counts keyed by item id. Ensure creates a zero entry
// for unseen ids and returns the current count.
type Ledger interface {
	Ensure(id int64) int
	Set(id int64, strikes int)
}

// Remover requests removal of a queue item. Implementations handle their own
// failures; the engine does not retry within a run.
type Remover interface {
	Remove(ctx context.Context, id int64)
}
