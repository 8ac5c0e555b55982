package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"

	"strikearr/internal/engine"
)

// EmptyQueueMessage is printed by TableSink when a run has no items.
const EmptyQueueMessage = "No items in queue."

// Sink receives the ordered outcomes of one run.
type Sink interface {
	Render(runID string, outcomes []engine.Outcome) error
}

// New returns the sink for an output format ("table" or "json").
func New(format string, w io.Writer) (Sink, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "table":
		return NewTableSink(w), nil
	case "json":
		return &JSONSink{w: w}, nil
	default:
		return nil, fmt.Errorf("output format: unsupported value %q", format)
	}
}

// TableSink prints a table per run.
type TableSink struct {
	w        io.Writer
	colorize bool
}

func NewTableSink(w io.Writer) *TableSink {
	return &TableSink{w: w, colorize: ShouldColorize(w)}
}

func (s *TableSink) Render(_ string, outcomes []engine.Outcome) error {
	if len(outcomes) == 0 {
		_, err := fmt.Fprintln(s.w, EmptyQueueMessage)
		return err
	}

	rows := make([][]string, 0, len(outcomes))
	for _, outcome := range outcomes {
		rows = append(rows, []string{
			outcome.StrikesLabel(),
			s.status(outcome.Status),
			outcome.Name,
			outcome.ETA,
			outcome.Size,
		})
	}
	out := Table(
		[]string{"Strikes", "Status", "Name", "ETA", "Size"},
		rows,
		[]ColumnAlignment{AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight},
	)
	_, err := fmt.Fprintln(s.w, out)
	return err
}

func (s *TableSink) status(status engine.Status) string {
	if !s.colorize {
		return string(status)
	}
	return statusColors(status).Sprint(string(status))
}

func statusColors(status engine.Status) text.Colors {
	switch status {
	case engine.StatusRemoved:
		return text.Colors{text.FgRed, text.Bold}
	case engine.StatusStriked:
		return text.Colors{text.FgYellow}
	case engine.StatusNormal:
		return text.Colors{text.FgGreen}
	case engine.StatusIgnored, engine.StatusPending:
		return text.Colors{text.FgBlue}
	default:
		return text.Colors{}
	}
}

// JSONSink writes one indented JSON document per run.
type JSONSink struct {
	w io.Writer
}

func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{w: w}
}

type jsonReport struct {
	RunID string           `json:"run_id"`
	Items []engine.Outcome `json:"items"`
}

func (s *JSONSink) Render(runID string, outcomes []engine.Outcome) error {
	if outcomes == nil {
		outcomes = []engine.Outcome{}
	}
	enc := json.NewEncoder(s.w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{RunID: runID, Items: outcomes})
}
