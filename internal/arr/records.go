package arr

import (
	"math"

	"strikearr/internal/engine"
	"strikearr/internal/units"
)

const unknownName = "Unknown"

type queuePage struct {
	Records []Record `json:"records"`
}

// Record is a queue entry as returned by the platform. Only the fields the
// engine needs are decoded.
type Record struct {
	ID       int64   `json:"id"`
	Size     float64 `json:"size"`
	TimeLeft *string `json:"timeleft,omitempty"`
	Movie    *Media  `json:"movie,omitempty"`
	Series   *Media  `json:"series,omitempty"`
}

// Media carries the title of the movie or series a record belongs to.
type Media struct {
	Title string `json:"title"`
}

// Canonicalize converts platform records into engine items, preserving order.
func Canonicalize(platform string, records []Record) []engine.Item {
	items := make([]engine.Item, 0, len(records))
	for _, record := range records {
		items = append(items, engine.Item{
			ID:          record.ID,
			Name:        recordName(platform, record),
			Size:        recordSize(record.Size),
			RemainingMS: recordRemaining(record.TimeLeft),
		})
	}
	return items
}

func recordName(platform string, record Record) string {
	var source *Media
	switch platform {
	case PlatformRadarr:
		source = record.Movie
	case PlatformSonarr:
		source = record.Series
	}
	if source == nil || source.Title == "" {
		return unknownName
	}
	return source.Title
}

func recordSize(size float64) uint64 {
	if math.IsNaN(size) || size <= 0 {
		return 0
	}
	if size >= math.MaxUint64 {
		return math.MaxUint64
	}
	return uint64(size)
}

func recordRemaining(timeLeft *string) uint64 {
	if timeLeft == nil {
		return units.ParseHMS("0")
	}
	return units.ParseHMS(*timeLeft)
}
