package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/noahvogt/modulplaner-backend/pkg/config"
	"github.com/noahvogt/modulplaner-backend/pkg/model"
)

// Grid maps a cell's grid position onto weekdays and clock times using
// the allowed-timeslot rows from the engine configuration.
type Grid struct {
	starts []int // start seconds per row
	ends   []int // end seconds per row
}

// NewGrid compiles the configured timeslot windows into second offsets.
func NewGrid(cfg *config.EngineConfig) (*Grid, error) {
	g := &Grid{}
	for i, w := range cfg.Timeslots {
		start, err := clockToSeconds(w.Start)
		if err != nil {
			return nil, fmt.Errorf("timeslot row %d: %w", i, err)
		}
		end, err := clockToSeconds(w.End)
		if err != nil {
			return nil, fmt.Errorf("timeslot row %d: %w", i, err)
		}
		if end <= start {
			return nil, fmt.Errorf("timeslot row %d: end %q not after start %q", i, w.End, w.Start)
		}
		g.starts = append(g.starts, start)
		g.ends = append(g.ends, end)
	}
	return g, nil
}

// Weekday maps a grid column onto its weekday.
func (g *Grid) Weekday(col int) (model.Weekday, error) {
	if col < int(model.Montag) || col > int(model.Sonntag) {
		return 0, fmt.Errorf("column %d outside weekday range", col)
	}
	return model.Weekday(col), nil
}

// Span maps a cell's row and row span onto start and end seconds. A cell
// spanning rows n..n+k starts at row n's start and ends at row n+k's end.
func (g *Grid) Span(row, rowSpan int) (start, end int, err error) {
	if rowSpan < 1 {
		rowSpan = 1
	}
	last := row + rowSpan - 1
	if row < 0 || last >= len(g.starts) {
		return 0, 0, fmt.Errorf("rows %d..%d outside timeslot grid (%d rows)", row, last, len(g.starts))
	}
	return g.starts[row], g.ends[last], nil
}

// clockToSeconds converts "8:15" or "18:05" to seconds since midnight.
func clockToSeconds(clock string) (int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", clock)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", clock, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", clock, err)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("clock value %q out of range", clock)
	}
	return hours*3600 + minutes*60, nil
}
