package ui

import (
	"fmt"
	"strings"

	"water-ca/internal/sims/water"
)

// Status is the engine summary shown above the grid.
type Status struct {
	Mode      water.Mode
	Stats     water.Stats
	Water     int
	Settled   bool
	Paused    bool
	Searching bool
	Brush     string
}

// Lines formats the status as overlay rows.
func (s Status) Lines() []string {
	var flags []string
	if s.Paused {
		flags = append(flags, "paused")
	}
	if s.Settled {
		flags = append(flags, "settled")
	}
	if s.Searching {
		flags = append(flags, "searching")
	}
	if s.Brush != "" && s.Brush != "select" {
		flags = append(flags, "brush:"+s.Brush)
	}

	head := fmt.Sprintf("%s  water %d  tick %d", strings.ToUpper(s.Mode.String()), s.Water, s.Stats.Ticks)
	if len(flags) > 0 {
		head += "  [" + strings.Join(flags, " ") + "]"
	}
	return []string{
		head,
		fmt.Sprintf("moved %d  exhausted %d  aborted %d  rebuilds %d",
			s.Stats.Transfers, s.Stats.Exhausted, s.Stats.Aborted, s.Stats.Rebuilds),
	}
}

// Help lists the keyboard and mouse bindings.
func Help() string {
	return "1/2/3 mode  space pause  N step  R reset  RMB water  LMB wall  Q quit"
}
