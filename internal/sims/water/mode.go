package water

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Mode selects how much work one Advance call performs.
type Mode uint8

const (
	// ModeRealtime runs targets to conclusion until the candidate pool is
	// exhausted and a rebuild happens.
	ModeRealtime Mode = iota
	// ModeResolution runs until one search concludes or a rebuild happens.
	ModeResolution
	// ModeStep performs exactly one state transition.
	ModeStep
)

var modeNames = [...]string{
	ModeRealtime:   "realtime",
	ModeResolution: "resolution",
	ModeStep:       "step",
}

// Modes lists every stepping mode in declaration order.
func Modes() []Mode { return []Mode{ModeRealtime, ModeResolution, ModeStep} }

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Valid reports whether m is one of the declared modes.
func (m Mode) Valid() bool { return int(m) < len(modeNames) }

// endsTick reports whether ev closes the current Advance call under m.
func (m Mode) endsTick(ev Event) bool {
	switch m {
	case ModeStep:
		return true
	case ModeResolution:
		switch ev {
		case EventRebuilt, EventResolved, EventExhausted, EventAborted:
			return true
		}
		return false
	default:
		return ev == EventRebuilt
	}
}

// ParseMode resolves a case-insensitive mode name. Unknown names yield
// ErrInvalidMode with a suggestion when one is close enough.
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, m := range Modes() {
		if m.String() == name {
			return m, nil
		}
	}
	if guess, ok := suggestMode(name); ok {
		return 0, fmt.Errorf("%w: %q (did you mean %q?)", ErrInvalidMode, s, guess)
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

func suggestMode(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	best, bestDist := "", -1
	for _, m := range Modes() {
		cand := m.String()
		if strings.HasPrefix(cand, name) {
			return cand, true
		}
		dist := levenshtein.ComputeDistance(name, cand)
		if dist > suggestLimit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best, bestDist >= 0
}

func suggestLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
