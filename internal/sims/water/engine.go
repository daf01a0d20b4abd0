package water

import (
	"context"
	"fmt"
	"log/slog"

	"water-ca/internal/core"
)

// State is the controller state derived from the target and queue/frontier
// emptiness. It is never stored.
type State uint8

const (
	StateNoTargetNoCandidates State = iota
	StateNoTargetHasCandidates
	StateTargetFrontierEmpty
	StateTargetFrontierNonEmpty
)

func (s State) String() string {
	switch s {
	case StateNoTargetNoCandidates:
		return "no-target/no-candidates"
	case StateNoTargetHasCandidates:
		return "no-target/has-candidates"
	case StateTargetFrontierEmpty:
		return "target/frontier-empty"
	case StateTargetFrontierNonEmpty:
		return "target/frontier-nonempty"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Event names the outcome of one transition.
type Event uint8

const (
	EventRebuilt Event = iota + 1
	EventSkipped
	EventStarted
	EventExpanded
	EventResolved
	EventExhausted
	EventAborted
)

func (e Event) String() string {
	switch e {
	case EventRebuilt:
		return "rebuilt"
	case EventSkipped:
		return "skipped"
	case EventStarted:
		return "started"
	case EventExpanded:
		return "expanded"
	case EventResolved:
		return "resolved"
	case EventExhausted:
		return "exhausted"
	case EventAborted:
		return "aborted"
	default:
		return fmt.Sprintf("Event(%d)", uint8(e))
	}
}

// Transfer describes one resolved search: a unit of water moved from Donor
// to Target along a path of Hops steps.
type Transfer struct {
	Donor           int `json:"donor"`
	Target          int `json:"target"`
	DonorPotential  int `json:"donor_potential"`
	TargetPotential int `json:"target_potential"`
	Threshold       int `json:"threshold"`
	Hops            int `json:"hops"`
}

// Stats counts engine activity since construction or the last Reset.
type Stats struct {
	Ticks     uint64 `json:"ticks"`
	Rebuilds  uint64 `json:"rebuilds"`
	Sessions  uint64 `json:"sessions"`
	Transfers uint64 `json:"transfers"`
	Exhausted uint64 `json:"exhausted"`
	Aborted   uint64 `json:"aborted"`
	Skipped   uint64 `json:"skipped"`
}

// DebugView exposes the in-progress search for visualisation.
type DebugView struct {
	Target    int   `json:"target"`
	HasTarget bool  `json:"has_target"`
	Visited   []int `json:"visited"`
	Frontier  []int `json:"frontier"`
}

// Engine owns a grid of cells and levels water one unit at a time. It is
// not safe for concurrent use; hosts call Advance once per tick and may edit
// cells between ticks.
type Engine struct {
	cfg  Config
	grid core.Grid

	cells  []Cell
	layout []Cell
	queue  *candidateQueue
	search search
	mode   Mode

	stats Stats
	// passTransfers is the transfer count at the most recent rebuild.
	passTransfers uint64
	passClean     bool
	settled       bool

	log        *slog.Logger
	onTransfer func(Transfer)
	nbuf       []int
	display    []uint8
}

// NewEngine returns an engine with every cell dry and open.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	grid, _ := core.NewGrid(cfg.Width, cfg.Height)
	n := grid.Len()
	e := &Engine{
		cfg:     cfg,
		grid:    grid,
		cells:   make([]Cell, n),
		search:  newSearch(n),
		mode:    cfg.Params.Mode,
		log:     slog.Default(),
		nbuf:    make([]int, 0, 4),
		display: make([]uint8, n),
	}
	e.queue = newCandidateQueue(n, e.Potential)
	return e, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// Grid returns the grid topology.
func (e *Engine) Grid() core.Grid { return e.grid }

// MaxWaterLevel returns the per-cell capacity.
func (e *Engine) MaxWaterLevel() int { return e.cfg.Params.MaxWaterLevel }

// SetLogger replaces the logger used for debug tracing. Nil restores
// slog.Default().
func (e *Engine) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	e.log = l
}

// OnTransfer registers fn to observe every resolved transfer. It runs after
// the water moved and before the session is torn down.
func (e *Engine) OnTransfer(fn func(Transfer)) { e.onTransfer = fn }

// Mode returns the active stepping mode.
func (e *Engine) Mode() Mode { return e.mode }

// SetMode changes the looping granularity from the next Advance call on.
func (e *Engine) SetMode(m Mode) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidMode, m)
	}
	e.mode = m
	e.cfg.Params.Mode = m
	return nil
}

// Stats returns the activity counters.
func (e *Engine) Stats() Stats { return e.stats }

// Settled reports whether the last complete pass between two rebuilds moved
// no water and saw no edits, which means further ticks change nothing.
func (e *Engine) Settled() bool { return e.settled }

// Potential returns the water potential of cell i.
func (e *Engine) Potential(i int) int {
	p := e.cfg.Params
	return Potential(e.grid.Y(i), e.cells[i].WaterLevel, p.MaxWaterLevel, p.Margin)
}

// TotalWater sums the water level over all cells.
func (e *Engine) TotalWater() int {
	total := 0
	for _, c := range e.cells {
		total += c.WaterLevel
	}
	return total
}

// CellState returns a snapshot of cell i.
func (e *Engine) CellState(i int) (Cell, error) {
	if !e.grid.Valid(i) {
		return Cell{}, fmt.Errorf("%w: %d not in [0,%d)", ErrOutOfBoundsIndex, i, e.grid.Len())
	}
	return e.cells[i], nil
}

// Snapshot copies every cell.
func (e *Engine) Snapshot() []Cell {
	return append([]Cell(nil), e.cells...)
}

// Levels copies every water level.
func (e *Engine) Levels() []int {
	out := make([]int, len(e.cells))
	for i, c := range e.cells {
		out[i] = c.WaterLevel
	}
	return out
}

// EditCell applies a host edit to cell i. Marking a cell blocking zeroes its
// level and flow; setting a level also sets the flow. Level edits on a cell
// that ends up blocking are ignored.
func (e *Engine) EditCell(i int, edit CellEdit) error {
	if !e.grid.Valid(i) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrOutOfBoundsIndex, i, e.grid.Len())
	}
	if edit.WaterLevel != nil {
		if lvl := *edit.WaterLevel; lvl < 0 || lvl > e.cfg.Params.MaxWaterLevel {
			return fmt.Errorf("%w: %d not in [0,%d]", ErrInvalidWaterLevel, lvl, e.cfg.Params.MaxWaterLevel)
		}
	}
	c := &e.cells[i]
	if edit.Blocking != nil {
		c.Blocking = *edit.Blocking
		if c.Blocking {
			c.WaterLevel = 0
			c.Flow = 0
		}
	}
	if edit.WaterLevel != nil && !c.Blocking {
		c.WaterLevel = *edit.WaterLevel
		c.Flow = *edit.WaterLevel
	}
	e.passClean = false
	e.settled = false
	return nil
}

// DebugView reports the active search, if any.
func (e *Engine) DebugView() DebugView {
	v := DebugView{Target: -1}
	if !e.search.active() {
		return v
	}
	v.Target = e.search.target
	v.HasTarget = true
	v.Visited = append([]int(nil), e.search.visited...)
	v.Frontier = e.search.pending()
	return v
}

// CandidateCount returns the number of queued candidates.
func (e *Engine) CandidateCount() int { return e.queue.Len() }

// State derives the controller state.
func (e *Engine) State() State {
	switch {
	case !e.search.active() && e.queue.Len() == 0:
		return StateNoTargetNoCandidates
	case !e.search.active():
		return StateNoTargetHasCandidates
	case e.search.frontierEmpty():
		return StateTargetFrontierEmpty
	default:
		return StateTargetFrontierNonEmpty
	}
}

// Advance runs one external tick under the current mode.
func (e *Engine) Advance() {
	e.stats.Ticks++
	for {
		if e.mode.endsTick(e.Transition()) {
			return
		}
	}
}

// Transition performs exactly one state-machine step and reports what
// happened.
func (e *Engine) Transition() Event {
	switch e.State() {
	case StateNoTargetNoCandidates:
		e.rebuild()
		return EventRebuilt
	case StateNoTargetHasCandidates:
		return e.selectTarget()
	case StateTargetFrontierEmpty:
		if !e.targetStillValid() {
			return e.abort()
		}
		e.stats.Exhausted++
		e.traceSession("search exhausted")
		e.search.end(e.cells)
		return EventExhausted
	default:
		if !e.targetStillValid() {
			return e.abort()
		}
		return e.expand()
	}
}

func (e *Engine) rebuild() {
	if e.stats.Rebuilds > 0 {
		e.settled = e.passClean && e.stats.Transfers == e.passTransfers
	}
	e.stats.Rebuilds++
	e.passTransfers = e.stats.Transfers
	e.passClean = true

	members := make([]int, 0, len(e.cells))
	for i := range e.cells {
		c := &e.cells[i]
		if c.Blocking {
			c.Flow = 0
			continue
		}
		c.Flow = c.WaterLevel
		if c.WaterLevel > 0 || e.neighbourHasWater(i) {
			members = append(members, i)
		}
	}
	e.queue.fill(members)

	if e.log.Enabled(context.Background(), slog.LevelDebug) {
		e.log.Debug("candidates rebuilt",
			"candidates", len(members),
			"rebuild", e.stats.Rebuilds,
			"settled", e.settled,
		)
	}
}

func (e *Engine) neighbourHasWater(i int) bool {
	for _, n := range e.grid.Neighbours(i, e.nbuf[:0]) {
		if e.cells[n].WaterLevel > 0 {
			return true
		}
	}
	return false
}

func (e *Engine) selectTarget() Event {
	i, _ := e.queue.popNext()
	c := e.cells[i]
	if c.Blocking || c.WaterLevel >= e.cfg.Params.MaxWaterLevel {
		e.stats.Skipped++
		return EventSkipped
	}
	e.stats.Sessions++
	e.search.begin(i, e.Potential(i)+e.cfg.Params.ThresholdGap)
	return EventStarted
}

// targetStillValid revalidates the target against edits made between ticks.
func (e *Engine) targetStillValid() bool {
	c := e.cells[e.search.target]
	return !c.Blocking && c.WaterLevel < e.cfg.Params.MaxWaterLevel
}

func (e *Engine) abort() Event {
	e.stats.Aborted++
	e.traceSession("search aborted")
	e.search.end(e.cells)
	return EventAborted
}

func (e *Engine) expand() Event {
	s := e.search.pop()
	target := e.search.target
	if s != target {
		if c := e.cells[s]; c.Blocking || c.WaterLevel == 0 {
			return EventExpanded
		}
	}
	if p := e.Potential(s); p >= e.search.threshold {
		if !e.pathIntact(s) {
			return e.abort()
		}
		e.resolve(s, target, p)
		return EventResolved
	}
	for _, n := range e.grid.Neighbours(s, e.nbuf[:0]) {
		if e.cells[n].Flow > 0 && !e.search.seen(n) {
			e.search.mark(n, s)
		}
	}
	return EventExpanded
}

// pathIntact walks the back-pointers from donor towards the target and
// reports whether every cell the unit would leave through is still open and
// has flow to give. Host edits made after a cell was expanded show up here.
func (e *Engine) pathIntact(donor int) bool {
	for cur := donor; e.search.cameFrom[cur] != rootParent; cur = e.search.cameFrom[cur] {
		if e.search.cameFrom[cur] == notVisited {
			panic(fmt.Sprintf("water: broken back-pointer chain at cell %d", cur))
		}
		if c := e.cells[cur]; c.Blocking || c.Flow <= 0 {
			return false
		}
	}
	return true
}

func (e *Engine) resolve(donor, target, donorPotential int) {
	if donor == target {
		panic("water: target resolved as its own donor")
	}
	t := Transfer{
		Donor:           donor,
		Target:          target,
		DonorPotential:  donorPotential,
		TargetPotential: e.Potential(target),
		Threshold:       e.search.threshold,
	}
	e.cells[target].WaterLevel++
	e.cells[donor].WaterLevel--
	for cur := donor; e.search.cameFrom[cur] != rootParent; cur = e.search.cameFrom[cur] {
		if e.search.cameFrom[cur] == notVisited {
			panic(fmt.Sprintf("water: broken back-pointer chain at cell %d", cur))
		}
		e.cells[cur].Flow--
		t.Hops++
	}
	e.queue.requeue(donor)
	e.queue.requeue(target)
	e.stats.Transfers++

	if e.onTransfer != nil {
		e.onTransfer(t)
	}
	if e.log.Enabled(context.Background(), slog.LevelDebug) {
		e.log.Debug("water transferred",
			"donor", donor,
			"target", target,
			"hops", t.Hops,
			"visited", len(e.search.visited),
		)
	}
	e.search.end(e.cells)
}

func (e *Engine) traceSession(msg string) {
	if !e.log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	e.log.Debug(msg,
		"target", e.search.target,
		"threshold", e.search.threshold,
		"visited", len(e.search.visited),
	)
}
