package water

// Cell is the per-index state owned by the engine.
type Cell struct {
	WaterLevel int  `json:"water_level"`
	Blocking   bool `json:"blocking"`
	// Flow bounds how much water may still be pulled through the cell during
	// the current pass.
	Flow int `json:"flow"`
}

// CellEdit is a host-driven mutation. Nil fields are left untouched.
type CellEdit struct {
	Blocking   *bool
	WaterLevel *int
}

// SetBlocking returns an edit toggling the blocking flag.
func SetBlocking(b bool) CellEdit { return CellEdit{Blocking: &b} }

// SetWaterLevel returns an edit assigning a water level.
func SetWaterLevel(level int) CellEdit { return CellEdit{WaterLevel: &level} }

// Potential ranks a cell at row y holding level units of water. The row step
// exceeds every possible level so a higher row always outranks a lower one.
func Potential(y, level, maxLevel, margin int) int {
	return y*(maxLevel+1+margin) + level
}
