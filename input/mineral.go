package input

// MineralSink receives fertilizer dropped on the basin.
type MineralSink interface {
	ApplyMinerals(amount float64)
}

// MineralDrag is the drag-and-drop gesture that carries a fertilizer clump
// from the sack to the basin.
type MineralDrag struct {
	PerDrop float64

	sink   MineralSink
	active bool
	x, y   float64
}

// NewMineralDrag creates a gesture that delivers perDrop units to sink.
func NewMineralDrag(perDrop float64, sink MineralSink) *MineralDrag {
	return &MineralDrag{PerDrop: perDrop, sink: sink}
}

// Begin picks up a clump at (x, y).
func (m *MineralDrag) Begin(x, y float64) {
	m.active = true
	m.x, m.y = x, y
}

// Move drags the clump.
func (m *MineralDrag) Move(x, y float64) {
	if m.active {
		m.x, m.y = x, y
	}
}

// Drop releases the clump. If it lands over the basin the sink gets PerDrop units.
// Returns whether minerals were delivered.
func (m *MineralDrag) Drop(overBasin bool) bool {
	if !m.active {
		return false
	}
	m.active = false
	if !overBasin || m.sink == nil {
		return false
	}
	m.sink.ApplyMinerals(m.PerDrop)
	return true
}

// Cancel discards the clump without delivering it.
func (m *MineralDrag) Cancel() {
	m.active = false
}

// Active reports whether a clump is being carried.
func (m *MineralDrag) Active() bool {
	return m.active
}

// Position returns the clump position.
func (m *MineralDrag) Position() (x, y float64) {
	return m.x, m.y
}
