package main

// cellAspect is how many pointer units one terminal row spans.
// Rows are roughly twice as tall as columns are wide.
const cellAspect = 2

// rect is a box of terminal cells.
type rect struct {
	X, Y, W, H int
}

func (r rect) contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// termLayout positions the controls on a terminal of the given size.
type termLayout struct {
	Width, Height int

	WaterDial  [2]int // Pivot cell
	TempDial   [2]int
	DialRadius int // In pointer units

	Basin       rect
	Sack        rect
	Thermometer rect
}

func newTermLayout(w, h int) termLayout {
	l := termLayout{Width: w, Height: h, DialRadius: 8}
	l.WaterDial = [2]int{12, h/4 + 1}
	l.TempDial = [2]int{12, h*3/4 - 1}
	l.Basin = rect{X: w / 3, Y: h / 2, W: w / 3, H: max(h/2-3, 3)}
	l.Sack = rect{X: w - 24, Y: h - 4, W: 12, H: 3}
	l.Thermometer = rect{X: w - 6, Y: 3, W: 3, H: max(h-9, 5)}
	return l
}

// pointer converts a cell to dial pointer coordinates.
func pointer(x, y int) (float64, float64) {
	return float64(x), float64(y * cellAspect)
}

// onDial reports whether cell (x, y) is on the dial pivoted at p.
func (l termLayout) onDial(p [2]int, x, y int) bool {
	px, py := pointer(p[0], p[1])
	cx, cy := pointer(x, y)
	dx, dy := cx-px, cy-py
	r := float64(l.DialRadius + 2)
	return dx*dx+dy*dy <= r*r
}
