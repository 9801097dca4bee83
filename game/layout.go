package game

import rl "github.com/gen2brain/raylib-go/raylib"

// Layout places the scene elements for a screen size.
type Layout struct {
	Width, Height float32

	Basin       rl.Rectangle
	Sack        rl.Rectangle
	Thermometer rl.Rectangle

	WaterDial  rl.Vector2
	TempDial   rl.Vector2
	DialRadius float32
}

// NewLayout computes positions for a w x h screen.
func NewLayout(w, h float32) Layout {
	return Layout{
		Width:       w,
		Height:      h,
		Basin:       rl.Rectangle{X: w * 0.3, Y: h * 0.55, Width: w * 0.4, Height: h * 0.3},
		Sack:        rl.Rectangle{X: w * 0.78, Y: h * 0.8, Width: 90, Height: 60},
		Thermometer: rl.Rectangle{X: w * 0.86, Y: h * 0.15, Width: 28, Height: h * 0.55},
		WaterDial:   rl.Vector2{X: w * 0.14, Y: h * 0.35},
		TempDial:    rl.Vector2{X: w * 0.14, Y: h * 0.72},
		DialRadius:  60,
	}
}

// InBasin reports whether (x, y) is over the basin.
func (l Layout) InBasin(x, y float32) bool {
	return inRect(l.Basin, x, y)
}

// InSack reports whether (x, y) is over the mineral sack.
func (l Layout) InSack(x, y float32) bool {
	return inRect(l.Sack, x, y)
}

func inRect(r rl.Rectangle, x, y float32) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}
