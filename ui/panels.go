package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

var instructions = []string{
	"Keep the plant alive until it is fully grown.",
	"",
	"Turn the WATER dial to set the tank output.",
	"Turn the HEAT dial to follow the desired temperature.",
	"Drag mineral clumps from the sack into the basin.",
	"",
	"Warnings appear before anything dies. Watch them.",
}

const (
	panelWidth  = 460
	buttonWidth = 140
)

// InstructionsPanel draws the start screen. Returns true when Start is clicked.
func InstructionsPanel(screenWidth, screenHeight int32) bool {
	r := NewRenderer()
	h := int32(len(instructions))*20 + 110
	x := (screenWidth - panelWidth) / 2
	y := (screenHeight - h) / 2
	r.DrawPanel(x, y, panelWidth, h)

	rl.DrawText("Hydroponic Basin", x+20, y+16, 24, rl.White)
	ty := y + 52
	for _, line := range instructions {
		rl.DrawText(line, x+20, ty, 16, rl.LightGray)
		ty += 20
	}

	return gui.Button(rl.Rectangle{
		X:      float32(x + (panelWidth-buttonWidth)/2),
		Y:      float32(y + h - 44),
		Width:  buttonWidth,
		Height: 30,
	}, "Start")
}

// GameOverPanel draws the outcome. Returns true when Restart is clicked.
func GameOverPanel(screenWidth, screenHeight int32, message string, victory bool, elapsed float64) bool {
	r := NewRenderer()
	const h = 150
	x := (screenWidth - panelWidth) / 2
	y := (screenHeight - h) / 2
	r.DrawPanel(x, y, panelWidth, h)

	title, color := "The plant died", rl.Red
	if victory {
		title, color = "Victory!", rl.Green
	}
	rl.DrawText(title, x+20, y+16, 24, color)
	rl.DrawText(message, x+20, y+50, 16, rl.LightGray)
	rl.DrawText(fmt.Sprintf("Survived %.1f seconds", elapsed), x+20, y+72, 16, rl.Gray)

	return gui.Button(rl.Rectangle{
		X:      float32(x + (panelWidth-buttonWidth)/2),
		Y:      float32(y + h - 44),
		Width:  buttonWidth,
		Height: 30,
	}, "Restart")
}

// TimeScaleSlider draws a speed slider and returns the chosen scale.
func TimeScaleSlider(x, y float32, value, minScale, maxScale float32) float32 {
	rl.DrawText("Speed", int32(x), int32(y)+2, 14, rl.Gray)
	return gui.SliderBar(
		rl.Rectangle{X: x + 50, Y: y, Width: 160, Height: 18},
		fmt.Sprintf("%.2gx", minScale), fmt.Sprintf("%.0fx", maxScale),
		value, minScale, maxScale,
	)
}
