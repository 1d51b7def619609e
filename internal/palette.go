package internal

import (
	"image/color"
)

// fill colors of the charts, one per test
var palette = []color.RGBA{
	{R: 100, G: 149, B: 237, A: 200}, // CornflowerBlue
	{R: 244, G: 164, B: 96, A: 200},  // SandyBrown
	{R: 60, G: 179, B: 113, A: 200},  // MediumSeaGreen
	{R: 147, G: 112, B: 219, A: 200}, // MediumPurple
	{R: 255, G: 99, B: 71, A: 200},   // Tomato
	{R: 32, G: 178, B: 170, A: 200},  // LightSeaGreen
	{R: 255, G: 105, B: 180, A: 200}, // HotPink
	{R: 240, G: 230, B: 140, A: 200}, // Khaki
	{R: 70, G: 130, B: 180, A: 200},  // SteelBlue
	{R: 210, G: 105, B: 30, A: 200},  // Chocolate
}

// testColor returns the chart color of the i-th test.
func testColor(i int) color.Color {
	return palette[i%len(palette)]
}
