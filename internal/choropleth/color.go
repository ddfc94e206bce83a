package choropleth

import (
	"fmt"
	"math"
)

// viridis holds evenly spaced stops of the Viridis color scale.
var viridis = [][3]float64{
	{0x44, 0x01, 0x54},
	{0x48, 0x28, 0x78},
	{0x3e, 0x49, 0x89},
	{0x31, 0x68, 0x8e},
	{0x26, 0x82, 0x8e},
	{0x1f, 0x9e, 0x89},
	{0x35, 0xb7, 0x79},
	{0x6e, 0xce, 0x58},
	{0xb5, 0xde, 0x2b},
	{0xfd, 0xe7, 0x25},
}

// Viridis returns the hex color of value on a Viridis scale spanning [min, max].
// Values outside the range are clamped; a degenerate range maps to the middle.
func Viridis(value, min, max float64) string {
	t := 0.5
	if max > min {
		t = (value - min) / (max - min)
	}
	t = math.Max(0, math.Min(1, t))

	pos := t * float64(len(viridis)-1)
	i := int(math.Floor(pos))
	if i >= len(viridis)-1 {
		i = len(viridis) - 2
	}
	frac := pos - float64(i)

	var rgb [3]int
	for c := 0; c < 3; c++ {
		v := viridis[i][c] + (viridis[i+1][c]-viridis[i][c])*frac
		rgb[c] = int(math.Round(v))
	}
	return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])
}
