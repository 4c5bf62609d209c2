package viz

import (
	"strings"

	"gonum.org/v1/gonum/floats"
)

const blank = 0x2800

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a character grid addressed in Braille sub-pixels, two
// columns and four rows per cell.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set turns on the sub-pixel at (x, y). Out of range points are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Plot traces values left to right, scaled to fill the canvas height.
// It returns the index-to-column mapping used, so callers can place a
// cursor over a given sample.
func (c *Canvas) Plot(values []float64) func(i int) int {
	pw, ph := c.Width*2, c.Height*4
	col := func(i int) int {
		if len(values) < 2 {
			return 0
		}
		return i * (pw - 1) / (len(values) - 1)
	}
	if len(values) == 0 {
		return col
	}

	lo, hi := floats.Min(values), floats.Max(values)
	span := hi - lo
	if span == 0 {
		span = 1
	}
	row := func(v float64) int {
		return ph - 1 - int((v-lo)/span*float64(ph-1)+0.5)
	}

	px, py := col(0), row(values[0])
	c.Set(px, py)
	for i := 1; i < len(values); i++ {
		x, y := col(i), row(values[i])
		c.DrawLine(px, py, x, y)
		px, py = x, y
	}
	return col
}

// Column fills every sub-pixel of column x, used as a cursor marker.
func (c *Canvas) Column(x int) {
	for y := 0; y < c.Height*4; y++ {
		c.Set(x, y)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
