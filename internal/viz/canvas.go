package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/verletsim/internal/palette"
)

// A Braille cell holds 2x4 dots; pixelMap[row][col] is the bit for each
// dot, added to U+2800.
const brailleBase = 0x2800

var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of Braille cells, each 2x4 sub-pixels. Every cell also
// remembers the fastest particle drawn into it so rows can be coloured.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Speed         [][]float64
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Speed:  make([][]float64, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Speed[i] = make([]float64, w)
	}
	c.Clear()
	return c
}

// SubWidth and SubHeight are the canvas size in sub-pixels.
func (c *Canvas) SubWidth() int  { return c.Width * 2 }
func (c *Canvas) SubHeight() int { return c.Height * 4 }

// Set lights the sub-pixel (x, y). Out-of-range points are dropped.
func (c *Canvas) Set(x, y int) {
	c.Plot(x, y, 0)
}

// cell returns the Braille cell holding sub-pixel (x, y) and its dot bit.
func (c *Canvas) cell(x, y int) (row, col int, bit rune, ok bool) {
	if x < 0 || y < 0 || x >= c.SubWidth() || y >= c.SubHeight() {
		return 0, 0, 0, false
	}
	return y / 4, x / 2, rune(pixelMap[y%4][x%2]), true
}

// Plot lights (x, y) and records speed for the cell holding it.
func (c *Canvas) Plot(x, y int, speed float64) {
	row, col, bit, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] |= bit
	c.Speed[row][col] = max(c.Speed[row][col], speed)
}

func (c *Canvas) Unset(x, y int) {
	if row, col, bit, ok := c.cell(x, y); ok {
		c.Grid[row][col] &^= bit
	}
}

// Disk fills a disk of sub-pixel radius r centred on (cx, cy). A radius
// below one sub-pixel still lights the centre.
func (c *Canvas) Disk(cx, cy int, r float64, speed float64) {
	ri := int(r)
	if ri < 1 {
		c.Plot(cx, cy, speed)
		return
	}
	r2 := r * r
	for dy := -ri; dy <= ri; dy++ {
		for dx := -ri; dx <= ri; dx++ {
			if float64(dx*dx+dy*dy) <= r2 {
				c.Plot(cx+dx, cy+dy, speed)
			}
		}
	}
}

// Lit reports whether sub-pixel (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	row, col, bit, ok := c.cell(x, y)
	return ok && c.Grid[row][col]&bit != 0
}

// Clear blanks every cell and forgets the recorded speeds.
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBase
			c.Speed[i][j] = 0
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Colored renders the canvas with every lit cell coloured by its speed.
// Runs of equal colour share one style to keep the escape sequences short.
func (c *Canvas) Colored() string {
	var b strings.Builder
	for row := range c.Grid {
		start := 0
		for start < c.Width {
			hex := c.cellHex(row, start)
			end := start + 1
			for end < c.Width && c.cellHex(row, end) == hex {
				end++
			}
			run := string(c.Grid[row][start:end])
			if hex == "" {
				b.WriteString(run)
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(run))
			}
			start = end
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (c *Canvas) cellHex(row, col int) string {
	if c.Grid[row][col] == brailleBase {
		return ""
	}
	return palette.Hex(c.Speed[row][col])
}
