package terminal

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// cellGrid is the part of tcell.Screen the console draws on.
type cellGrid interface {
	Size() (width, height int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	GetContent(x, y int) (primary rune, combining []rune, style tcell.Style, width int)
}

// console renders a byte stream onto a cell grid the way a raw-mode tty
// would: '\r' returns to column 0 and '\n' moves down without returning.
// Writing past the last row scrolls the grid up by one line.
type console struct {
	grid     cellGrid
	col, row int
}

func newConsole(grid cellGrid) *console {
	return &console{grid: grid}
}

// home moves the text cursor to the top-left corner.
func (c *console) home() {
	c.col, c.row = 0, 0
}

func (c *console) write(p []byte) {
	for len(p) > 0 {
		r, size := utf8.DecodeRune(p)
		p = p[size:]
		c.put(r)
	}
}

func (c *console) put(r rune) {
	width, height := c.grid.Size()
	if width <= 0 || height <= 0 {
		return
	}

	switch r {
	case '\r':
		c.col = 0
		return
	case '\n':
		c.lineFeed(height)
		return
	}

	if c.col >= width {
		c.col = 0
		c.lineFeed(height)
	}
	c.grid.SetContent(c.col, c.row, r, nil, tcell.StyleDefault)
	c.col++
}

func (c *console) lineFeed(height int) {
	if c.row < height-1 {
		c.row++
		return
	}
	c.scroll()
}

// scroll moves every row up by one and blanks the last row.
func (c *console) scroll() {
	width, height := c.grid.Size()
	for y := 1; y < height; y++ {
		for x := 0; x < width; x++ {
			r, comb, style, _ := c.grid.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
			c.grid.SetContent(x, y-1, r, comb, style)
		}
	}
	for x := 0; x < width; x++ {
		c.grid.SetContent(x, height-1, ' ', nil, tcell.StyleDefault)
	}
}
