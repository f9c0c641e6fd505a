// Package visual draws mirror-field traversals on a terminal.
//
// The active field is laid out as an (N+2)×(N+2) grid, three columns per
// cell: perimeter values in hex around the edge, mirrors as '/', '\', '-'
// or blank inside, and the node the ray currently occupies highlighted in
// black on white. A header line names the field. Rendering only reads the
// field; the per-step delay is applied after the frame is shown.
package visual

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/katalvlaran/mirrorfield/field"
	"github.com/katalvlaran/mirrorfield/traverse"
)

const cellWidth = 3

var (
	styleNormal    = tcell.StyleDefault
	stylePerimeter = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleHeader    = tcell.StyleDefault.Bold(true)
	styleActive    = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
)

// Renderer paints traversal steps onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	delay  time.Duration
	sleep  func(time.Duration)
}

// New wraps an initialized screen. delay is the pause after each frame.
func New(screen tcell.Screen, delay time.Duration) *Renderer {
	return &Renderer{screen: screen, delay: delay, sleep: time.Sleep}
}

// NewTerminal opens the controlling terminal.
func NewTerminal(delay time.Duration) (*Renderer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("visual: open screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("visual: init screen: %w", err)
	}
	screen.Clear()
	return New(screen, delay), nil
}

// Close restores the terminal.
func (r *Renderer) Close() {
	r.screen.Fini()
}

// Observe draws one traversal step and then pauses. Its signature matches
// cipher.StepObserver.
func (r *Renderer) Observe(fieldIndex int, f *field.Field, st traverse.Step) {
	r.Draw(fieldIndex, f, st.Node)
	if r.delay > 0 {
		r.sleep(r.delay)
	}
}

// Draw paints field f with node at highlighted and shows the frame.
func (r *Renderer) Draw(fieldIndex int, f *field.Field, at field.Node) {
	n := f.Size()
	r.screen.Clear()
	r.put(0, 0, fmt.Sprintf("field %d", fieldIndex), styleHeader)

	for row := -1; row <= n; row++ {
		for col := -1; col <= n; col++ {
			text, node, style := r.cell(f, row, col)
			if node != field.NoNode && node == at {
				style = styleActive
			}
			r.put((col+1)*cellWidth, row+2, text, style)
		}
	}
	r.screen.Show()
}

// cell returns the label, node and base style of grid position (row, col),
// where -1 and n are the perimeter ring.
func (r *Renderer) cell(f *field.Field, row, col int) (string, field.Node, tcell.Style) {
	n := f.Size()
	slot := -1
	switch {
	case (row == -1 || row == n) && (col == -1 || col == n):
		return "   ", field.NoNode, styleNormal
	case row == -1:
		slot = col
	case col == n:
		slot = n + row
	case row == n:
		slot = 2*n + col
	case col == -1:
		slot = 3*n + row
	}
	if slot >= 0 {
		return fmt.Sprintf("%2x ", f.Slot(slot)), f.SlotNode(slot), stylePerimeter
	}
	m := f.Mirror(row, col)
	return fmt.Sprintf(" %c ", m.Symbol()), f.CellNode(row, col), styleNormal
}

func (r *Renderer) put(x, y int, s string, style tcell.Style) {
	for i, ch := range s {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}
