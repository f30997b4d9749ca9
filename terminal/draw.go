package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"flowkit/scene"
	"flowkit/shape"
)

var (
	styleShape  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleStatus = tcell.StyleDefault.Reverse(true)
	styleCursor = tcell.StyleDefault.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack)
)

func (s *Shell) draw() {
	s.screen.Clear()

	for _, o := range s.scene.Objects() {
		if scene.IsUserContent(o) {
			s.drawObject(o)
		}
	}

	s.drawStatus()
	s.screen.ShowCursor(s.cursorX, s.cursorY)
	s.screen.SetContent(s.cursorX, s.cursorY, '+', nil, styleCursor)
	s.screen.Show()
}

// drawObject renders a shape's bounding box as a bordered cell rectangle.
// Rectangles get square corners; everything else rounds, which is as close
// as character cells get to circles and diamonds.
func (s *Shell) drawObject(o *scene.Object) {
	x := int(o.X) / cellW
	y := int(o.Y) / cellH
	w := max(int(o.Width)/cellW, 2)
	h := max(int(o.Height)/cellH, 2)

	tl, tr, bl, br := '┌', '┐', '└', '┘'
	if shape.ParseType(o.Type) != shape.Rectangle {
		tl, tr, bl, br = '╭', '╮', '╰', '╯'
	}

	s.screen.SetContent(x, y, tl, nil, styleShape)
	s.screen.SetContent(x+w-1, y, tr, nil, styleShape)
	s.screen.SetContent(x, y+h-1, bl, nil, styleShape)
	s.screen.SetContent(x+w-1, y+h-1, br, nil, styleShape)
	for cx := x + 1; cx < x+w-1; cx++ {
		s.screen.SetContent(cx, y, '─', nil, styleShape)
		s.screen.SetContent(cx, y+h-1, '─', nil, styleShape)
	}
	for cy := y + 1; cy < y+h-1; cy++ {
		s.screen.SetContent(x, cy, '│', nil, styleShape)
		s.screen.SetContent(x+w-1, cy, '│', nil, styleShape)
	}

	if o.Text != "" {
		label := o.Text
		if len(label) > w-2 && w > 3 {
			label = label[:w-3] + "…"
		}
		lx := x + (w-len([]rune(label)))/2
		_, anchorY := shape.TextPosition(o.X, o.Y, o.Width, o.Height, shape.ParseType(o.Type))
		ly := clamp(int(anchorY)/cellH, y+1, y+h-2)
		for i, r := range label {
			s.screen.SetContent(lx+i, ly, r, nil, styleShape)
		}
	}
}

func (s *Shell) drawStatus() {
	w, h := s.screen.Size()
	y := h - 1

	line := s.status
	if s.editing {
		line = "label: " + string(s.editBuf)
	}
	pos, total := s.history.Stats()
	line += fmt.Sprintf("  [history %d/%d", pos, total)
	if s.history.CanUndo() {
		line += " u"
	}
	if s.history.CanRedo() {
		line += " ^R"
	}
	line += "]"

	runes := []rune(line)
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		s.screen.SetContent(x, y, r, nil, styleStatus)
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
