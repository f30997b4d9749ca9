// Package terminal implements the interactive shell: a minimal cell-based
// view of the scene with cursor-driven editing, backed by the history
// manager for undo/redo.
//
// The terminal is a crude approximation of the pixel canvas. Scene pixels
// map to character cells (cellW x cellH pixels per cell), which is enough to
// exercise sizing, layout and history end to end without a GUI toolkit.
package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"flowkit/export"
	"flowkit/history"
	"flowkit/scene"
	"flowkit/shape"
)

// Pixels per character cell. Terminal cells are roughly twice as tall as
// they are wide.
const (
	cellW = 8
	cellH = 16
)

// Shell is one interactive editing session.
type Shell struct {
	screen  tcell.Screen
	scene   *scene.Scene
	history *history.Manager

	cursorX, cursorY int // in cells
	status           string
	outPath          string

	editing  bool
	editBuf  []rune
	editObj  *scene.Object
	nextID   int
	quitting bool
}

// Run starts the shell and blocks until the user quits.
func Run(sc *scene.Scene, hist *history.Manager, outPath string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	sh := &Shell{
		screen:  screen,
		scene:   sc,
		history: hist,
		outPath: outPath,
		status:  "r/c/d/e/t add shape, x delete, Enter edit label, u undo, Ctrl-R redo, p save png, q quit",
		nextID:  1,
	}
	sc.OnRedraw(func() { sh.draw() })

	sh.draw()
	for !sh.quitting {
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
			sh.draw()
		case *tcell.EventKey:
			sh.handleKey(ev)
			sh.draw()
		}
	}
	return nil
}

func (s *Shell) handleKey(ev *tcell.EventKey) {
	if s.editing {
		s.handleEditKey(ev)
		return
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		s.quitting = true
	case tcell.KeyUp:
		s.moveCursor(0, -1)
	case tcell.KeyDown:
		s.moveCursor(0, 1)
	case tcell.KeyLeft:
		s.moveCursor(-1, 0)
	case tcell.KeyRight:
		s.moveCursor(1, 0)
	case tcell.KeyCtrlR:
		s.redo()
	case tcell.KeyEnter:
		s.startEdit()
	case tcell.KeyRune:
		s.handleRune(ev.Rune())
	}
}

func (s *Shell) handleRune(r rune) {
	switch r {
	case 'q':
		s.quitting = true
	case 'r':
		s.addShape(shape.Rectangle)
	case 'c':
		s.addShape(shape.Circle)
	case 'd':
		s.addShape(shape.Diamond)
	case 'e':
		s.addShape(shape.Ellipse)
	case 't':
		s.addShape(shape.Triangle)
	case 'x':
		s.deleteUnderCursor()
	case 'u':
		s.undo()
	case 'p':
		s.savePNG()
	case 'h':
		s.moveCursor(-1, 0)
	case 'j':
		s.moveCursor(0, 1)
	case 'k':
		s.moveCursor(0, -1)
	case 'l':
		s.moveCursor(1, 0)
	}
}

func (s *Shell) handleEditKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		s.editing = false
		s.status = "edit cancelled"
	case tcell.KeyEnter:
		s.commitEdit()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(s.editBuf) > 0 {
			s.editBuf = s.editBuf[:len(s.editBuf)-1]
		}
	case tcell.KeyRune:
		s.editBuf = append(s.editBuf, ev.Rune())
	}
}

func (s *Shell) moveCursor(dx, dy int) {
	w, h := s.screen.Size()
	s.cursorX = clamp(s.cursorX+dx, 0, w-1)
	s.cursorY = clamp(s.cursorY+dy, 0, h-2) // bottom row is the status line
}

// addShape creates an auto-sized shape at the cursor and records the edit.
func (s *Shell) addShape(typ shape.Type) {
	label := fmt.Sprintf("Node %d", s.nextID)
	s.nextID++
	size := shape.Calculate(label, typ, shape.SizeOptions{})

	o := scene.NewObject(typ.String())
	o.X = float64(s.cursorX * cellW)
	o.Y = float64(s.cursorY * cellH)
	o.Width = float64(size.Width)
	o.Height = float64(size.Height)
	o.Text = label
	o.Fill = "#ffffff"
	o.Stroke = "#1e1e1e"
	o.FontSize = 14
	s.scene.Add(o)
	s.status = fmt.Sprintf("added %s %dx%d", typ, size.Width, size.Height)
}

func (s *Shell) deleteUnderCursor() {
	if o := s.objectUnderCursor(); o != nil {
		s.scene.Remove(o)
		s.status = "deleted " + o.Type
	}
}

func (s *Shell) startEdit() {
	o := s.objectUnderCursor()
	if o == nil {
		s.status = "nothing under cursor"
		return
	}
	s.editing = true
	s.editObj = o
	s.editBuf = []rune(o.Text)
	s.status = "editing label (Enter to commit, Esc to cancel)"
}

// commitEdit applies the new label and re-sizes the shape to fit it.
func (s *Shell) commitEdit() {
	s.editing = false
	o := s.editObj
	o.Text = string(s.editBuf)
	size := shape.Calculate(o.Text, shape.ParseType(o.Type), shape.SizeOptions{})
	o.Width = float64(size.Width)
	o.Height = float64(size.Height)
	s.scene.NotifyModified(o)
	s.status = "label updated"
}

func (s *Shell) undo() {
	if s.history.Undo() {
		s.status = "undo"
	} else {
		s.status = "nothing to undo"
	}
}

func (s *Shell) redo() {
	if s.history.Redo() {
		s.status = "redo"
	} else {
		s.status = "nothing to redo"
	}
}

func (s *Shell) savePNG() {
	path := s.outPath
	if path == "" {
		path = "flowkit.png"
	}
	snap := Capture(s.scene)
	if err := export.PNG(snap, path, export.PNGOptions{}); err != nil {
		s.status = "export failed: " + err.Error()
		return
	}
	s.status = "saved " + path
}

// objectUnderCursor returns the topmost user object containing the cursor.
func (s *Shell) objectUnderCursor() *scene.Object {
	px := float64(s.cursorX * cellW)
	py := float64(s.cursorY * cellH)
	objs := s.scene.Objects()
	for i := len(objs) - 1; i >= 0; i-- {
		o := objs[i]
		if !scene.IsUserContent(o) {
			continue
		}
		if px >= o.X && px < o.X+o.Width && py >= o.Y && py < o.Y+o.Height {
			return o
		}
	}
	return nil
}

// Capture builds a snapshot of the scene's current user content, mirroring
// what the history manager records.
func Capture(sc *scene.Scene) scene.Snapshot {
	var snap scene.Snapshot
	for _, o := range sc.Objects() {
		if !scene.IsUserContent(o) {
			continue
		}
		if rec, err := scene.Encode(o); err == nil {
			snap.Objects = append(snap.Objects, rec)
		}
	}
	snap.BackgroundColor = sc.Background()
	return snap
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
