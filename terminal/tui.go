// Package terminal is the interactive frontend: it translates tcell mouse
// and key events into editor calls and draws the editor's scene as
// box-drawing cells. It holds no model state of its own.
package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"doodle/diagram"
	"doodle/editor"
	"doodle/render"
)

// Model units per terminal cell. Cells are roughly twice as tall as wide,
// so the vertical scale is doubled to keep diagrams near-square on screen.
const (
	cellW = 10
	cellH = 20
)

// UI is one running terminal session.
type UI struct {
	screen  tcell.Screen
	ed      *editor.Editor
	buttons tcell.ButtonMask
	mouseX  int
	mouseY  int
	// Edge label affordance positions from the last frame, for click
	// resolution by id.
	edgeCells map[[2]int]string
}

// Run drives the UI until the user quits.
func Run(ed *editor.Editor) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	ui := &UI{screen: screen, ed: ed}
	ui.loop()
	return nil
}

func (u *UI) loop() {
	for {
		u.draw()
		switch ev := u.screen.PollEvent().(type) {
		case *tcell.EventResize:
			u.screen.Sync()
		case *tcell.EventMouse:
			u.handleMouse(ev)
		case *tcell.EventKey:
			if quit := u.handleKey(ev); quit {
				return
			}
		}
	}
}

func (u *UI) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	u.mouseX, u.mouseY = x, y
	mx, my := float64(x*cellW), float64(y*cellH)
	buttons := ev.Buttons()

	pressed := buttons&tcell.Button1 != 0 && u.buttons&tcell.Button1 == 0
	released := buttons&tcell.Button1 == 0 && u.buttons&tcell.Button1 != 0
	u.buttons = buttons

	switch {
	case pressed:
		if id, ok := u.edgeCells[[2]int{x, y}]; ok {
			u.ed.SelectEdge(id)
			return
		}
		u.ed.PointerDown(mx, my)
	case released:
		u.ed.PointerUp(mx, my)
	default:
		u.ed.PointerMove(mx, my)
	}
}

func (u *UI) handleKey(ev *tcell.EventKey) (quit bool) {
	// An open edit session captures the keyboard.
	if u.ed.EditSession().Active() {
		switch ev.Key() {
		case tcell.KeyEnter:
			u.ed.CloseEdit()
		case tcell.KeyEscape:
			u.ed.CancelEdit()
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			u.ed.HandleTextRune(127)
		case tcell.KeyRune:
			u.ed.HandleTextRune(ev.Rune())
		}
		return false
	}

	switch ev.Rune() {
	case 'q':
		return true
	case 's':
		u.ed.SetTool(editor.ToolSelect)
	case 'c':
		u.ed.SetTool(editor.ToolConnector)
	case 'n':
		u.ed.AddNode(diagram.TypeProcess, u.mouseX*cellW, u.mouseY*cellH)
	case 'x':
		u.ed.DeleteSelection()
	case 'u':
		u.ed.Undo()
	case 'r':
		u.ed.Redo()
	case 'e':
		u.openEditOnSelection()
	}
	return false
}

func (u *UI) openEditOnSelection() {
	switch kind, id := u.ed.Selection(); kind {
	case editor.ItemNode:
		u.ed.OpenNodeEdit(id)
	case editor.ItemEdge:
		u.ed.OpenEdgeEdit(id)
	}
}

func (u *UI) draw() {
	u.screen.Clear()
	u.edgeCells = make(map[[2]int]string)
	scene := u.ed.Scene()

	for _, c := range scene.Curves {
		u.drawCurve(c)
	}
	for _, s := range scene.Shapes {
		u.drawShape(s)
	}
	if scene.Guide != nil {
		u.drawGuide(*scene.Guide)
	}
	u.drawStatus()
	u.screen.Show()
}

func (u *UI) drawShape(s render.Shape) {
	x0, y0 := s.X/cellW, s.Y/cellH
	w, h := s.Width/cellW, s.Height/cellH
	if w < 2 {
		w = 2
	}
	if h < 2 {
		h = 2
	}
	style := tcell.StyleDefault
	if s.Selected {
		style = style.Reverse(true)
	}

	for i := 1; i < w; i++ {
		u.screen.SetContent(x0+i, y0, '─', nil, style)
		u.screen.SetContent(x0+i, y0+h, '─', nil, style)
	}
	for i := 1; i < h; i++ {
		u.screen.SetContent(x0, y0+i, '│', nil, style)
		u.screen.SetContent(x0+w, y0+i, '│', nil, style)
	}
	u.screen.SetContent(x0, y0, '┌', nil, style)
	u.screen.SetContent(x0+w, y0, '┐', nil, style)
	u.screen.SetContent(x0, y0+h, '└', nil, style)
	u.screen.SetContent(x0+w, y0+h, '┘', nil, style)

	label := fitLabel(s.Label, w-1)
	lx := x0 + (w-len(label))/2
	ly := y0 + h/2
	for i, r := range label {
		u.screen.SetContent(lx+i, ly, r, nil, style)
	}
}

// fitLabel truncates a label to at most max cells. Truncation works on
// runes so multibyte labels are never split mid-character.
func fitLabel(s string, max int) []rune {
	label := []rune(s)
	if max < 0 {
		max = 0
	}
	if len(label) > max {
		label = label[:max]
	}
	return label
}

func (u *UI) drawCurve(c render.Curve) {
	const steps = 48
	style := tcell.StyleDefault.Dim(true)
	for i := 0; i <= steps; i++ {
		p := c.PointAt(float64(i) / steps)
		u.screen.SetContent(int(p.X)/cellW, int(p.Y)/cellH, '·', nil, style)
	}

	label := []rune(c.DisplayLabel())
	lx, ly := int(c.LabelAt.X)/cellW-len(label)/2, int(c.LabelAt.Y)/cellH
	labelStyle := tcell.StyleDefault
	if c.Selected {
		labelStyle = labelStyle.Reverse(true)
	}
	for i, r := range label {
		u.screen.SetContent(lx+i, ly, r, nil, labelStyle)
		u.edgeCells[[2]int{lx + i, ly}] = c.ID
	}
}

func (u *UI) drawGuide(g render.Guide) {
	const steps = 24
	style := tcell.StyleDefault.Dim(true)
	x0, y0 := float64(g.From.X), float64(g.From.Y)
	for i := 0; i <= steps; i++ {
		t := float64(i) / steps
		x := x0 + (g.ToX-x0)*t
		y := y0 + (g.ToY-y0)*t
		u.screen.SetContent(int(x)/cellW, int(y)/cellH, '·', nil, style)
	}
}

func (u *UI) drawStatus() {
	_, height := u.screen.Size()
	d := u.ed.Diagram()
	line := fmt.Sprintf(" %s | tool:%s | %s | nodes:%d edges:%d | s/c tool  n new  e edit  x del  u/r undo/redo  q quit",
		d.ProjectName, u.ed.Tool(), u.ed.State(), len(d.Nodes), len(d.Edges))
	if u.ed.EditSession().Active() {
		line = fmt.Sprintf(" editing: %s▌  (Enter commit, Esc cancel)", u.ed.EditText())
	}
	style := tcell.StyleDefault.Reverse(true)
	for i, r := range []rune(line) {
		u.screen.SetContent(i, height-1, r, nil, style)
	}
}
