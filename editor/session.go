package editor

import "unicode"

// Session identifies the single item, if any, whose label is under active
// text edit. At most one session exists at a time; opening a second one
// commits the first.
type Session struct {
	Kind ItemKind
	ID   string
}

// Active reports whether a session is open.
func (s Session) Active() bool {
	return s.Kind != ItemNone
}

// EditSession returns the open session, zero-valued when none is open.
func (e *Editor) EditSession() Session {
	return e.session
}

// OpenNodeEdit opens a label edit session on a node. Re-opening the same
// node is a no-op; any other open session is committed first. No-op if the
// node does not exist.
func (e *Editor) OpenNodeEdit(id string) {
	e.openEdit(ItemNode, id)
}

// OpenEdgeEdit opens a label edit session on an edge, addressed by id from
// the renderer's midpoint label affordance.
func (e *Editor) OpenEdgeEdit(id string) {
	e.openEdit(ItemEdge, id)
}

func (e *Editor) openEdit(kind ItemKind, id string) {
	if e.session.Active() && e.session.Kind == kind && e.session.ID == id {
		return
	}
	if e.session.Active() {
		e.CloseEdit()
	}

	var label string
	switch kind {
	case ItemNode:
		n := e.diagram.FindNode(id)
		if n == nil {
			return
		}
		label = n.Label
	case ItemEdge:
		ed := e.diagram.FindEdge(id)
		if ed == nil {
			return
		}
		label = ed.Label
	default:
		return
	}

	e.session = Session{Kind: kind, ID: id}
	e.selectedKind, e.selectedID = kind, id
	e.text = []rune(label)
}

// CloseEdit commits the open session: the text buffer is written back to
// the item's label and a history entry recorded. If the item was deleted
// while the session was open the writeback is skipped. The session is
// cleared either way. No-op when nothing is open.
func (e *Editor) CloseEdit() {
	if !e.session.Active() {
		return
	}
	switch e.session.Kind {
	case ItemNode:
		if n := e.diagram.FindNode(e.session.ID); n != nil {
			n.Label = string(e.text)
		}
	case ItemEdge:
		if ed := e.diagram.FindEdge(e.session.ID); ed != nil {
			ed.Label = string(e.text)
		}
	}
	e.session = Session{}
	e.text = nil
	e.history.Commit(e.diagram)
}

// CancelEdit discards the open session without writing the buffer back and
// without touching history.
func (e *Editor) CancelEdit() {
	e.session = Session{}
	e.text = nil
}

// EditText returns the session's current buffer contents for display.
func (e *Editor) EditText() string {
	return string(e.text)
}

// SetEditText replaces the session buffer wholesale, for frontends that own
// their own input widget. No-op when no session is open.
func (e *Editor) SetEditText(s string) {
	if e.session.Active() {
		e.text = []rune(s)
	}
}

// HandleTextRune feeds one keystroke into the session buffer: printable
// runes append, backspace deletes. Everything else is ignored.
func (e *Editor) HandleTextRune(r rune) {
	if !e.session.Active() {
		return
	}
	switch r {
	case 127, 8: // backspace
		if len(e.text) > 0 {
			e.text = e.text[:len(e.text)-1]
		}
	default:
		if unicode.IsPrint(r) {
			e.text = append(e.text, r)
		}
	}
}
