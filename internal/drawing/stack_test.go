package drawing

import "testing"

// recordingCommand tracks Apply/Undo calls for stack discipline tests.
type recordingCommand struct {
	name    string
	applied int
	undone  int
}

func (c *recordingCommand) Apply()        { c.applied++ }
func (c *recordingCommand) Undo()         { c.undone++ }
func (c *recordingCommand) Label() string { return c.name }

func TestPushDoesNotExecute(t *testing.T) {
	s := NewCommandStack(8)
	cmd := &recordingCommand{name: "a"}
	s.Push(cmd)

	if cmd.applied != 0 {
		t.Errorf("Push executed the command %d times", cmd.applied)
	}
}

func TestUndoRedoSequence(t *testing.T) {
	s := NewCommandStack(8)
	a := &recordingCommand{name: "a"}
	b := &recordingCommand{name: "b"}
	s.Push(a)
	s.Push(b)

	if !s.Undo() {
		t.Fatal("Undo returned false with commands available")
	}
	if b.undone != 1 || a.undone != 0 {
		t.Errorf("undo order wrong: a=%d b=%d", a.undone, b.undone)
	}

	if !s.Redo() {
		t.Fatal("Redo returned false after an undo")
	}
	if b.applied != 1 {
		t.Errorf("redo did not re-apply: %d", b.applied)
	}
}

func TestUndoRedoAtBounds(t *testing.T) {
	s := NewCommandStack(8)
	if s.Undo() {
		t.Error("Undo on empty stack returned true")
	}
	if s.Redo() {
		t.Error("Redo on empty stack returned true")
	}

	s.Push(&recordingCommand{name: "a"})
	if s.Redo() {
		t.Error("Redo with nothing undone returned true")
	}
	s.Undo()
	if s.Undo() {
		t.Error("second Undo returned true with one command")
	}
}

func TestPushTruncatesRedoTail(t *testing.T) {
	s := NewCommandStack(8)
	a := &recordingCommand{name: "a"}
	b := &recordingCommand{name: "b"}
	c := &recordingCommand{name: "c"}
	s.Push(a)
	s.Push(b)
	s.Undo()
	s.Push(c)

	if s.CanRedo() {
		t.Error("redo tail survived a push")
	}
	// Undo now walks c then a; b is gone.
	s.Undo()
	s.Undo()
	if c.undone != 1 || a.undone != 1 || b.undone != 1 {
		t.Errorf("undo counts a=%d b=%d c=%d, want 1/1/1", a.undone, b.undone, c.undone)
	}
	if s.CanUndo() {
		t.Error("stack still undoable past its oldest command")
	}
}

func TestDepthCapEvictsOldest(t *testing.T) {
	s := NewCommandStack(3)
	cmds := make([]*recordingCommand, 5)
	for i := range cmds {
		cmds[i] = &recordingCommand{name: string(rune('a' + i))}
		s.Push(cmds[i])
	}

	// Only the newest three can be undone; the first two are gone for good.
	undos := 0
	for s.Undo() {
		undos++
	}
	if undos != 3 {
		t.Errorf("undo count = %d, want 3", undos)
	}
	if cmds[0].undone != 0 || cmds[1].undone != 0 {
		t.Error("evicted commands were undone")
	}
	if cmds[2].undone != 1 || cmds[3].undone != 1 || cmds[4].undone != 1 {
		t.Error("surviving commands were not undone exactly once")
	}
}

func TestLabels(t *testing.T) {
	s := NewCommandStack(8)
	if got := s.UndoLabel(); got != "" {
		t.Errorf("UndoLabel on empty stack = %q", got)
	}
	s.Push(&recordingCommand{name: "move rect"})
	if got := s.UndoLabel(); got != "move rect" {
		t.Errorf("UndoLabel = %q, want %q", got, "move rect")
	}
	s.Undo()
	if got := s.RedoLabel(); got != "move rect" {
		t.Errorf("RedoLabel = %q, want %q", got, "move rect")
	}
}

func TestClear(t *testing.T) {
	s := NewCommandStack(8)
	s.Push(&recordingCommand{name: "a"})
	s.Clear()
	if s.CanUndo() || s.CanRedo() {
		t.Error("history survived Clear")
	}
}

func TestNonPositiveDepthFallsBack(t *testing.T) {
	s := NewCommandStack(0)
	for i := 0; i < DefaultUndoDepth+10; i++ {
		s.Push(&recordingCommand{name: "x"})
	}
	undos := 0
	for s.Undo() {
		undos++
	}
	if undos != DefaultUndoDepth {
		t.Errorf("undo count = %d, want %d", undos, DefaultUndoDepth)
	}
}
