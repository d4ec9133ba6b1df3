package drawing

// DefaultUndoDepth is the command stack's depth cap when none is
// configured.
const DefaultUndoDepth = 64

// CommandStack is a linear undo history with a cursor. Commands before
// the cursor have been applied; commands at or after it have been undone
// and are redo candidates. Push never executes the command it receives:
// the caller has already applied the mutation.
type CommandStack struct {
	commands []Command
	cursor   int
	maxDepth int
}

// NewCommandStack creates a stack holding at most maxDepth commands.
// Non-positive depths fall back to DefaultUndoDepth.
func NewCommandStack(maxDepth int) *CommandStack {
	if maxDepth <= 0 {
		maxDepth = DefaultUndoDepth
	}
	return &CommandStack{maxDepth: maxDepth}
}

// Push records an already-applied command. Any redo tail beyond the
// cursor is discarded first; once the stack is at its depth cap the
// oldest command is evicted and becomes permanently irreversible.
func (s *CommandStack) Push(cmd Command) {
	s.commands = append(s.commands[:s.cursor], cmd)
	s.cursor = len(s.commands)
	if len(s.commands) > s.maxDepth {
		over := len(s.commands) - s.maxDepth
		s.commands = append(s.commands[:0], s.commands[over:]...)
		s.cursor -= over
	}
}

// Undo reverses the most recent applied command. It reports false when
// there is nothing to undo.
func (s *CommandStack) Undo() bool {
	if s.cursor == 0 {
		return false
	}
	s.cursor--
	s.commands[s.cursor].Undo()
	return true
}

// Redo re-applies the most recently undone command. It reports false
// when there is nothing to redo.
func (s *CommandStack) Redo() bool {
	if s.cursor >= len(s.commands) {
		return false
	}
	s.commands[s.cursor].Apply()
	s.cursor++
	return true
}

// CanUndo reports whether an applied command is available to undo.
func (s *CommandStack) CanUndo() bool {
	return s.cursor > 0
}

// CanRedo reports whether an undone command is available to redo.
func (s *CommandStack) CanRedo() bool {
	return s.cursor < len(s.commands)
}

// UndoLabel returns the label of the command Undo would reverse, or "".
func (s *CommandStack) UndoLabel() string {
	if !s.CanUndo() {
		return ""
	}
	return s.commands[s.cursor-1].Label()
}

// RedoLabel returns the label of the command Redo would re-apply, or "".
func (s *CommandStack) RedoLabel() string {
	if !s.CanRedo() {
		return ""
	}
	return s.commands[s.cursor].Label()
}

// Clear drops the entire history.
func (s *CommandStack) Clear() {
	s.commands = nil
	s.cursor = 0
}
