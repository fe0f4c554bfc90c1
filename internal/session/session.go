// Package session owns the mutable triage state: the worklist, the cursor,
// the pending rotation, and the custom-name assignments. Commands are an
// explicit enum consumed by Apply, so any UI shell can drive a session
// without the state knowing how keys were pressed.
package session

// CommandKind enumerates the operations a UI shell can request.
type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdNext
	CmdPrevious
	CmdQuit
	CmdRotateCW
	CmdRotateCCW
	CmdCategorize
	CmdPromptCustomName
)

// Command is one user intention. Category is set for CmdCategorize.
type Command struct {
	Kind     CommandKind
	Category string
}

// Effect tells the shell what side effect, if any, Apply needs it to
// perform. State transitions themselves are handled inside Apply.
type Effect int

const (
	EffectNone Effect = iota
	// EffectRedisplay means the current image or rotation changed.
	EffectRedisplay
	// EffectCategorize means the shell should run the pipeline for the
	// current item with Command.Category, then call Complete on success.
	EffectCategorize
	// EffectPrompt means the shell should open the custom-name prompt.
	EffectPrompt
	// EffectQuit ends the session.
	EffectQuit
)

// Session is the in-memory state for one run.
type Session struct {
	items       []string
	cursor      int
	rotation    int
	customNames map[string]string
}

// New builds a session over an already-validated, already-sorted worklist.
func New(items []string) *Session {
	return &Session{
		items:       append([]string(nil), items...),
		customNames: make(map[string]string),
	}
}

// Done reports the terminal state: nothing left to categorize.
func (s *Session) Done() bool {
	return len(s.items) == 0
}

// Len returns the number of remaining worklist items.
func (s *Session) Len() int {
	return len(s.items)
}

// Cursor returns the current index.
func (s *Session) Cursor() int {
	return s.cursor
}

// Current returns the current worklist item, or false in the terminal state.
func (s *Session) Current() (string, bool) {
	if s.Done() {
		return "", false
	}
	return s.items[s.cursor], true
}

// Rotation returns the pending rotation for the displayed image, in
// clockwise degrees.
func (s *Session) Rotation() int {
	return s.rotation
}

// CustomName returns the custom name assigned to the current item, if any.
func (s *Session) CustomName() (string, bool) {
	path, ok := s.Current()
	if !ok {
		return "", false
	}
	name, ok := s.customNames[path]
	return name, ok
}

// SetCustomName assigns a custom name to the current item. Empty text clears
// the assignment.
func (s *Session) SetCustomName(name string) {
	path, ok := s.Current()
	if !ok {
		return
	}
	if name == "" {
		delete(s.customNames, path)
		return
	}
	s.customNames[path] = name
}

// Append adds a newly discovered file to the end of the worklist. The list
// is never re-sorted after the initial load. Duplicate paths (a create event
// followed by write events for the same file) are ignored.
func (s *Session) Append(path string) bool {
	for _, item := range s.items {
		if item == path {
			return false
		}
	}
	s.items = append(s.items, path)
	return true
}

// Apply performs the state transition for cmd and reports the side effect
// the shell must carry out. Cursor motion is clamped; moving past either end
// is a no-op. Rotation resets whenever the cursor moves.
func (s *Session) Apply(cmd Command) Effect {
	switch cmd.Kind {
	case CmdQuit:
		return EffectQuit
	case CmdNext:
		if s.cursor < len(s.items)-1 {
			s.cursor++
			s.rotation = 0
			return EffectRedisplay
		}
	case CmdPrevious:
		if s.cursor > 0 {
			s.cursor--
			s.rotation = 0
			return EffectRedisplay
		}
	case CmdRotateCW:
		s.rotation = (s.rotation + 90) % 360
		return EffectRedisplay
	case CmdRotateCCW:
		s.rotation = (s.rotation + 270) % 360
		return EffectRedisplay
	case CmdCategorize:
		if !s.Done() {
			return EffectCategorize
		}
	case CmdPromptCustomName:
		if !s.Done() {
			return EffectPrompt
		}
	}
	return EffectNone
}

// Complete removes the current item after a successful categorization,
// drops its custom-name entry, clamps the cursor, and resets rotation. The
// session is terminal once the last item completes.
func (s *Session) Complete() {
	path, ok := s.Current()
	if !ok {
		return
	}
	delete(s.customNames, path)
	s.items = append(s.items[:s.cursor], s.items[s.cursor+1:]...)
	s.rotation = 0
	if s.cursor >= len(s.items) && s.cursor > 0 {
		s.cursor = len(s.items) - 1
	}
}
