package reorder

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
)

func (p Phase) String() string {
	switch p {
	case PhaseDragging:
		return "dragging"
	default:
		return "idle"
	}
}

// Session is a single drag session.
//
//	Idle --Begin--> Dragging --Over*--> Dragging --Drop/Cancel/End--> Idle
//
// Over reflows the working order immediately; nothing is persisted until the
// caller receives the order from Drop.
type Session struct {
	phase       Phase
	draggedID   string
	origin      int
	originOrder []string
	order       []string
}

func (s *Session) Phase() Phase { return s.phase }

func (s *Session) Dragging() bool { return s.phase == PhaseDragging }

// DraggedID is the active drag element, or "" when idle.
func (s *Session) DraggedID() string { return s.draggedID }

// Origin is the dragged row's index when the drag began.
func (s *Session) Origin() int { return s.origin }

// Order is the current working order (a copy).
func (s *Session) Order() []string {
	return append([]string{}, s.order...)
}

// Begin marks id as the active drag element and records its origin index.
func (s *Session) Begin(order []string, id string) error {
	if s.phase == PhaseDragging {
		return ErrAlreadyDragging
	}
	idx := indexOf(order, id)
	if idx < 0 {
		return ErrUnknownID
	}
	s.phase = PhaseDragging
	s.draggedID = id
	s.origin = idx
	s.originOrder = append([]string{}, order...)
	s.order = append([]string{}, order...)
	return nil
}

// Over handles one pointer movement over the list. rows are the rendered rows
// in display order (hidden rows omitted). changed reports whether the working
// order moved.
func (s *Session) Over(rows []Row, pointerY float64) (order []string, changed bool) {
	if s.phase != PhaseDragging {
		return s.Order(), false
	}
	rest := without(s.order, s.draggedID)
	next := make([]string, 0, len(s.order))
	if target, ok := InsertBefore(rows, s.draggedID, pointerY); ok {
		for _, id := range rest {
			if id == target {
				next = append(next, s.draggedID)
			}
			next = append(next, id)
		}
	} else {
		next = append(next, rest...)
		next = append(next, s.draggedID)
	}
	changed = !equalOrders(s.order, next)
	s.order = next
	return s.Order(), changed
}

// Drop ends the session and returns the order to persist.
func (s *Session) Drop() ([]string, error) {
	if s.phase != PhaseDragging {
		return nil, ErrNotDragging
	}
	out := s.Order()
	s.End()
	return out, nil
}

// Cancel aborts the drag and returns the order from before it began.
func (s *Session) Cancel() []string {
	out := append([]string{}, s.originOrder...)
	s.End()
	return out
}

// End clears the active-drag marker. Safe to call when idle.
func (s *Session) End() {
	s.phase = PhaseIdle
	s.draggedID = ""
	s.origin = -1
	s.originOrder = nil
	s.order = nil
}
