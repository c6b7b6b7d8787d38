package focus

// Session is the transient set of tasks selected for a focus session.
// It is never persisted: the host creates it when the focus view opens,
// clears it on reset or tab switch, and discards it on exit.
type Session struct {
	ids   map[string]bool
	order []string
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{ids: make(map[string]bool)}
}

// Add includes a task in the session. Adding a present task is a no-op.
func (s *Session) Add(taskID string) {
	if s.ids[taskID] {
		return
	}
	s.ids[taskID] = true
	s.order = append(s.order, taskID)
}

// Remove drops a task from the session.
func (s *Session) Remove(taskID string) {
	if !s.ids[taskID] {
		return
	}
	delete(s.ids, taskID)
	for i, id := range s.order {
		if id == taskID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Toggle adds the task if absent, removes it if present, and reports
// whether it is now in the session.
func (s *Session) Toggle(taskID string) bool {
	if s.ids[taskID] {
		s.Remove(taskID)
		return false
	}
	s.Add(taskID)
	return true
}

// Contains reports membership.
func (s *Session) Contains(taskID string) bool {
	return s.ids[taskID]
}

// TaskIDs returns the selected task ids in insertion order.
func (s *Session) TaskIDs() []string {
	return append([]string(nil), s.order...)
}

// Len returns the number of selected tasks.
func (s *Session) Len() int {
	return len(s.order)
}

// Clear empties the session.
func (s *Session) Clear() {
	s.ids = make(map[string]bool)
	s.order = nil
}
