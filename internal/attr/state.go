package attr

// State is shared by all fields of one remote-backed object
type State struct {
	etags   []string
	deleted bool
}

// ETags returns the concurrency token captured from the last response
func (s *State) ETags() []string {
	if s == nil {
		return nil
	}
	return s.etags
}

// SetETags replaces the concurrency token. An empty list keeps the previous
// token, since not every response carries one.
func (s *State) SetETags(etags ...string) {
	if len(etags) == 0 {
		return
	}
	s.etags = append([]string(nil), etags...)
}

// Condition returns the precondition for the next mutation. Unless matching
// is set the token is dropped and the mutation goes out unconditionally.
func (s *State) Condition(matching bool) []string {
	if !matching {
		s.etags = nil
	}
	return s.etags
}

// MarkDeleted moves the object to its terminal state
func (s *State) MarkDeleted() {
	s.deleted = true
}

// Deleted reports whether the object was deleted remotely
func (s *State) Deleted() bool {
	return s != nil && s.deleted
}
