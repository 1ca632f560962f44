package scanner

// State is the persisted scanner state that host parser runtimes ask plugins
// to carry between sessions. This scanner is a pure function of its input, so
// the state is an explicit empty type: it serializes to zero bytes and any
// payload restores to the same empty value.
type State struct{}

// Serialize returns the persisted form of the state: always zero bytes.
func (State) Serialize() []byte {
	return nil
}

// RestoreState rebuilds a state from its persisted form. The payload carries
// no data and is ignored.
func RestoreState(data []byte) State {
	_ = data
	return State{}
}

// Close releases the scanner. It holds no resources; the method exists to
// satisfy host lifecycle contracts.
func (s *Scanner) Close() error {
	return nil
}
