package schedulers

import "sync"

// Phase is the lifecycle of the scheduler within one process.
//
//	not_started -> running   lock acquired, loop may be served
//	not_started -> declined  not eligible, or the lock is owned elsewhere
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseRunning    Phase = "running"
	PhaseDeclined   Phase = "declined"
)

// state is the process-wide scheduler state. lastGenerated is the date of the most
// recent summary produced or found by this process; it is not persisted.
type state struct {
	mu            sync.Mutex
	phase         Phase
	lastGenerated string
}

func newState() *state {
	return &state{phase: PhaseNotStarted}
}

func (s *state) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// transition moves out of not_started exactly once and reports whether it did.
func (s *state) transition(to Phase) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseNotStarted {
		return false
	}
	s.phase = to
	return true
}

func (s *state) LastGenerated() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastGenerated
}

func (s *state) markGenerated(date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastGenerated = date
}
