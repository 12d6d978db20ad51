package round

import "time"

// Machine tracks the kind of the current round and its status.
//
// Status is Invalid exactly when the kind is Undefined. Assigning a kind
// always restarts the lifecycle at Ready. Start and Finish only move
// Ready→Started→Finished; called from any other status they change nothing
// and report false.
type Machine struct {
	kind       Kind
	status     Status
	startedAt  time.Time
	finishedAt time.Time
	now        func() time.Time
}

// New returns a machine with no kind (status Invalid).
func New() *Machine {
	return &Machine{now: time.Now}
}

// WithClock replaces the clock used to timestamp transitions.
func (m *Machine) WithClock(now func() time.Time) *Machine {
	m.now = now
	return m
}

// SetKind assigns k and restarts the lifecycle, whatever the current status.
func (m *Machine) SetKind(k Kind) {
	m.kind = k
	m.startedAt, m.finishedAt = time.Time{}, time.Time{}
	if k == Undefined {
		m.status = Invalid
		return
	}
	m.status = Ready
}

// Start moves Ready to Started.
func (m *Machine) Start() bool {
	if m.status != Ready {
		return false
	}
	m.status = Started
	m.startedAt = m.clock()
	return true
}

// Finish moves Started to Finished.
func (m *Machine) Finish() bool {
	if m.status != Started {
		return false
	}
	m.status = Finished
	m.finishedAt = m.clock()
	return true
}

func (m *Machine) Kind() Kind     { return m.kind }
func (m *Machine) Status() Status { return m.status }

// KindLabel and StatusLabel are the display strings of the current values.
func (m *Machine) KindLabel() string   { return m.kind.Label() }
func (m *Machine) StatusLabel() string { return m.status.Label() }

// StartedAt is zero until Start succeeds.
func (m *Machine) StartedAt() time.Time { return m.startedAt }

// FinishedAt is zero until Finish succeeds.
func (m *Machine) FinishedAt() time.Time { return m.finishedAt }

// Duration is the time between start and finish, or since start while running.
func (m *Machine) Duration() time.Duration {
	switch m.status {
	case Started:
		return m.clock().Sub(m.startedAt)
	case Finished:
		return m.finishedAt.Sub(m.startedAt)
	}
	return 0
}

// clock falls back to time.Now so the zero Machine is usable.
func (m *Machine) clock() time.Time {
	if m.now == nil {
		return time.Now()
	}
	return m.now()
}
