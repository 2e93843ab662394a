package fasting

import "time"

// Timer is the fast state machine. It has two states: Idle and Active. The
// clock is injected so tests can drive transitions with synthetic time; it is
// the only source of elapsed/remaining figures — nothing here drifts by
// manual mutation.
//
// Timer is the in-process form of the machine, for embedded frontends that
// tick locally. The HTTP service keeps fast state in storage instead and
// derives the same figures per request from the persisted record; both paths
// share this package's catalog, progress, and formatting helpers.
//
// Timer is not safe for concurrent use; callers serialize access. All
// wrong-state calls are idempotent no-ops per the start/stop contract.
type Timer struct {
	clock func() time.Time

	active    bool
	startTime time.Time
	endTime   time.Time
	current   FastType
}

// Snapshot is a point-in-time view of the timer for display.
type Snapshot struct {
	Active           bool      `json:"is_active"`
	Type             FastType  `json:"fast_type"`
	StartTime        time.Time `json:"start_time,omitzero"`
	EndTime          time.Time `json:"end_time,omitzero"`
	ElapsedSeconds   int       `json:"elapsed_seconds"`
	RemainingSeconds int       `json:"remaining_seconds"`
}

// NewTimer creates an idle timer with the default fast type. A nil clock uses
// time.Now.
func NewTimer(clock func() time.Time) *Timer {
	if clock == nil {
		clock = time.Now
	}
	return &Timer{clock: clock, current: DefaultType()}
}

// Active reports whether a fast is running.
func (t *Timer) Active() bool { return t.active }

// Type returns the currently selected fast type.
func (t *Timer) Type() FastType { return t.current }

// SetType selects a fast type. Only valid while idle; a call during an active
// fast is ignored and returns false.
func (t *Timer) SetType(ft FastType) bool {
	if t.active {
		return false
	}
	t.current = ft
	return true
}

// Start begins a fast of the given type: startTime is now, endTime is
// startTime plus the type's goal duration. Starting while already active is a
// no-op and returns false.
func (t *Timer) Start(ft FastType) bool {
	if t.active {
		return false
	}
	t.current = ft
	t.startTime = t.clock()
	t.endTime = t.startTime.Add(time.Duration(ft.DurationHours * float64(time.Hour)))
	t.active = true
	return true
}

// Stop ends the fast manually, clearing startTime and endTime. Stopping while
// idle is a no-op and returns false.
func (t *Timer) Stop() bool {
	if !t.active {
		return false
	}
	t.active = false
	t.startTime = time.Time{}
	t.endTime = time.Time{}
	return true
}

// Tick recomputes elapsed/remaining from the clock and returns a snapshot.
// When remaining reaches 0 the timer auto-transitions to idle; unlike Stop,
// startTime and endTime stay populated as informational fields until the
// next Start.
func (t *Timer) Tick() Snapshot {
	snap := Snapshot{
		Active:    t.active,
		Type:      t.current,
		StartTime: t.startTime,
		EndTime:   t.endTime,
	}
	if !t.active {
		return snap
	}

	now := t.clock()
	elapsed := now.Sub(t.startTime)
	if elapsed < 0 {
		elapsed = 0
	}
	remaining := t.endTime.Sub(now)
	if remaining <= 0 {
		t.active = false
		snap.Active = false
		snap.ElapsedSeconds = int(elapsed / time.Second)
		return snap
	}

	snap.ElapsedSeconds = int(elapsed / time.Second)
	snap.RemainingSeconds = int(remaining / time.Second)
	return snap
}
