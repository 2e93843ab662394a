package fasting

import (
	"testing"
	"time"
)

// fakeClock is a settable time source for driving the timer in tests.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestTimer() (*Timer, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}
	return NewTimer(clock.Now), clock
}

// TestTimer_StartSetsGoalBoundedEnd verifies start captures startTime and
// derives endTime from the preset duration: 16:8 started at T0 ends at T0+16h.
func TestTimer_StartSetsGoalBoundedEnd(t *testing.T) {
	timer, clock := newTestTimer()
	ft, _ := TypeByID("16-8")

	if !timer.Start(ft) {
		t.Fatal("Start returned false on idle timer")
	}
	snap := timer.Tick()
	if !snap.Active {
		t.Fatal("timer not active after Start")
	}
	if !snap.StartTime.Equal(clock.now) {
		t.Errorf("startTime = %v, want %v", snap.StartTime, clock.now)
	}
	wantEnd := clock.now.Add(16 * time.Hour)
	if !snap.EndTime.Equal(wantEnd) {
		t.Errorf("endTime = %v, want %v", snap.EndTime, wantEnd)
	}
	if snap.RemainingSeconds != 16*3600 {
		t.Errorf("remaining = %d, want %d", snap.RemainingSeconds, 16*3600)
	}
}

// TestTimer_TickCountsDown verifies elapsed/remaining are recomputed from the
// clock on each tick.
func TestTimer_TickCountsDown(t *testing.T) {
	timer, clock := newTestTimer()
	ft, _ := TypeByID("16-8")
	timer.Start(ft)

	clock.Advance(90 * time.Minute)
	snap := timer.Tick()
	if snap.ElapsedSeconds != 90*60 {
		t.Errorf("elapsed = %d, want %d", snap.ElapsedSeconds, 90*60)
	}
	if snap.RemainingSeconds != (16*3600 - 90*60) {
		t.Errorf("remaining = %d, want %d", snap.RemainingSeconds, 16*3600-90*60)
	}
}

// TestTimer_AutoStopAtGoal verifies that a tick at exactly the goal boundary
// transitions to idle with zero remaining, keeping start/end as
// informational fields.
func TestTimer_AutoStopAtGoal(t *testing.T) {
	timer, clock := newTestTimer()
	ft, _ := TypeByID("16-8")
	timer.Start(ft)
	started := clock.now

	clock.Advance(16 * time.Hour)
	snap := timer.Tick()
	if snap.Active {
		t.Error("timer still active at goal boundary")
	}
	if snap.RemainingSeconds != 0 {
		t.Errorf("remaining = %d, want 0", snap.RemainingSeconds)
	}
	if timer.Active() {
		t.Error("Active() = true after auto-stop")
	}
	// Informational fields survive an auto-stop.
	if !snap.StartTime.Equal(started) {
		t.Errorf("startTime cleared on auto-stop: %v", snap.StartTime)
	}
	if !snap.EndTime.Equal(started.Add(16 * time.Hour)) {
		t.Errorf("endTime cleared on auto-stop: %v", snap.EndTime)
	}
}

// TestTimer_StopClearsState verifies a manual stop clears start/end and zeroes
// remaining regardless of elapsed time.
func TestTimer_StopClearsState(t *testing.T) {
	timer, clock := newTestTimer()
	ft, _ := TypeByID("1-day")
	timer.Start(ft)
	clock.Advance(3 * time.Hour)

	if !timer.Stop() {
		t.Fatal("Stop returned false on active timer")
	}
	snap := timer.Tick()
	if snap.Active {
		t.Error("timer active after Stop")
	}
	if !snap.StartTime.IsZero() || !snap.EndTime.IsZero() {
		t.Errorf("start/end not cleared: %v / %v", snap.StartTime, snap.EndTime)
	}
	if snap.RemainingSeconds != 0 || snap.ElapsedSeconds != 0 {
		t.Errorf("elapsed/remaining = %d/%d, want 0/0", snap.ElapsedSeconds, snap.RemainingSeconds)
	}
}

// TestTimer_WrongStateCallsAreNoOps verifies double-start and double-stop are
// ignored rather than raising.
func TestTimer_WrongStateCallsAreNoOps(t *testing.T) {
	timer, clock := newTestTimer()

	if timer.Stop() {
		t.Error("Stop on idle timer returned true")
	}

	ft, _ := TypeByID("16-8")
	timer.Start(ft)
	started := clock.now
	clock.Advance(time.Hour)

	other, _ := TypeByID("1-day")
	if timer.Start(other) {
		t.Error("Start on active timer returned true")
	}
	snap := timer.Tick()
	if snap.Type.ID != "16-8" {
		t.Errorf("type changed by rejected Start: %s", snap.Type.ID)
	}
	if !snap.StartTime.Equal(started) {
		t.Errorf("startTime changed by rejected Start: %v", snap.StartTime)
	}
}

// TestTimer_SetTypeOnlyWhileIdle verifies type selection is rejected during
// an active fast.
func TestTimer_SetTypeOnlyWhileIdle(t *testing.T) {
	timer, _ := newTestTimer()
	oneDay, _ := TypeByID("1-day")

	if !timer.SetType(oneDay) {
		t.Fatal("SetType rejected on idle timer")
	}
	if timer.Type().ID != "1-day" {
		t.Errorf("type = %s, want 1-day", timer.Type().ID)
	}

	timer.Start(timer.Type())
	sixteen, _ := TypeByID("16-8")
	if timer.SetType(sixteen) {
		t.Error("SetType accepted while active")
	}
	if timer.Type().ID != "1-day" {
		t.Errorf("type changed while active: %s", timer.Type().ID)
	}
}

// TestCatalog verifies the five fixed presets and their durations.
func TestCatalog(t *testing.T) {
	want := map[string]float64{
		"12-12": 12,
		"16-8":  16,
		"1-day": 24,
		"3-day": 72,
		"5-day": 120,
	}
	got := Catalog()
	if len(got) != len(want) {
		t.Fatalf("catalog has %d presets, want %d", len(got), len(want))
	}
	for _, ft := range got {
		hours, ok := want[ft.ID]
		if !ok {
			t.Errorf("unexpected preset %q", ft.ID)
			continue
		}
		if ft.DurationHours != hours {
			t.Errorf("%s duration = %.0f h, want %.0f h", ft.ID, ft.DurationHours, hours)
		}
	}
	if DefaultType().ID != "16-8" {
		t.Errorf("default type = %s, want 16-8", DefaultType().ID)
	}
}
