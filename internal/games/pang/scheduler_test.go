package pang

import "testing"

func TestSchedulerFiresInOrder(t *testing.T) {
	s := NewScheduler()
	var fired []string

	s.After(0.2, func() { fired = append(fired, "b") })
	s.After(0.1, func() { fired = append(fired, "a") })
	s.After(0.2, func() { fired = append(fired, "c") })

	s.Advance(0.05)
	if len(fired) != 0 {
		t.Fatalf("Nothing should fire yet, got %v", fired)
	}

	s.Advance(0.2)
	if len(fired) != 3 || fired[0] != "a" || fired[1] != "b" || fired[2] != "c" {
		t.Errorf("Fired %v, expected [a b c]", fired)
	}
	if s.Pending() != 0 {
		t.Errorf("Expected no pending timers, got %d", s.Pending())
	}
}

func TestSchedulerFixedStepRounding(t *testing.T) {
	s := NewScheduler()
	fired := 0
	s.After(0.1, func() { fired++ })

	// Six 60 Hz ticks add up to 0.1 within rounding
	for range 6 {
		s.Advance(1.0 / 60.0)
	}
	if fired != 1 {
		t.Errorf("Timer should fire after six ticks, fired %d times", fired)
	}
}

func TestSchedulerFrozen(t *testing.T) {
	s := NewScheduler()
	fired := 0
	s.After(0.1, func() { fired++ })

	for range 100 {
		s.Advance(0)
	}
	if fired != 0 {
		t.Error("Timers must not fire while time is frozen")
	}
	if s.Pending() != 1 {
		t.Errorf("Expected one pending timer, got %d", s.Pending())
	}
}

func TestSchedulerNested(t *testing.T) {
	s := NewScheduler()
	var order []int

	s.After(0.1, func() {
		order = append(order, 1)
		s.After(0, func() { order = append(order, 2) })
		s.After(1, func() { order = append(order, 3) })
	})

	s.Advance(0.1)
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("Order = %v, expected [1 2]", order)
	}

	s.Clear()
	s.Advance(5)
	if len(order) != 2 {
		t.Errorf("Cleared timer fired, order = %v", order)
	}
}
