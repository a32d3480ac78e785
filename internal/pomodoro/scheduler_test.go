package pomodoro

import (
	"testing"
	"time"
)

func TestManualScheduler_FiresInDueOrder(t *testing.T) {
	s := NewManualScheduler(epoch)
	var order []string
	s.AfterFunc(3*time.Second, func() { order = append(order, "c") })
	s.AfterFunc(1*time.Second, func() { order = append(order, "a") })
	s.AfterFunc(1*time.Second, func() { order = append(order, "b") })

	s.Advance(2 * time.Second)
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("order after 2s = %v, want [a b]", order)
	}
	if s.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", s.Pending())
	}

	s.Advance(time.Second)
	if len(order) != 3 || order[2] != "c" {
		t.Errorf("order after 3s = %v", order)
	}
	if !s.Now().Equal(epoch.Add(3 * time.Second)) {
		t.Errorf("Now() = %v", s.Now())
	}
}

func TestManualScheduler_Stop(t *testing.T) {
	s := NewManualScheduler(epoch)
	fired := false
	timer := s.AfterFunc(time.Second, func() { fired = true })

	if !timer.Stop() {
		t.Error("first Stop() should report true")
	}
	if timer.Stop() {
		t.Error("second Stop() should report false")
	}

	s.Advance(time.Minute)
	if fired {
		t.Error("stopped callback fired")
	}
}

func TestManualScheduler_ChainedCallbacks(t *testing.T) {
	s := NewManualScheduler(epoch)
	count := 0
	var tick func()
	tick = func() {
		count++
		s.AfterFunc(time.Second, tick)
	}
	s.AfterFunc(time.Second, tick)

	s.Advance(10 * time.Second)
	if count != 10 {
		t.Errorf("count = %d, want 10", count)
	}
	if s.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", s.Pending())
	}
}

func TestManualScheduler_StopAfterFire(t *testing.T) {
	s := NewManualScheduler(epoch)
	timer := s.AfterFunc(time.Second, func() {})
	s.Advance(time.Second)

	if timer.Stop() {
		t.Error("Stop() after firing should report false")
	}
}
