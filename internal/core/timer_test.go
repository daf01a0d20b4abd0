package core

import (
	"testing"
	"time"
)

func TestFixedStepFiresOncePerInterval(t *testing.T) {
	fs := NewFixedStep(10)
	if fs.Interval() != 100*time.Millisecond {
		t.Fatalf("interval=%v, expected 100ms", fs.Interval())
	}
	start := time.Unix(1000, 0)
	if !fs.ShouldStepAt(start) {
		t.Fatal("first call should step")
	}
	if fs.ShouldStepAt(start.Add(50 * time.Millisecond)) {
		t.Fatal("half an interval should not step")
	}
	if !fs.ShouldStepAt(start.Add(100 * time.Millisecond)) {
		t.Fatal("a full interval should step")
	}
	if fs.ShouldStepAt(start.Add(100 * time.Millisecond)) {
		t.Fatal("no time elapsed, should not step again")
	}
}

func TestFixedStepDue(t *testing.T) {
	fs := NewFixedStep(10)
	start := time.Unix(1000, 0)
	if d := fs.Due(start); d != 0 {
		t.Fatalf("due=%v before the first step, expected 0", d)
	}
	fs.ShouldStepAt(start)
	if d := fs.Due(start.Add(30 * time.Millisecond)); d != 70*time.Millisecond {
		t.Fatalf("due=%v, expected 70ms", d)
	}
	if d := fs.Due(start.Add(250 * time.Millisecond)); d != 0 {
		t.Fatalf("due=%v when overdue, expected 0", d)
	}
	// A wake-up just before the deadline waits out the remainder instead of
	// skipping a whole interval.
	early := start.Add(99 * time.Millisecond)
	if fs.ShouldStepAt(early) {
		t.Fatal("should not step before the interval elapses")
	}
	if d := fs.Due(early); d != time.Millisecond {
		t.Fatalf("due=%v after an early wake-up, expected 1ms", d)
	}
	if !fs.ShouldStepAt(early.Add(fs.Due(early))) {
		t.Fatal("should step once the remainder elapses")
	}
}

func TestFixedStepDefaultsInvalidRate(t *testing.T) {
	fs := NewFixedStep(0)
	if fs.Interval() != time.Second/60 {
		t.Fatalf("interval=%v, expected 1/60s", fs.Interval())
	}
}

func TestRNGDeterministic(t *testing.T) {
	a, b := NewRNG(7), NewRNG(7)
	for i := 0; i < 32; i++ {
		if a.IntN(100) != b.IntN(100) {
			t.Fatal("same seed should produce the same sequence")
		}
	}
	if NewRNG(1).IntN(0) != 0 {
		t.Fatal("IntN(0) should return 0")
	}
}
