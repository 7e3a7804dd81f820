package device

import (
	"testing"
	"time"
)

func TestNewTimebaseDefaultsToSixtyFPS(t *testing.T) {
	tb := NewTimebase(0)
	want := time.Second / 60
	if tb.Budget() != want {
		t.Errorf("Budget() = %v, want %v", tb.Budget(), want)
	}
}

func TestNewTimebaseComputesBudgetFromFPS(t *testing.T) {
	tb := NewTimebase(30)
	want := time.Second / 30
	if tb.Budget() != want {
		t.Errorf("Budget() = %v, want %v", tb.Budget(), want)
	}
}

func TestBeginFrameFirstCallReturnsZero(t *testing.T) {
	tb := NewTimebase(60)
	if got := tb.BeginFrame(); got != 0 {
		t.Errorf("BeginFrame() first call = %v, want 0", got)
	}
}

func TestEndFrameSleepsOffRemainingBudget(t *testing.T) {
	tb := NewTimebase(100) // 10ms budget
	start := time.Now()
	tb.EndFrame(start)
	elapsed := time.Since(start)
	if elapsed < tb.Budget() {
		t.Errorf("EndFrame() returned after %v, want at least the %v budget", elapsed, tb.Budget())
	}
}

func TestEndFrameDoesNotSleepWhenOverBudget(t *testing.T) {
	tb := NewTimebase(1000) // 1ms budget
	start := time.Now().Add(-10 * time.Millisecond)
	before := time.Now()
	tb.EndFrame(start)
	if time.Since(before) > 5*time.Millisecond {
		t.Errorf("EndFrame() slept even though the frame already exceeded its budget")
	}
}
