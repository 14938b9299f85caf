package testing

import (
	"testing"
	"time"
)

func TestFakeClock_Advance(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()

	clk.Advance(100 * time.Millisecond)
	elapsed := clk.Now().Sub(start)

	if elapsed != 100*time.Millisecond {
		t.Errorf("expected 100ms elapsed, got %v", elapsed)
	}
}

func TestFakeClock_Set(t *testing.T) {
	clk := NewFakeClock()
	target := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	clk.Set(target)
	if !clk.Now().Equal(target) {
		t.Errorf("expected %v, got %v", target, clk.Now())
	}
}

func TestFakeClock_AdvanceOnRead(t *testing.T) {
	clk := NewFakeClock()
	clk.AdvanceOnRead(time.Millisecond)

	first := clk.Now()
	second := clk.Now()
	if d := second.Sub(first); d != time.Millisecond {
		t.Errorf("expected 1ms between reads, got %v", d)
	}
	if clk.Reads() != 2 {
		t.Errorf("Reads() = %d, want 2", clk.Reads())
	}

	clk.AdvanceOnRead(0)
	if !clk.Now().Equal(clk.Now()) {
		t.Error("clock should hold still after disabling per-read advance")
	}
}
