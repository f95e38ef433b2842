package effects

import (
	"testing"
	"time"
)

func TestSnow_StartStepStop(t *testing.T) {
	s := NewSnow(50, 1)
	if s.Active() || len(s.Flakes()) != 0 {
		t.Fatal("snow should start inactive and empty")
	}

	s.Start(40, 10)
	if !s.Active() || len(s.Flakes()) != 50 {
		t.Fatalf("flakes = %d, want 50", len(s.Flakes()))
	}

	for i := 0; i < 100; i++ {
		s.Step()
		for _, f := range s.Flakes() {
			if f.X < 0 || f.X >= 40 || f.Y < 0 || int(f.Y) >= 10 {
				t.Fatalf("flake out of bounds after step %d: %+v", i, f)
			}
		}
	}
	if len(s.Flakes()) != 50 {
		t.Fatalf("flake count drifted to %d", len(s.Flakes()))
	}

	s.Stop()
	if s.Active() || len(s.Flakes()) != 0 {
		t.Fatal("Stop should clear flakes")
	}
}

func TestSnow_ResizeKeepsFlakesInside(t *testing.T) {
	s := NewSnow(30, 2)
	s.Start(80, 24)
	s.Resize(10, 5)
	for _, f := range s.Flakes() {
		if f.X >= 10 || int(f.Y) >= 5 {
			t.Fatalf("flake outside resized area: %+v", f)
		}
	}
}

func TestTrail_DisabledRejectsSpawn(t *testing.T) {
	tr := NewTrail(500*time.Millisecond, 1)
	if tr.Spawn(5, 5, time.Now()) {
		t.Fatal("spawn accepted while disabled")
	}
	if len(tr.Sparkles()) != 0 {
		t.Fatal("no sparkles expected")
	}
}

func TestTrail_DisableRemovesEverySparkle(t *testing.T) {
	tr := NewTrail(500*time.Millisecond, 1)
	tr.Enable()
	now := time.Now()
	for i := 0; i < 10; i++ {
		if !tr.Spawn(i, i, now) {
			t.Fatal("spawn rejected while enabled")
		}
	}
	if len(tr.Sparkles()) != 10 {
		t.Fatalf("sparkles = %d", len(tr.Sparkles()))
	}

	tr.Disable()
	if len(tr.Sparkles()) != 0 {
		t.Fatalf("sparkles after Disable = %d", len(tr.Sparkles()))
	}
	if tr.Spawn(1, 1, now) {
		t.Fatal("spawn accepted after Disable")
	}
}

func TestTrail_JitterAndPrune(t *testing.T) {
	tr := NewTrail(500*time.Millisecond, 7)
	tr.Enable()
	now := time.Now()

	tr.Spawn(20, 10, now)
	tr.Spawn(20, 10, now.Add(300*time.Millisecond))
	for _, s := range tr.Sparkles() {
		if s.X < 19 || s.X > 21 || s.Y < 9 || s.Y > 11 {
			t.Fatalf("sparkle too far from pointer: %+v", s)
		}
	}

	if n := tr.Prune(now.Add(499 * time.Millisecond)); n != 2 {
		t.Fatalf("Prune before expiry kept %d", n)
	}
	if n := tr.Prune(now.Add(500 * time.Millisecond)); n != 1 {
		t.Fatalf("Prune at first expiry kept %d", n)
	}
	if n := tr.Prune(now.Add(time.Second)); n != 0 {
		t.Fatalf("Prune after all expired kept %d", n)
	}
}
