package domain

import (
	"math/rand"
	"testing"
)

func TestNewNavigator(t *testing.T) {
	tests := []struct {
		total       int
		wantCurrent int
		wantPreview int
	}{
		{0, 0, 0},
		{1, 0, 0},
		{2, 0, 1},
		{10, 0, 1},
		{-3, 0, 0},
	}

	for _, tt := range tests {
		n := NewNavigator(tt.total)
		if n.Current() != tt.wantCurrent || n.Preview() != tt.wantPreview {
			t.Errorf("NewNavigator(%d) = (%d, %d), expected (%d, %d)",
				tt.total, n.Current(), n.Preview(), tt.wantCurrent, tt.wantPreview)
		}
		st := n.State()
		if st.HasJumpOrigin || st.JumpConsumed || st.HasRemembered {
			t.Errorf("NewNavigator(%d) has optional slots set: %+v", tt.total, st)
		}
	}
}

func TestRestoreNavigator(t *testing.T) {
	tests := []struct {
		name        string
		total       int
		stored      int
		wantCurrent int
		wantPreview int
	}{
		{"middle", 10, 4, 4, 5},
		{"last slide", 10, 9, 9, 9},
		{"first slide", 10, 0, 0, 1},
		{"past the end", 10, 10, 0, 1},
		{"negative", 10, -1, 0, 1},
		{"single slide", 1, 0, 0, 0},
		{"empty document", 0, 3, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := RestoreNavigator(tt.total, tt.stored)
			if n.Current() != tt.wantCurrent {
				t.Errorf("current = %d, expected %d", n.Current(), tt.wantCurrent)
			}
			if n.Preview() != tt.wantPreview {
				t.Errorf("preview = %d, expected %d", n.Preview(), tt.wantPreview)
			}
		})
	}
}

func TestAdvanceToEndSentinel(t *testing.T) {
	n := NewNavigator(3)
	n.Advance()
	n.Advance()
	if n.Current() != 2 || n.Preview() != 3 {
		t.Fatalf("after two advances got (%d, %d), expected (2, 3)", n.Current(), n.Preview())
	}
	if !n.PreviewAtEnd() {
		t.Error("expected preview to be the end sentinel")
	}
	if n.Advance() {
		t.Error("advance past the end sentinel should be a no-op")
	}
	if n.Current() != 2 || n.Preview() != 3 {
		t.Errorf("state changed by no-op advance: (%d, %d)", n.Current(), n.Preview())
	}
}

func TestSingleSlideDeck(t *testing.T) {
	n := NewNavigator(1)
	if n.Preview() != 0 {
		t.Fatalf("initial preview = %d, expected 0", n.Preview())
	}
	if !n.Advance() {
		t.Fatal("advance should fire while preview < total")
	}
	if n.Current() != 0 || n.Preview() != 1 {
		t.Errorf("after advance got (%d, %d), expected (0, 1)", n.Current(), n.Preview())
	}
	if n.Advance() {
		t.Error("second advance should be a no-op")
	}
}

func TestRetreat(t *testing.T) {
	n := NewNavigator(5)
	if n.Retreat() {
		t.Error("retreat at slide 0 should be a no-op")
	}
	if got := n.State(); got != NewNavigator(5).State() {
		t.Errorf("retreat at slide 0 mutated state: %+v", got)
	}

	n = RestoreNavigator(5, 4)
	n.Advance() // preview -> end sentinel
	if !n.PreviewAtEnd() {
		t.Fatal("expected end sentinel after advancing from the last slide")
	}
	n.Retreat()
	if n.Current() != 3 || n.Preview() != 4 {
		t.Errorf("after retreat got (%d, %d), expected (3, 4)", n.Current(), n.Preview())
	}
}

func TestRetreatDropsPreviewDetour(t *testing.T) {
	n := RestoreNavigator(10, 5)
	n.PreviewStepForward()
	n.PreviewStepForward()
	if n.Preview() != 8 {
		t.Fatalf("preview = %d, expected 8", n.Preview())
	}
	n.Retreat()
	if n.Current() != 4 || n.Preview() != 5 {
		t.Errorf("after retreat got (%d, %d), expected (4, 5)", n.Current(), n.Preview())
	}
}

func TestPreviewStepBounds(t *testing.T) {
	n := NewNavigator(3)
	if !n.PreviewStepForward() || n.Preview() != 2 {
		t.Fatalf("step forward: preview = %d, expected 2", n.Preview())
	}
	if n.PreviewStepForward() {
		t.Error("step forward must not reach the end sentinel")
	}
	n.PreviewStepBackward()
	n.PreviewStepBackward()
	if n.Preview() != 0 {
		t.Fatalf("preview = %d, expected 0", n.Preview())
	}
	if n.PreviewStepBackward() {
		t.Error("step backward at 0 should be a no-op")
	}
}

func TestPreviewSetToNextAndPrev(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		current  int
		wantNext int
		wantPrev int
	}{
		{"middle", 10, 5, 6, 4},
		{"first", 10, 0, 1, 0},
		{"last", 10, 9, 9, 8},
		{"single", 1, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := RestoreNavigator(tt.total, tt.current)
			n.PreviewSetToPrev()
			if n.Preview() != tt.wantPrev {
				t.Errorf("set to prev: preview = %d, expected %d", n.Preview(), tt.wantPrev)
			}
			n.PreviewSetToNext()
			if n.Preview() != tt.wantNext {
				t.Errorf("set to next: preview = %d, expected %d", n.Preview(), tt.wantNext)
			}
		})
	}
}

func TestSetToPrevRecordsJumpOrigin(t *testing.T) {
	n := RestoreNavigator(10, 2)
	if n.Preview() != 3 {
		t.Fatalf("preview = %d, expected 3", n.Preview())
	}
	n.PreviewSetToPrev()
	st := n.State()
	if st.Preview != 1 || !st.HasJumpOrigin || st.JumpOrigin != 2 {
		t.Fatalf("after set to prev: %+v", st)
	}
	n.PreviewRestore()
	st = n.State()
	if st.Preview != 2 || !st.JumpConsumed {
		t.Errorf("after restore: %+v", st)
	}
}

func TestJumpOriginRoundTrip(t *testing.T) {
	n := RestoreNavigator(10, 5)
	if n.Preview() != 6 {
		t.Fatalf("preview = %d, expected 6", n.Preview())
	}

	for i := 0; i < 3; i++ {
		n.PreviewStepBackward()
	}
	st := n.State()
	if st.Preview != 3 {
		t.Fatalf("preview = %d, expected 3", st.Preview)
	}
	if !st.HasJumpOrigin || st.JumpOrigin != 5 {
		t.Fatalf("jump origin = %d (set=%v), expected 5", st.JumpOrigin, st.HasJumpOrigin)
	}

	if !n.PreviewRestore() {
		t.Fatal("restore should fire while an origin is set")
	}
	st = n.State()
	if st.Preview != 5 || !st.JumpConsumed || !st.HasJumpOrigin {
		t.Fatalf("after restore: %+v", st)
	}

	n.Advance()
	st = n.State()
	if st.Current != 5 || st.Preview != 6 {
		t.Errorf("after advance got (%d, %d), expected (5, 6)", st.Current, st.Preview)
	}
	if st.HasJumpOrigin || st.JumpConsumed {
		t.Errorf("jump origin should be cleared after the round trip: %+v", st)
	}
}

func TestJumpAheadThenReturn(t *testing.T) {
	n := RestoreNavigator(20, 4)
	for n.Preview() < 15 {
		n.PreviewStepForward()
	}
	n.Advance()
	if n.Current() != 15 {
		t.Fatalf("current = %d, expected 15", n.Current())
	}

	// The origin survives the jump so the operator can get back.
	n.PreviewRestore()
	if n.Preview() != 4 {
		t.Fatalf("preview = %d, expected 4", n.Preview())
	}
	n.Advance()
	st := n.State()
	if st.Current != 4 || st.Preview != 5 || st.HasJumpOrigin {
		t.Errorf("after returning: %+v", st)
	}
}

func TestRecallRecordsJumpOrigin(t *testing.T) {
	n := RestoreNavigator(10, 3)
	n.Remember()
	n.Advance()
	n.Advance()
	n.Recall()
	st := n.State()
	if st.Preview != 4 || st.JumpOrigin != 5 || !st.HasJumpOrigin {
		t.Fatalf("after recall: %+v", st)
	}
	n.Advance()
	if n.Current() != 4 || n.Preview() != 5 {
		t.Errorf("after advance got (%d, %d), expected (4, 5)", n.Current(), n.Preview())
	}
}

func TestRestoreWithoutOriginIsNoop(t *testing.T) {
	n := NewNavigator(4)
	before := n.State()
	if n.PreviewRestore() {
		t.Error("restore without origin should be a no-op")
	}
	if n.State() != before {
		t.Errorf("state changed: %+v", n.State())
	}
}

func TestRememberAndRecall(t *testing.T) {
	n := NewNavigator(10)
	if n.Recall() {
		t.Error("recall without bookmark should be a no-op")
	}
	n.PreviewStepForward()
	n.PreviewStepForward()
	n.Remember()
	n.PreviewSetToNext()
	if n.Preview() != 1 {
		t.Fatalf("preview = %d, expected 1", n.Preview())
	}
	n.Recall()
	if n.Preview() != 3 {
		t.Errorf("preview after recall = %d, expected 3", n.Preview())
	}
}

func TestRestartKeepsSlots(t *testing.T) {
	n := RestoreNavigator(10, 6)
	n.PreviewStepBackward()
	n.Remember()
	n.Restart()
	st := n.State()
	if st.Current != 0 || st.Preview != 1 {
		t.Errorf("after restart got (%d, %d), expected (0, 1)", st.Current, st.Preview)
	}
	if !st.HasRemembered || st.Remembered != 6 || !st.HasJumpOrigin {
		t.Errorf("restart should keep optional slots: %+v", st)
	}
}

func TestRememberEndSentinel(t *testing.T) {
	n := NewNavigator(3)
	n.Advance()
	n.Advance()
	if !n.PreviewAtEnd() {
		t.Fatal("expected end sentinel")
	}
	if !n.Remember() {
		t.Fatal("remember at the end sentinel should apply")
	}
	if st := n.State(); !st.HasRemembered || st.Remembered != 3 {
		t.Errorf("bookmark = (%d, %v), want (3, true)", st.Remembered, st.HasRemembered)
	}

	n.Retreat()
	n.Recall()
	if n.Preview() != 3 || !n.PreviewAtEnd() {
		t.Errorf("recall preview = %d, want end sentinel 3", n.Preview())
	}
}

func TestEmptyDocumentIgnoresEverything(t *testing.T) {
	n := NewNavigator(0)
	for _, a := range Actions() {
		if n.Apply(a) {
			t.Errorf("%s applied on an empty document", a)
		}
	}
	if n.Current() != 0 || n.Preview() != 0 {
		t.Errorf("state changed: (%d, %d)", n.Current(), n.Preview())
	}
}

func TestNavigatorInvariantsUnderRandomCommands(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	actions := Actions()

	for total := 1; total <= 12; total++ {
		n := NewNavigator(total)
		for step := 0; step < 2000; step++ {
			a := actions[rng.Intn(len(actions))]
			wasAtLast := n.Current() == total-1 || n.Preview() == total-1
			prevPreview := n.Preview()
			n.Apply(a)

			if n.Current() < 0 || n.Current() >= total {
				t.Fatalf("total=%d step=%d %s: current %d out of range", total, step, a, n.Current())
			}
			if n.Preview() < 0 || n.Preview() > total {
				t.Fatalf("total=%d step=%d %s: preview %d out of range", total, step, a, n.Preview())
			}
			if n.Preview() == total && prevPreview != total {
				// a bookmarked end sentinel can be recalled
				viaAdvance := a == ActionAdvance && wasAtLast
				if !viaAdvance && a != ActionRecall {
					t.Fatalf("total=%d step=%d: end sentinel reached via %s", total, step, a)
				}
			}
			st := n.State()
			if st.HasRemembered && (st.Remembered < 0 || st.Remembered > total) {
				t.Fatalf("remembered %d out of range", st.Remembered)
			}
			if st.HasJumpOrigin && (st.JumpOrigin < 0 || st.JumpOrigin >= total) {
				t.Fatalf("jump origin %d out of range", st.JumpOrigin)
			}
		}
	}
}

func TestAdvanceRetreatKeepCurrentInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for total := 1; total <= 8; total++ {
		n := NewNavigator(total)
		for step := 0; step < 500; step++ {
			if rng.Intn(2) == 0 {
				n.Advance()
			} else {
				n.Retreat()
			}
			if n.Current() < 0 || n.Current() >= total {
				t.Fatalf("total=%d: current %d out of range", total, n.Current())
			}
		}
	}
}
