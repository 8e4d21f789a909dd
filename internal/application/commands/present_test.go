package commands

import (
	"context"
	"errors"
	"math"
	"testing"

	"pdfsat/internal/application"
)

func TestLiveCommands(t *testing.T) {
	f := newFixture(t)
	f.load(t, "talk.pdf", 3)
	ctx := context.Background()

	state, err := NewGoLiveCommand(f.presenter, true).Execute(ctx)
	if err != nil {
		t.Fatalf("go live: %v", err)
	}
	if state.Mode != application.ModeLive || f.surface.Shown() != 1 {
		t.Fatalf("mode=%v shown=%d", state.Mode, f.surface.Shown())
	}

	state, err = NewToggleBlankCommand(f.presenter).Execute(ctx)
	if err != nil || state.Mode != application.ModeBlanked {
		t.Fatalf("blank: mode=%v err=%v", state.Mode, err)
	}

	state, err = NewStopCommand(f.presenter).Execute(ctx)
	if err != nil || state.Mode != application.ModeIdle {
		t.Fatalf("stop: mode=%v err=%v", state.Mode, err)
	}
	if state.Elapsed != application.ElapsedUnset {
		t.Errorf("elapsed = %q after stop", state.Elapsed)
	}

	_, err = NewToggleBlankCommand(f.presenter).Execute(ctx)
	if !errors.Is(err, application.ErrNotLive) {
		t.Errorf("expected ErrNotLive, got %v", err)
	}
}

func TestGoLiveCommand_NoDocument(t *testing.T) {
	f := newFixture(t)
	_, err := NewGoLiveCommand(f.presenter, false).Execute(context.Background())
	if !errors.Is(err, application.ErrNoDocument) {
		t.Errorf("expected ErrNoDocument, got %v", err)
	}
}

func TestPointerCommand(t *testing.T) {
	f := newFixture(t)
	f.load(t, "talk.pdf", 2)
	ctx := context.Background()
	if _, err := NewGoLiveCommand(f.presenter, false).Execute(ctx); err != nil {
		t.Fatal(err)
	}

	if err := NewPointerCommand(f.presenter, math.NaN(), 0.5, true).Execute(ctx); err == nil {
		t.Error("expected validation error for NaN")
	}

	if err := NewPointerCommand(f.presenter, 0.3, 0.6, true).Execute(ctx); err != nil {
		t.Fatal(err)
	}
	if !f.surface.Pointer || f.surface.PointerX != 0.3 || f.surface.PointerY != 0.6 {
		t.Errorf("pointer = (%v, %v, %v)", f.surface.PointerX, f.surface.PointerY, f.surface.Pointer)
	}

	if err := NewPointerCommand(f.presenter, math.NaN(), 0, false).Execute(ctx); err != nil {
		t.Fatal(err)
	}
	if f.surface.Pointer {
		t.Error("pointer should be hidden")
	}
}
