package commands

import (
	"context"
	"math"

	"pdfsat/internal/application"
)

// GoLiveCommand starts presenting
type GoLiveCommand struct {
	presenter *application.Presenter
	FromStart bool
}

// NewGoLiveCommand creates a new GoLiveCommand
func NewGoLiveCommand(presenter *application.Presenter, fromStart bool) *GoLiveCommand {
	return &GoLiveCommand{presenter: presenter, FromStart: fromStart}
}

// Execute starts the presentation
func (c *GoLiveCommand) Execute(ctx context.Context) (application.Snapshot, error) {
	err := c.presenter.GoLive(ctx, c.FromStart)
	return c.presenter.State(), err
}

// StopCommand ends the presentation
type StopCommand struct {
	presenter *application.Presenter
}

// NewStopCommand creates a new StopCommand
func NewStopCommand(presenter *application.Presenter) *StopCommand {
	return &StopCommand{presenter: presenter}
}

// Execute stops presenting
func (c *StopCommand) Execute(ctx context.Context) (application.Snapshot, error) {
	err := c.presenter.Stop()
	return c.presenter.State(), err
}

// ToggleBlankCommand blanks or unblanks the audience surface
type ToggleBlankCommand struct {
	presenter *application.Presenter
}

// NewToggleBlankCommand creates a new ToggleBlankCommand
func NewToggleBlankCommand(presenter *application.Presenter) *ToggleBlankCommand {
	return &ToggleBlankCommand{presenter: presenter}
}

// Execute toggles blanking
func (c *ToggleBlankCommand) Execute(ctx context.Context) (application.Snapshot, error) {
	err := c.presenter.ToggleBlank(ctx)
	return c.presenter.State(), err
}

// PointerCommand moves or hides the laser pointer
type PointerCommand struct {
	presenter *application.Presenter
	X, Y      float64
	Visible   bool
}

// NewPointerCommand creates a new PointerCommand
func NewPointerCommand(presenter *application.Presenter, x, y float64, visible bool) *PointerCommand {
	return &PointerCommand{presenter: presenter, X: x, Y: y, Visible: visible}
}

// Validate rejects coordinates that are not numbers
func (c *PointerCommand) Validate() error {
	if !c.Visible {
		return nil
	}
	for _, v := range []struct {
		field string
		value float64
	}{{"x", c.X}, {"y", c.Y}} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return &application.ValidationError{
				Field:   v.field,
				Message: "pointer coordinate must be a finite number",
			}
		}
	}
	return nil
}

// Execute updates the pointer
func (c *PointerCommand) Execute(ctx context.Context) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if !c.Visible {
		return c.presenter.HidePointer()
	}
	return c.presenter.SetPointer(c.X, c.Y)
}
