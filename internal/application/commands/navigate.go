package commands

import (
	"context"

	"pdfsat/internal/application"
)

// NavigateResult contains the outcome of a navigation command
type NavigateResult struct {
	Action  application.Action
	Changed bool
	State   application.Snapshot
}

// NavigateCommand applies one named navigation command to the presenter
type NavigateCommand struct {
	presenter *application.Presenter
	Action    string

	action application.Action
}

// NewNavigateCommand creates a new NavigateCommand
func NewNavigateCommand(presenter *application.Presenter, action string) *NavigateCommand {
	return &NavigateCommand{
		presenter: presenter,
		Action:    action,
	}
}

// Validate checks the action name
func (c *NavigateCommand) Validate() error {
	if err := application.ValidateRequired("action", c.Action); err != nil {
		return err
	}
	a, err := application.ValidateAction("action", c.Action)
	if err != nil {
		return err
	}
	c.action = a
	return nil
}

// Execute runs the navigation command. A command whose precondition does
// not hold is not an error; Changed is false.
func (c *NavigateCommand) Execute(ctx context.Context) (*NavigateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	changed, err := c.presenter.Navigate(ctx, c.action)
	return &NavigateResult{
		Action:  c.action,
		Changed: changed,
		State:   c.presenter.State(),
	}, err
}
