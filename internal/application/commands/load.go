package commands

import (
	"context"
	"errors"
	"fmt"

	"pdfsat/internal/application"
)

// LoadResult contains the presenter state after a load
type LoadResult struct {
	State   application.Snapshot
	Message string
}

// LoadDocumentCommand makes a document the active one
type LoadDocumentCommand struct {
	presenter *application.Presenter
	Path      string
	Restore   bool
}

// NewLoadDocumentCommand creates a new LoadDocumentCommand
func NewLoadDocumentCommand(presenter *application.Presenter, path string, restore bool) *LoadDocumentCommand {
	return &LoadDocumentCommand{
		presenter: presenter,
		Path:      path,
		Restore:   restore,
	}
}

// Validate checks that the document exists
func (c *LoadDocumentCommand) Validate() error {
	return application.ValidateFile("path", c.Path)
}

// Execute loads the document
func (c *LoadDocumentCommand) Execute(ctx context.Context) (*LoadResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := c.presenter.LoadDocument(ctx, c.Path, c.Restore); err != nil {
		var lerr *application.LoadError
		if errors.As(err, &lerr) {
			return nil, err
		}
		// Loaded, but the first live frame failed to render
		state := c.presenter.State()
		return &LoadResult{State: state, Message: err.Error()}, nil
	}

	state := c.presenter.State()
	msg := fmt.Sprintf("Loaded %s (%d slides)", state.DocumentName, state.Nav.Total)
	if state.NotesPath != "" {
		msg += ", notes attached"
	}
	if state.Diagnostic != "" {
		msg += ", " + state.Diagnostic
	}
	return &LoadResult{State: state, Message: msg}, nil
}

// LoadNotesCommand replaces the speaker notes
type LoadNotesCommand struct {
	presenter *application.Presenter
	Path      string
}

// NewLoadNotesCommand creates a new LoadNotesCommand
func NewLoadNotesCommand(presenter *application.Presenter, path string) *LoadNotesCommand {
	return &LoadNotesCommand{
		presenter: presenter,
		Path:      path,
	}
}

// Validate checks that the notes file exists
func (c *LoadNotesCommand) Validate() error {
	return application.ValidateFile("notesPath", c.Path)
}

// Execute loads the notes. An unreadable file leaves the presenter with no
// notes and returns the *DecodeError.
func (c *LoadNotesCommand) Execute(ctx context.Context) (*LoadResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := c.presenter.LoadNotes(ctx, c.Path); err != nil {
		return &LoadResult{State: c.presenter.State(), Message: err.Error()}, err
	}

	notes := c.presenter.Notes()
	return &LoadResult{
		State:   c.presenter.State(),
		Message: fmt.Sprintf("Loaded notes for %d slides", notes.Len()),
	}, nil
}
