package application

import "pdfsat/internal/domain"

// Re-export domain types for use by adapters
type (
	Action       = domain.Action
	Tier         = domain.Tier
	NavState     = domain.NavState
	NotesIndex   = domain.NotesIndex
	SessionState = domain.SessionState
)

const (
	TierPreview      = domain.TierPreview
	TierPresentation = domain.TierPresentation
)

// Mode is the presentation session state.
type Mode int

const (
	ModeIdle Mode = iota
	ModeLive
	ModeBlanked
)

func (m Mode) String() string {
	switch m {
	case ModeLive:
		return "live"
	case ModeBlanked:
		return "blanked"
	default:
		return "idle"
	}
}

// ParseAction maps a command name to its Action
func ParseAction(name string) Action {
	return domain.ParseAction(name)
}
