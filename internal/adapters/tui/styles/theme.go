package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")
	Panel     = lipgloss.Color("#1F2937")

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Header
	DocumentName = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	Clock = lipgloss.NewStyle().
		Foreground(White).
		Bold(true)

	Elapsed = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	// Mode badges
	ModeIdle = lipgloss.NewStyle().
			Background(Muted).
			Foreground(White).
			Padding(0, 1)

	ModeLive = lipgloss.NewStyle().
			Background(Secondary).
			Foreground(Black).
			Bold(true).
			Padding(0, 1)

	ModeBlanked = lipgloss.NewStyle().
			Background(Warning).
			Foreground(Black).
			Bold(true).
			Padding(0, 1)

	// Slide panes
	PaneLabel = lipgloss.NewStyle().
			Foreground(Muted).
			Bold(true)

	CurrentPane = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary)

	PreviewPane = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary)

	EndSentinel = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Notes
	Notes = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(Muted).
		PaddingTop(1)

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Background(Panel).
			Foreground(White).
			Padding(0, 1)

	StatusKey = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Padding(0, 1).
			MarginRight(1)

	StatusText = lipgloss.NewStyle().
			Foreground(Muted)

	Bookmark = lipgloss.NewStyle().
			Foreground(Warning)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Muted text style (for using Muted color as a style)
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// ModeBadge returns the badge style for a presentation mode name
func ModeBadge(mode string) lipgloss.Style {
	switch mode {
	case "live":
		return ModeLive
	case "blanked":
		return ModeBlanked
	default:
		return ModeIdle
	}
}
