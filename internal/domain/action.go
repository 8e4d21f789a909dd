package domain

import "strings"

// Action names a navigation command accepted by Navigator.Apply.
type Action int

const (
	ActionUnknown Action = iota
	ActionAdvance
	ActionRetreat
	ActionPreviewStepForward
	ActionPreviewStepBackward
	ActionPreviewRestore
	ActionPreviewSetToNext
	ActionPreviewSetToPrev
	ActionRemember
	ActionRecall
)

var actionNames = map[Action]string{
	ActionAdvance:             "advance",
	ActionRetreat:             "retreat",
	ActionPreviewStepForward:  "preview_step_forward",
	ActionPreviewStepBackward: "preview_step_backward",
	ActionPreviewRestore:      "preview_restore",
	ActionPreviewSetToNext:    "preview_set_to_next",
	ActionPreviewSetToPrev:    "preview_set_to_prev",
	ActionRemember:            "remember",
	ActionRecall:              "recall",
}

// Actions lists every navigation action in a stable order.
func Actions() []Action {
	return []Action{
		ActionAdvance,
		ActionRetreat,
		ActionPreviewStepForward,
		ActionPreviewStepBackward,
		ActionPreviewRestore,
		ActionPreviewSetToNext,
		ActionPreviewSetToPrev,
		ActionRemember,
		ActionRecall,
	}
}

// String returns the snake_case command name
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAction maps a command name to its Action. Dashes and case are ignored.
func ParseAction(name string) Action {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "-", "_")
	for a, n := range actionNames {
		if n == name {
			return a
		}
	}
	return ActionUnknown
}
