package domain

// Navigator tracks the current and preview slides of a loaded document.
//
// The zero value is a navigator over an empty document; every command is a
// no-op on it. Commands whose precondition does not hold leave the state
// untouched and report false.
//
// Steering the preview away from current+1 (stepping, set-to-previous or
// recalling a bookmark) records the current slide as the jump origin, which
// PreviewRestore snaps back to.
type Navigator struct {
	total   int
	current int
	preview int

	// jumpOrigin is the current slide at the moment the preview was
	// detoured away from current+1. It is cleared only by Advance.
	jumpOrigin    int
	hasJumpOrigin bool
	jumpConsumed  bool

	remembered    int
	hasRemembered bool
}

// NavState is a read-only snapshot of a Navigator.
type NavState struct {
	Total   int
	Current int
	Preview int

	JumpOrigin    int
	HasJumpOrigin bool
	JumpConsumed  bool

	Remembered    int
	HasRemembered bool
}

// NewNavigator returns the initial state for a freshly loaded document.
func NewNavigator(total int) *Navigator {
	if total < 0 {
		total = 0
	}
	n := &Navigator{total: total}
	n.preview = n.nextClamped()
	return n
}

// RestoreNavigator returns the initial state for a document loaded with a
// stored slide position. Out-of-range positions fall back to the first slide.
func RestoreNavigator(total, stored int) *Navigator {
	n := NewNavigator(total)
	if stored >= 0 && stored < n.total {
		n.current = stored
		n.preview = n.nextClamped()
	}
	return n
}

// State returns a snapshot of the navigator.
func (n *Navigator) State() NavState {
	return NavState{
		Total:         n.total,
		Current:       n.current,
		Preview:       n.preview,
		JumpOrigin:    n.jumpOrigin,
		HasJumpOrigin: n.hasJumpOrigin,
		JumpConsumed:  n.jumpConsumed,
		Remembered:    n.remembered,
		HasRemembered: n.hasRemembered,
	}
}

// Total returns the number of slides in the document.
func (n *Navigator) Total() int { return n.total }

// Current returns the slide shown to the audience.
func (n *Navigator) Current() int { return n.current }

// Preview returns the preview slide. It equals Total() when the preview is
// past the last slide.
func (n *Navigator) Preview() int { return n.preview }

// PreviewAtEnd reports whether the preview is the end sentinel.
func (n *Navigator) PreviewAtEnd() bool { return n.preview >= n.total }

// Advance makes the preview slide current.
func (n *Navigator) Advance() bool {
	if n.preview >= n.total {
		return false
	}
	if n.preview != n.current+1 && !n.hasJumpOrigin {
		n.jumpOrigin = n.current
		n.hasJumpOrigin = true
	}
	if n.jumpConsumed && n.hasJumpOrigin && n.jumpOrigin == n.preview {
		n.jumpConsumed = false
		n.hasJumpOrigin = false
		n.jumpOrigin = 0
	}
	n.current = n.preview
	n.preview = min(n.current+1, n.total)
	return true
}

// Retreat steps the current slide back by one and re-syncs the preview to
// the slide after it, dropping any preview detour.
func (n *Navigator) Retreat() bool {
	if n.current <= 0 {
		return false
	}
	n.current--
	n.preview = n.nextClamped()
	return true
}

// PreviewStepForward moves the preview one slide ahead, never onto the end
// sentinel.
func (n *Navigator) PreviewStepForward() bool {
	if n.preview >= n.total-1 {
		return false
	}
	n.preview++
	n.markDetour()
	return true
}

// PreviewStepBackward moves the preview one slide back.
func (n *Navigator) PreviewStepBackward() bool {
	if n.preview <= 0 || n.total == 0 {
		return false
	}
	n.preview--
	n.markDetour()
	return true
}

// PreviewRestore snaps the preview back to the jump origin. The origin is
// kept so the next Advance can recognise the round trip.
func (n *Navigator) PreviewRestore() bool {
	if !n.hasJumpOrigin {
		return false
	}
	n.preview = n.jumpOrigin
	n.jumpConsumed = true
	return true
}

// PreviewSetToNext points the preview at the slide after current.
func (n *Navigator) PreviewSetToNext() bool {
	if n.total == 0 {
		return false
	}
	n.preview = n.nextClamped()
	return true
}

// PreviewSetToPrev points the preview at the slide before current.
func (n *Navigator) PreviewSetToPrev() bool {
	if n.total == 0 {
		return false
	}
	n.preview = max(n.current-1, 0)
	n.markDetour()
	return true
}

// Remember bookmarks the preview, which may be the end sentinel.
func (n *Navigator) Remember() bool {
	if n.total == 0 {
		return false
	}
	n.remembered = n.preview
	n.hasRemembered = true
	return true
}

// Recall moves the preview to the bookmarked slide.
func (n *Navigator) Recall() bool {
	if !n.hasRemembered {
		return false
	}
	n.preview = n.remembered
	n.markDetour()
	return true
}

// Restart returns to the first slide. The jump origin and bookmark slots are
// left as they are.
func (n *Navigator) Restart() bool {
	if n.total == 0 {
		return false
	}
	n.current = 0
	n.preview = n.nextClamped()
	return true
}

// Apply dispatches a named command and reports whether it took effect.
func (n *Navigator) Apply(a Action) bool {
	switch a {
	case ActionAdvance:
		return n.Advance()
	case ActionRetreat:
		return n.Retreat()
	case ActionPreviewStepForward:
		return n.PreviewStepForward()
	case ActionPreviewStepBackward:
		return n.PreviewStepBackward()
	case ActionPreviewRestore:
		return n.PreviewRestore()
	case ActionPreviewSetToNext:
		return n.PreviewSetToNext()
	case ActionPreviewSetToPrev:
		return n.PreviewSetToPrev()
	case ActionRemember:
		return n.Remember()
	case ActionRecall:
		return n.Recall()
	default:
		return false
	}
}

// markDetour records the jump origin the first time the preview is steered
// away from the slide after current.
func (n *Navigator) markDetour() {
	if n.hasJumpOrigin || n.preview == n.current+1 {
		return
	}
	n.jumpOrigin = n.current
	n.hasJumpOrigin = true
}

// nextClamped is current+1 clamped to the last valid slide.
func (n *Navigator) nextClamped() int {
	return max(min(n.current+1, n.total-1), 0)
}
