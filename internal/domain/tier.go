package domain

// Tier selects the resolution a slide is rasterized at.
type Tier int

const (
	TierPreview Tier = iota
	TierPresentation
)

// Rasterization resolutions for the two tiers, in dots per inch.
const (
	PreviewDPI      = 150.0
	PresentationDPI = 300.0
)

// DPI returns the target resolution for the tier
func (t Tier) DPI() float64 {
	if t == TierPresentation {
		return PresentationDPI
	}
	return PreviewDPI
}

func (t Tier) String() string {
	switch t {
	case TierPreview:
		return "preview"
	case TierPresentation:
		return "presentation"
	default:
		return "unknown"
	}
}

// ParseTier maps "preview" or "presentation" to a Tier.
func ParseTier(s string) (Tier, bool) {
	switch s {
	case "preview":
		return TierPreview, true
	case "presentation", "present", "full":
		return TierPresentation, true
	default:
		return TierPreview, false
	}
}
