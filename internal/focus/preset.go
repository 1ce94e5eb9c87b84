package focus

import "math"

// PresetID identifies one of the fixed selectable focus durations.
type PresetID string

const (
	PresetQuick    PresetID = "quick"
	PresetStandard PresetID = "standard"
	PresetDeep     PresetID = "deep"
	PresetMarathon PresetID = "marathon"
	PresetBreak    PresetID = "break"
)

// Preset describes a selectable focus duration and the dot-grid shape
// used to render it (one dot per minute, so Rows*Cols == Minutes for
// every non-break preset).
type Preset struct {
	ID      PresetID
	Name    string
	Minutes int
	Rows    int
	Cols    int
}

var presets = []Preset{
	{ID: PresetQuick, Name: "Quick", Minutes: 10, Rows: 2, Cols: 5},
	{ID: PresetStandard, Name: "Standard", Minutes: 25, Rows: 5, Cols: 5},
	{ID: PresetDeep, Name: "Deep", Minutes: 50, Rows: 5, Cols: 10},
	{ID: PresetMarathon, Name: "Marathon", Minutes: 90, Rows: 9, Cols: 10},
	{ID: PresetBreak, Name: "Break", Minutes: 5, Rows: 1, Cols: 5},
}

// GetPreset looks up a preset by id, falling back to the standard
// preset for ids outside the fixed set.
func GetPreset(id PresetID) Preset {
	for _, p := range presets {
		if p.ID == id {
			return p
		}
	}
	return presets[1]
}

// AllPresets returns the selectable presets in display order. The
// break preset is internal and not listed.
func AllPresets() []Preset {
	out := make([]Preset, 0, len(presets)-1)
	for _, p := range presets {
		if p.ID == PresetBreak {
			continue
		}
		out = append(out, p)
	}
	return out
}

func TotalDots(p Preset) int {
	return p.Rows * p.Cols
}

// LitDots returns how many grid cells should be lit for the given
// remaining time. Rounds up so a partially elapsed final minute stays
// lit until it fully expires.
func LitDots(remainingMinutes float64, totalMinutes int) int {
	lit := int(math.Ceil(remainingMinutes))
	if lit < 0 {
		return 0
	}
	if lit > totalMinutes {
		return totalMinutes
	}
	return lit
}
