package focus

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Phase is the discrete state of the focus timer.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseHolding    Phase = "holding"
	PhaseFocusing   Phase = "focusing"
	PhaseBreak      Phase = "break"
	PhaseEndedEarly Phase = "ended_early"
)

// Session is a single focus attempt. Immutable after creation except
// CompletedAt/WasCompleted, which are set exactly once when the
// session is finalized.
type Session struct {
	ID           string
	PresetID     PresetID
	StartedAt    time.Time
	EndsAt       time.Time
	CompletedAt  *time.Time
	WasCompleted bool
	TotalMinutes int
}

// ActiveTimer is the persisted subset of a session needed to resume a
// running timer after a restart. Phase is always focusing or break.
type ActiveTimer struct {
	SessionID    string
	Phase        Phase
	PresetID     PresetID
	StartedAt    time.Time
	EndsAt       time.Time
	TotalMinutes int
}

// NewSession creates a session for the given preset starting now.
func NewSession(presetID PresetID) Session {
	p := GetPreset(presetID)
	now := time.Now()
	return Session{
		ID:           uuid.NewString(),
		PresetID:     p.ID,
		StartedAt:    now,
		EndsAt:       now.Add(time.Duration(p.Minutes) * time.Minute),
		TotalMinutes: p.Minutes,
	}
}

// NewActiveTimer projects a session into its resumable snapshot.
func NewActiveTimer(s Session, phase Phase) ActiveTimer {
	if phase == "" {
		phase = PhaseFocusing
	}
	return ActiveTimer{
		SessionID:    s.ID,
		Phase:        phase,
		PresetID:     s.PresetID,
		StartedAt:    s.StartedAt,
		EndsAt:       s.EndsAt,
		TotalMinutes: s.TotalMinutes,
	}
}

// Complete marks the session as having run to its natural end.
func Complete(s Session) Session {
	now := time.Now()
	s.CompletedAt = &now
	s.WasCompleted = true
	return s
}

// EndEarly marks the session as abandoned before its scheduled end.
func EndEarly(s Session) Session {
	now := time.Now()
	s.CompletedAt = &now
	s.WasCompleted = false
	return s
}

// Remaining is the derived countdown state of a running window.
type Remaining struct {
	Ms      int64
	Minutes float64
	Seconds int
	Expired bool
}

// RemainingUntil computes the countdown toward endsAt. Seconds rounds
// up so a display never shows zero while time remains.
func RemainingUntil(endsAt time.Time) Remaining {
	ms := time.Until(endsAt).Milliseconds()
	if ms < 0 {
		ms = 0
	}
	return Remaining{
		Ms:      ms,
		Minutes: float64(ms) / 60000,
		Seconds: int(math.Ceil(float64(ms) / 1000)),
		Expired: ms <= 0,
	}
}

// ProgressBetween returns the elapsed fraction of the window, clamped
// to [0, 1].
func ProgressBetween(startedAt, endsAt time.Time) float64 {
	total := endsAt.Sub(startedAt)
	if total <= 0 {
		return 1
	}
	p := float64(time.Since(startedAt)) / float64(total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
