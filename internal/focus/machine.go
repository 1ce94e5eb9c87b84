package focus

import "time"

// Gesture thresholds. Both are intentionally long: starting and
// abandoning a session should feel deliberate.
const (
	HoldThreshold = 2500 * time.Millisecond
	SealThreshold = 2000 * time.Millisecond
)

// EventKind enumerates the inputs the reducer accepts.
type EventKind int

const (
	EvStartHolding EventKind = iota
	EvReleaseHold
	EvHoldThresholdMet
	EvBreakSeal
	EvConfirmEndEarly
	EvCancelEndEarly
	EvSkipBreak
	EvTick
	EvSelectPreset
)

// Event is one dispatched input. Preset is set only for
// EvHoldThresholdMet and EvSelectPreset.
type Event struct {
	Kind   EventKind
	Preset PresetID
}

// Holding tracks an in-progress hold-to-start gesture. Never
// persisted. From records the phase to return to on release.
type Holding struct {
	StartedAt time.Time
	Progress  float64
	From      Phase
}

// State is the full timer state. ActiveTimer is non-nil exactly while
// a focus or break window is live; Holding is non-nil exactly while
// the phase is PhaseHolding (the live break timer is retained when a
// hold is armed from a break, so release can resume it).
type State struct {
	Phase          Phase
	ActiveTimer    *ActiveTimer
	Holding        *Holding
	SelectedPreset PresetID
}

// Settings is the external configuration consulted on transitions.
// Sound/Vibration/TimeFormat are cosmetic and never affect logic.
type Settings struct {
	AutoBreak    bool
	BreakMinutes int
	Sound        bool
	Vibration    bool
	TimeFormat   string
}

// Result is a reduced state plus side-effect payloads for the caller:
// Session, when set, must be recorded to history; StartBreak reports
// that a break window just began.
type Result struct {
	State      State
	Session    *Session
	StartBreak bool
}

// NewState returns a fresh idle state.
func NewState(selected PresetID) State {
	if selected == "" {
		selected = PresetStandard
	}
	return State{Phase: PhaseIdle, SelectedPreset: selected}
}

// Restore rebuilds state from a persisted snapshot at process start.
// A snapshot whose window already expired while the process was down
// is discarded; the session is not retroactively credited.
func Restore(at *ActiveTimer, selected PresetID) State {
	if at == nil {
		return NewState(selected)
	}
	if !at.EndsAt.After(time.Now()) {
		return NewState(selected)
	}
	st := NewState(selected)
	st.Phase = at.Phase
	st.ActiveTimer = at
	return st
}

// Reduce applies one event to the state. Events that do not match the
// current phase are ignored and the state is returned unchanged, so
// callers never need to guard their dispatches.
func Reduce(st State, ev Event, cfg Settings) Result {
	switch ev.Kind {
	case EvStartHolding:
		if st.Phase != PhaseIdle && st.Phase != PhaseBreak {
			return Result{State: st}
		}
		st.Holding = &Holding{StartedAt: time.Now(), From: st.Phase}
		st.Phase = PhaseHolding
		return Result{State: st}

	case EvReleaseHold:
		if st.Phase != PhaseHolding {
			return Result{State: st}
		}
		st.Phase = st.Holding.From
		st.Holding = nil
		return Result{State: st}

	case EvHoldThresholdMet:
		if st.Phase != PhaseHolding && st.Phase != PhaseIdle {
			return Result{State: st}
		}
		fromBreak := st.Holding != nil && st.Holding.From == PhaseBreak
		preset := ev.Preset
		if preset == "" {
			preset = st.SelectedPreset
		}
		session := NewSession(preset)
		at := NewActiveTimer(session, PhaseFocusing)
		st.Phase = PhaseFocusing
		st.ActiveTimer = &at
		st.Holding = nil
		if fromBreak {
			// The break's parent session is already recorded.
			return Result{State: st}
		}
		return Result{State: st, Session: &session}

	case EvBreakSeal:
		if st.Phase != PhaseFocusing {
			return Result{State: st}
		}
		st.Phase = PhaseEndedEarly
		return Result{State: st}

	case EvConfirmEndEarly:
		if st.Phase != PhaseEndedEarly || st.ActiveTimer == nil {
			return Result{State: st}
		}
		session := EndEarly(sessionFromTimer(*st.ActiveTimer))
		st.Phase = PhaseIdle
		st.ActiveTimer = nil
		return Result{State: st, Session: &session}

	case EvCancelEndEarly:
		if st.Phase != PhaseEndedEarly {
			return Result{State: st}
		}
		st.Phase = PhaseFocusing
		return Result{State: st}

	case EvSkipBreak:
		if st.Phase != PhaseBreak {
			return Result{State: st}
		}
		st.Phase = PhaseIdle
		st.ActiveTimer = nil
		return Result{State: st}

	case EvTick:
		return reduceTick(st, cfg)

	case EvSelectPreset:
		if st.Phase != PhaseIdle {
			return Result{State: st}
		}
		st.SelectedPreset = ev.Preset
		return Result{State: st}
	}
	return Result{State: st}
}

func reduceTick(st State, cfg Settings) Result {
	switch st.Phase {
	case PhaseHolding:
		elapsed := time.Since(st.Holding.StartedAt)
		p := float64(elapsed) / float64(HoldThreshold)
		if p < 0 {
			p = 0
		}
		if p > 1 {
			p = 1
		}
		h := *st.Holding
		h.Progress = p
		st.Holding = &h
		return Result{State: st}

	case PhaseFocusing:
		if !RemainingUntil(st.ActiveTimer.EndsAt).Expired {
			return Result{State: st}
		}
		session := Complete(sessionFromTimer(*st.ActiveTimer))
		if !cfg.AutoBreak {
			st.Phase = PhaseIdle
			st.ActiveTimer = nil
			return Result{State: st, Session: &session}
		}
		now := time.Now()
		minutes := cfg.BreakMinutes
		if minutes <= 0 {
			minutes = GetPreset(PresetBreak).Minutes
		}
		st.Phase = PhaseBreak
		st.ActiveTimer = &ActiveTimer{
			SessionID:    session.ID + "_break",
			Phase:        PhaseBreak,
			PresetID:     PresetBreak,
			StartedAt:    now,
			EndsAt:       now.Add(time.Duration(minutes) * time.Minute),
			TotalMinutes: minutes,
		}
		return Result{State: st, Session: &session, StartBreak: true}

	case PhaseBreak:
		if !RemainingUntil(st.ActiveTimer.EndsAt).Expired {
			return Result{State: st}
		}
		st.Phase = PhaseIdle
		st.ActiveTimer = nil
		return Result{State: st}
	}
	return Result{State: st}
}

// sessionFromTimer rebuilds the session record a snapshot was derived
// from, for finalization after a restart may have dropped the
// original value.
func sessionFromTimer(at ActiveTimer) Session {
	return Session{
		ID:           at.SessionID,
		PresetID:     at.PresetID,
		StartedAt:    at.StartedAt,
		EndsAt:       at.EndsAt,
		TotalMinutes: at.TotalMinutes,
	}
}

// DisplayState is the per-tick render projection of the timer.
type DisplayState struct {
	RemainingMinutes int
	RemainingSeconds int
	LitDots          int
	TotalDots        int
	Progress         float64
}

// Display computes the values the UI renders. With no active timer it
// previews the selected preset's full duration.
func Display(st State, cfg Settings) DisplayState {
	if st.ActiveTimer == nil {
		p := GetPreset(st.SelectedPreset)
		return DisplayState{
			RemainingMinutes: p.Minutes,
			LitDots:          TotalDots(p),
			TotalDots:        TotalDots(p),
		}
	}
	at := st.ActiveTimer
	total := TotalDots(GetPreset(at.PresetID))
	if at.PresetID == PresetBreak {
		// Break length follows settings, not the preset grid.
		total = at.TotalMinutes
	}
	rem := RemainingUntil(at.EndsAt)
	return DisplayState{
		RemainingMinutes: rem.Seconds / 60,
		RemainingSeconds: rem.Seconds % 60,
		LitDots:          LitDots(rem.Minutes, total),
		TotalDots:        total,
		Progress:         ProgressBetween(at.StartedAt, at.EndsAt),
	}
}
