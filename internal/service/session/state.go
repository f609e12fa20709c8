package session

import (
	"time"

	"nexalis-roi/internal/narrative"
	"nexalis-roi/internal/report"
	"nexalis-roi/internal/roi"
)

// Submission is one calculation request and what became of it.
type Submission struct {
	ID          uint64
	Inputs      roi.Inputs
	Result      roi.Result
	Chart       [3]roi.ChartPoint
	Narrative   *narrative.Narrative
	SubmittedAt time.Time
}

func (s Submission) Bundle() report.Bundle {
	return report.Assemble(s.Inputs, s.Result, s.Chart, s.Narrative)
}

// State is the value held in a session slot. It is replaced, never
// modified: Apply returns a new State.
type State struct {
	SessionID string
	LatestID  uint64
	Current   *Submission
}

type Event interface {
	isEvent()
}

type Submitted struct {
	Submission Submission
}

type InsightArrived struct {
	SubmissionID uint64
	Narrative    narrative.Narrative
}

func (Submitted) isEvent()      {}
func (InsightArrived) isEvent() {}

// Apply is the only way a session changes. An insight for anything but
// the latest submission leaves the state as it was; applied reports
// whether the event took effect.
func (s State) Apply(ev Event) (next State, applied bool) {
	switch e := ev.(type) {
	case Submitted:
		if e.Submission.ID <= s.LatestID {
			return s, false
		}
		sub := e.Submission
		sub.Narrative = nil
		return State{SessionID: s.SessionID, LatestID: sub.ID, Current: &sub}, true

	case InsightArrived:
		if s.Current == nil || e.SubmissionID != s.LatestID || s.Current.ID != e.SubmissionID {
			return s, false
		}
		sub := *s.Current
		n := e.Narrative
		sub.Narrative = &n
		return State{SessionID: s.SessionID, LatestID: s.LatestID, Current: &sub}, true
	}

	return s, false
}
