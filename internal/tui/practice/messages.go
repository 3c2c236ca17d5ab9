package practice

import (
	"github.com/abhisek/aalp/internal/narrative"
	sess "github.com/abhisek/aalp/internal/session"
)

// initDoneMsg is sent when learner state has been loaded and the
// session start event recorded.
type initDoneMsg struct {
	State *sess.State
	Err   error
}

// problemReadyMsg is sent when the next problem has been generated.
type problemReadyMsg struct {
	Problem *narrative.Problem
	Err     error
}

// submitDoneMsg is sent when a submission has been classified and
// recorded.
type submitDoneMsg struct {
	Outcome *sess.Outcome
	Err     error
}

// sessionEndMsg is sent when the session end flow has completed.
type sessionEndMsg struct {
	Summary *sess.Summary
	Err     error
}
