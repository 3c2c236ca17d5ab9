// Package practice implements the interactive practice session screen:
// a transaction narrative, an assertion picker with parameter entry,
// and classification feedback with hints and the resolved journal entry.
package practice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aalp/internal/assertion"
	"github.com/abhisek/aalp/internal/match"
	"github.com/abhisek/aalp/internal/narrative"
	"github.com/abhisek/aalp/internal/progress"
	"github.com/abhisek/aalp/internal/session"
	"github.com/abhisek/aalp/internal/simulation"
	"github.com/abhisek/aalp/internal/store"
	"github.com/abhisek/aalp/internal/tui/router"
	"github.com/abhisek/aalp/internal/tui/screen"
	"github.com/abhisek/aalp/internal/tui/summary"
	"github.com/abhisek/aalp/internal/ui/components"
	"github.com/abhisek/aalp/internal/ui/layout"
)

type mode int

const (
	modeLoading mode = iota
	modeBrowse
	modeParams
	modeFeedback
	modeQuitConfirm
	modeError
)

// Screen is the practice session screen.
type Screen struct {
	events store.EventRepo
	snaps  store.SnapshotRepo
	gen    *narrative.Generator
	emb    *narrative.Embellisher

	state  *session.State
	mode   mode
	errMsg string

	picker    components.MultiSelect
	selection match.Selection

	// Parameter entry state: the assertion being parameterized and the
	// values collected so far.
	paramCode   assertion.Code
	paramDefs   []assertion.Parameter
	paramIndex  int
	paramValues match.Params
	input       components.TextInput

	// rejectMsg shows an input rejection (unknown code, unresolvable
	// amount) inline without consuming the attempt.
	rejectMsg string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.StatusProvider = (*Screen)(nil)

// New creates the practice screen with injected dependencies. The
// embellisher may be nil, which disables LLM prose rewrites.
func New(events store.EventRepo, snaps store.SnapshotRepo, gen *narrative.Generator, emb *narrative.Embellisher) *Screen {
	return &Screen{
		events: events,
		snaps:  snaps,
		gen:    gen,
		emb:    emb,
		mode:   modeLoading,
	}
}

func (s *Screen) Init() tea.Cmd {
	return s.initSession()
}

func (s *Screen) Title() string {
	return "Practice"
}

// Status reports level and streak for the header.
func (s *Screen) Status() (int, int) {
	if s.state == nil {
		return 1, 0
	}
	return s.state.Level, s.state.Progress.Streak()
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch s.mode {
	case modeBrowse:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Space", Description: "Toggle"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "End session"},
		}
	case modeParams:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next field"},
			{Key: "Esc", Description: "Cancel"},
		}
	case modeFeedback:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
		}
	case modeQuitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	return nil
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case initDoneMsg:
		return s.handleInitDone(msg)
	case problemReadyMsg:
		return s.handleProblemReady(msg)
	case submitDoneMsg:
		return s.handleSubmitDone(msg)
	case sessionEndMsg:
		return s.handleSessionEnd(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.mode == modeParams {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// initSession loads learner state from the latest snapshot (falling
// back to an event-log rebuild) and records the session start.
func (s *Screen) initSession() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		var snapData *store.SnapshotData
		snap, err := s.snaps.Latest(ctx)
		if err != nil {
			return initDoneMsg{Err: err}
		}
		if snap != nil {
			snapData = &snap.Data
		}

		prog := progress.NewService(snapData, s.events, progress.DefaultConfig())
		if snapData == nil {
			if err := prog.Rebuild(ctx); err != nil {
				return initDoneMsg{Err: err}
			}
		}

		state := session.NewState(prog, simulation.New(s.events), s.events, s.gen)
		state.Embellisher = s.emb

		if err := session.Start(ctx, state); err != nil {
			return initDoneMsg{Err: err}
		}
		return initDoneMsg{State: state}
	}
}

func (s *Screen) handleInitDone(msg initDoneMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		s.mode = modeError
		return s, nil
	}
	s.state = msg.State
	return s, s.nextProblem()
}

func (s *Screen) nextProblem() tea.Cmd {
	return func() tea.Msg {
		p, err := session.NextProblem(context.Background(), s.state)
		return problemReadyMsg{Problem: p, Err: err}
	}
}

func (s *Screen) handleProblemReady(msg problemReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		s.mode = modeError
		return s, nil
	}

	s.picker = components.NewMultiSelect(pickerGroups(s.state.Level))
	s.selection = make(match.Selection)
	s.rejectMsg = ""
	s.mode = modeBrowse
	return s, nil
}

// pickerGroups adapts the catalog's level view into picker rows.
func pickerGroups(level int) []components.MultiSelectGroup {
	var groups []components.MultiSelectGroup
	for _, dg := range assertion.ForLevel(level) {
		g := components.MultiSelectGroup{Title: assertion.DomainDisplayName(dg.Domain)}
		for _, def := range dg.Definitions {
			g.Items = append(g.Items, components.MultiSelectItem{
				ID:    string(def.Code),
				Label: def.Label,
			})
		}
		groups = append(groups, g)
	}
	return groups
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.mode {
	case modeBrowse:
		return s.handleBrowseKey(msg)
	case modeParams:
		return s.handleParamsKey(msg)
	case modeFeedback:
		return s.handleFeedbackKey()
	case modeQuitConfirm:
		return s.handleQuitConfirmKey(msg)
	}
	return s, nil
}

func (s *Screen) handleBrowseKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return s, s.submit()
	case "esc", "q":
		s.mode = modeQuitConfirm
		return s, nil
	}

	var cmd tea.Cmd
	s.picker, cmd = s.picker.Update(msg)
	if id := s.picker.JustToggled; id != "" {
		code := assertion.Code(id)
		if s.picker.Checked[id] {
			s.beginParams(code)
		} else {
			delete(s.selection, code)
			s.picker.SetNote(id, "")
		}
	}
	return s, cmd
}

// beginParams opens parameter entry for a just-checked assertion, or
// commits it immediately when it carries no parameters.
func (s *Screen) beginParams(code assertion.Code) {
	def, err := assertion.Get(code)
	if err != nil || !def.Parameterized() {
		s.selection[code] = match.Params{}
		return
	}

	s.paramCode = code
	s.paramDefs = def.Parameters
	s.paramIndex = 0
	s.paramValues = make(match.Params)
	s.input = paramInput(def.Parameters[0])
	s.mode = modeParams
}

func paramInput(p assertion.Parameter) components.TextInput {
	placeholder := p.Label
	if len(p.Options) > 0 {
		placeholder = fmt.Sprintf("%s (%s)", p.Label, strings.Join(p.Options, " / "))
	}
	numeric := p.Type == assertion.ParamNumber || p.Type == assertion.ParamCurrency || p.Type == assertion.ParamPercentage
	return components.NewTextInput(placeholder, numeric, 40)
}

func (s *Screen) handleParamsKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Cancel the toggle entirely.
		s.picker.Checked[string(s.paramCode)] = false
		delete(s.selection, s.paramCode)
		s.mode = modeBrowse
		return s, nil

	case "enter":
		p := s.paramDefs[s.paramIndex]
		value := strings.TrimSpace(s.input.Value())
		if value == "" && !p.Optional {
			s.input.Submit(false)
			return s, nil
		}
		if value != "" {
			s.paramValues[p.Key] = value
		}

		s.paramIndex++
		if s.paramIndex < len(s.paramDefs) {
			s.input = paramInput(s.paramDefs[s.paramIndex])
			return s, s.input.Init()
		}

		s.selection[s.paramCode] = s.paramValues
		s.picker.SetNote(string(s.paramCode), paramSummary(s.paramValues))
		s.mode = modeBrowse
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func paramSummary(values match.Params) string {
	if len(values) == 0 {
		return ""
	}
	parts := make([]string, 0, len(values))
	for _, k := range sortedKeys(values) {
		parts = append(parts, k+"="+values[k])
	}
	return strings.Join(parts, ", ")
}

func sortedKeys(values match.Params) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}

func (s *Screen) submit() tea.Cmd {
	// Snapshot the selection so further edits cannot race the command.
	snapshot := make(match.Selection, len(s.selection))
	for code, params := range s.selection {
		p := make(match.Params, len(params))
		for k, v := range params {
			p[k] = v
		}
		snapshot[code] = p
	}
	return func() tea.Msg {
		outcome, err := session.HandleSubmission(context.Background(), s.state, snapshot)
		return submitDoneMsg{Outcome: outcome, Err: err}
	}
}

func (s *Screen) handleSubmitDone(msg submitDoneMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		var unknownCode *match.UnknownCodeError
		var linkage *match.LinkageError
		if errors.As(msg.Err, &unknownCode) || errors.As(msg.Err, &linkage) {
			s.rejectMsg = msg.Err.Error()
			s.mode = modeBrowse
			return s, nil
		}
		s.errMsg = msg.Err.Error()
		s.mode = modeError
		return s, nil
	}

	s.rejectMsg = ""
	s.mode = modeFeedback
	return s, nil
}

func (s *Screen) handleFeedbackKey() (screen.Screen, tea.Cmd) {
	if s.state.LastResult != nil && s.state.LastResult.Status == match.StatusCorrect {
		return s, s.nextProblem()
	}
	// Retry the same problem with the selection intact.
	s.mode = modeBrowse
	return s, nil
}

func (s *Screen) handleQuitConfirmKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return s, s.endSession()
	case "n", "N", "esc":
		s.mode = modeBrowse
		return s, nil
	}
	return s, nil
}

func (s *Screen) endSession() tea.Cmd {
	return func() tea.Msg {
		sum, err := session.End(context.Background(), s.state, s.snaps)
		return sessionEndMsg{Summary: sum, Err: err}
	}
}

func (s *Screen) handleSessionEnd(msg sessionEndMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		s.mode = modeError
		return s, nil
	}
	sum := msg.Summary
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum)}
	}
}
