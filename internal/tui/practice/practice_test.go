package practice

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aalp/internal/assertion"
	"github.com/abhisek/aalp/internal/match"
	"github.com/abhisek/aalp/internal/narrative"
	"github.com/abhisek/aalp/internal/store"
	"github.com/abhisek/aalp/internal/tui/router"
	"github.com/abhisek/aalp/internal/tui/screen"
)

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	attempts []store.AttemptEventData
	sessions []store.SessionEventData
	ledger   []store.LedgerRecord
}

func (m *mockEventRepo) AppendAttempt(_ context.Context, data store.AttemptEventData) error {
	m.attempts = append(m.attempts, data)
	return nil
}
func (m *mockEventRepo) AppendHint(_ context.Context, _ store.HintEventData) error { return nil }
func (m *mockEventRepo) AppendSession(_ context.Context, data store.SessionEventData) error {
	m.sessions = append(m.sessions, data)
	return nil
}
func (m *mockEventRepo) AppendLedger(_ context.Context, data store.LedgerEventData) error {
	m.ledger = append(m.ledger, store.LedgerRecord{LedgerEventData: data})
	return nil
}
func (m *mockEventRepo) AppendUnlock(_ context.Context, _ store.UnlockEventData) error { return nil }
func (m *mockEventRepo) AppendLLMRequest(_ context.Context, _ store.LLMRequestEventData) error {
	return nil
}
func (m *mockEventRepo) ListAttempts(_ context.Context, _ store.QueryOpts) ([]store.AttemptRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) LevelStats(_ context.Context, _ int) (store.LevelStats, error) {
	return store.LevelStats{}, nil
}
func (m *mockEventRepo) RuleStats(_ context.Context) (map[string]store.RuleTally, error) {
	return nil, nil
}
func (m *mockEventRepo) ListLedger(_ context.Context, _ store.QueryOpts) ([]store.LedgerRecord, error) {
	return m.ledger, nil
}
func (m *mockEventRepo) MaxUnlockedLevel(_ context.Context) (int, error) { return 0, nil }
func (m *mockEventRepo) RecentNarratives(_ context.Context, _ int) ([]string, error) {
	return nil, nil
}
func (m *mockEventRepo) LLMSpend(_ context.Context) (store.LLMTotals, error) {
	return store.LLMTotals{}, nil
}

// mockSnapshotRepo implements store.SnapshotRepo for testing.
type mockSnapshotRepo struct {
	saved []*store.Snapshot
}

func (m *mockSnapshotRepo) Save(_ context.Context, snap *store.Snapshot) error {
	m.saved = append(m.saved, snap)
	return nil
}
func (m *mockSnapshotRepo) Latest(_ context.Context) (*store.Snapshot, error) {
	if len(m.saved) == 0 {
		return nil, nil
	}
	return m.saved[len(m.saved)-1], nil
}
func (m *mockSnapshotRepo) Prune(_ context.Context, _ int) error { return nil }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// drive runs a command and feeds its message back into the screen,
// following commands until none remain.
func drive(t *testing.T, s *Screen, cmd tea.Cmd) *Screen {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return s
		}
		if _, ok := msg.(router.ReplaceScreenMsg); ok {
			return s
		}
		var next screen.Screen
		next, cmd = s.Update(msg)
		s = next.(*Screen)
	}
	return s
}

// testScreen creates a practice screen driven through Init so it sits in
// browse mode with a problem loaded.
func testScreen(t *testing.T) (*Screen, *mockEventRepo, *mockSnapshotRepo) {
	t.Helper()
	events := &mockEventRepo{}
	snaps := &mockSnapshotRepo{}
	s := New(events, snaps, narrative.NewGenerator(42), nil)
	s = drive(t, s, s.Init())
	if s.mode != modeBrowse {
		t.Fatalf("mode after init = %d, want browse", s.mode)
	}
	if s.state == nil || s.state.CurrentProblem == nil {
		t.Fatal("expected an active problem after init")
	}
	return s, events, snaps
}

func TestPracticeScreen_Title(t *testing.T) {
	s := New(&mockEventRepo{}, &mockSnapshotRepo{}, narrative.NewGenerator(1), nil)
	if s.Title() != "Practice" {
		t.Errorf("Title = %q, want %q", s.Title(), "Practice")
	}
}

func TestPracticeScreen_View_Loading(t *testing.T) {
	s := New(&mockEventRepo{}, &mockSnapshotRepo{}, narrative.NewGenerator(1), nil)
	if s.View(80, 24) == "" {
		t.Error("expected non-empty loading view")
	}
}

func TestPracticeScreen_InitRecordsSessionStart(t *testing.T) {
	_, events, _ := testScreen(t)
	if len(events.sessions) != 1 {
		t.Fatalf("session events = %d, want 1", len(events.sessions))
	}
	if events.sessions[0].Action != "start" {
		t.Errorf("session action = %q, want start", events.sessions[0].Action)
	}
}

func TestPracticeScreen_ParamEntryCommitsSelection(t *testing.T) {
	s, _, _ := testScreen(t)

	s.picker.Checked["revenue-earned"] = true
	s.beginParams("revenue-earned")
	if s.mode != modeParams {
		t.Fatalf("mode = %d, want params", s.mode)
	}

	s.input.SetValue("300")
	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	s = scr.(*Screen)
	if s.mode != modeParams {
		t.Fatal("expected optional second parameter prompt")
	}

	// Skip the optional confidence parameter.
	scr, _ = s.Update(specialKey(tea.KeyEnter))
	s = scr.(*Screen)
	if s.mode != modeBrowse {
		t.Fatalf("mode = %d, want browse after last parameter", s.mode)
	}
	if got := s.selection["revenue-earned"]["amount"]; got != "300" {
		t.Errorf("amount param = %q, want 300", got)
	}
}

func TestPracticeScreen_ParamEscCancelsToggle(t *testing.T) {
	s, _, _ := testScreen(t)

	s.picker.Checked["revenue-earned"] = true
	s.beginParams("revenue-earned")

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	s = scr.(*Screen)

	if s.mode != modeBrowse {
		t.Fatalf("mode = %d, want browse after cancel", s.mode)
	}
	if s.picker.Checked["revenue-earned"] {
		t.Error("expected cancelled toggle to be unchecked")
	}
	if _, ok := s.selection["revenue-earned"]; ok {
		t.Error("expected cancelled assertion out of the selection")
	}
}

func TestPracticeScreen_RequiredParamCannotBeSkipped(t *testing.T) {
	s, _, _ := testScreen(t)

	s.picker.Checked["revenue-earned"] = true
	s.beginParams("revenue-earned")

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	s = scr.(*Screen)

	if s.mode != modeParams || s.paramIndex != 0 {
		t.Error("expected empty required parameter to keep the prompt open")
	}
}

func TestPracticeScreen_UnparameterizedToggleCommitsDirectly(t *testing.T) {
	s, _, _ := testScreen(t)

	code := unparameterizedCode(t, s.state.Level)
	s.picker.Checked[string(code)] = true
	s.beginParams(code)

	if s.mode != modeBrowse {
		t.Fatalf("mode = %d, want browse", s.mode)
	}
	if _, ok := s.selection[code]; !ok {
		t.Errorf("expected %s in selection", code)
	}
}

func unparameterizedCode(t *testing.T, level int) assertion.Code {
	t.Helper()
	for _, dg := range assertion.ForLevel(level) {
		for _, def := range dg.Definitions {
			if !def.Parameterized() {
				return def.Code
			}
		}
	}
	t.Fatal("no unparameterized assertion at level")
	return ""
}

func TestPracticeScreen_SubmitCorrectSolution(t *testing.T) {
	s, events, _ := testScreen(t)

	s.selection = s.state.CurrentProblem.Solution
	var scr screen.Screen = s
	scr, cmd := scr.Update(specialKey(tea.KeyEnter))
	s = scr.(*Screen)
	s = drive(t, s, cmd)

	if s.mode != modeFeedback {
		t.Fatalf("mode = %d, want feedback", s.mode)
	}
	if s.state.LastResult == nil || s.state.LastResult.Status != match.StatusCorrect {
		t.Fatalf("LastResult = %+v, want correct", s.state.LastResult)
	}
	if len(events.attempts) != 1 {
		t.Errorf("attempt events = %d, want 1", len(events.attempts))
	}
	if len(events.ledger) < 2 {
		t.Errorf("ledger postings = %d, want at least 2", len(events.ledger))
	}

	// Dismissing correct feedback serves the next problem.
	prevID := s.state.CurrentProblem.ID
	scr, cmd = s.Update(keyPress(' '))
	s = scr.(*Screen)
	s = drive(t, s, cmd)
	if s.mode != modeBrowse {
		t.Fatalf("mode = %d, want browse after feedback", s.mode)
	}
	if s.state.CurrentProblem.ID == prevID {
		t.Error("expected a fresh problem after correct feedback")
	}
}

func TestPracticeScreen_RejectedSubmissionStaysInBrowse(t *testing.T) {
	s, events, _ := testScreen(t)

	s.selection = match.Selection{"no-such-assertion": {}}
	var scr screen.Screen = s
	scr, cmd := scr.Update(specialKey(tea.KeyEnter))
	s = scr.(*Screen)
	s = drive(t, s, cmd)

	if s.mode != modeBrowse {
		t.Fatalf("mode = %d, want browse", s.mode)
	}
	if s.rejectMsg == "" {
		t.Error("expected an inline rejection message")
	}
	if len(events.attempts) != 0 {
		t.Errorf("attempt events = %d, want 0 for rejected input", len(events.attempts))
	}
}

func TestPracticeScreen_QuitConfirmFlow(t *testing.T) {
	s, events, snaps := testScreen(t)

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	s = scr.(*Screen)
	if s.mode != modeQuitConfirm {
		t.Fatalf("mode = %d, want quit confirm", s.mode)
	}

	scr, _ = s.Update(keyPress('n'))
	s = scr.(*Screen)
	if s.mode != modeBrowse {
		t.Fatalf("mode = %d, want browse after dismiss", s.mode)
	}

	scr, _ = s.Update(specialKey(tea.KeyEscape))
	s = scr.(*Screen)
	scr, cmd := s.Update(keyPress('y'))
	s = scr.(*Screen)
	if cmd == nil {
		t.Fatal("expected an end-session command")
	}
	msg := cmd()
	end, ok := msg.(sessionEndMsg)
	if !ok || end.Err != nil {
		t.Fatalf("end msg = %#v", msg)
	}

	_, cmd = s.Update(end)
	if cmd == nil {
		t.Fatal("expected a replace-screen command after session end")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("expected ReplaceScreenMsg to show the summary")
	}

	if len(events.sessions) != 2 {
		t.Errorf("session events = %d, want start and end", len(events.sessions))
	}
	if len(snaps.saved) != 1 {
		t.Errorf("snapshots = %d, want 1", len(snaps.saved))
	}
}

func TestPracticeScreen_KeyHints(t *testing.T) {
	s, _, _ := testScreen(t)
	if len(s.KeyHints()) == 0 {
		t.Error("expected key hints in browse mode")
	}
}
