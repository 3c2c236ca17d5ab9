package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aalp/internal/session"
)

func testSummary() *session.Summary {
	return &session.Summary{
		Duration:      12 * time.Minute,
		TotalProblems: 10,
		TotalCorrect:  8,
		Accuracy:      0.8,
		Level:         2,
		Unlocked:      true,
		RuleResults: []session.RuleResult{
			{RuleKey: "asset-purchase", Attempted: 4, Correct: 4},
			{RuleKey: "cash-sale", Attempted: 6, Correct: 4},
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary())
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary())
	view := s.View(80, 24)
	if view == "" {
		t.Fatal("expected non-empty summary view")
	}
	for _, want := range []string{"Session complete!", "12:00", "Transactions: 10", "Level 2 unlocked"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_RuleNamesResolved(t *testing.T) {
	s := New(testSummary())
	view := s.View(80, 24)
	if strings.Contains(view, "asset-purchase") {
		t.Error("expected display name, not the raw rule key")
	}
}

func TestSummaryScreen_SkipsUnattemptedRules(t *testing.T) {
	sum := testSummary()
	sum.RuleResults = append(sum.RuleResults, session.RuleResult{RuleKey: "expense", Attempted: 0})
	s := New(sum)
	view := s.View(80, 24)
	if strings.Contains(view, "0/0") {
		t.Error("unattempted rule should not be listed")
	}
}

func TestSummaryScreen_EnterQuits(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Error("expected a command on Enter (quit)")
	}
}

func TestSummaryScreen_NilSummary(t *testing.T) {
	s := New(nil)
	if s.View(80, 24) != "" {
		t.Error("expected empty view for nil summary")
	}
}
