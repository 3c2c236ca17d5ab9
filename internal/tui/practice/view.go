package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/aalp/internal/match"
	"github.com/abhisek/aalp/internal/rules"
	"github.com/abhisek/aalp/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	switch s.mode {
	case modeLoading:
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Preparing session...")
	case modeError:
		return s.renderError(width)
	case modeFeedback:
		return s.renderFeedback(width, height)
	case modeQuitConfirm:
		return s.renderQuitConfirm(width)
	default:
		return s.renderProblem(width, height)
	}
}

// renderProblem shows the narrative card, the assertion picker and, in
// parameter mode, the entry form below it.
func (s *Screen) renderProblem(width, height int) string {
	state := s.state
	if state == nil || state.CurrentProblem == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Writing a transaction...")
	}

	var b strings.Builder

	// Session tally line.
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Transaction %d", state.TotalProblems+1))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s %d correct",
			lipgloss.NewStyle().Foreground(theme.Success).Render("*"),
			state.TotalCorrect,
		))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	// Narrative card.
	card := theme.Card.Width(min(width-6, 72)).Render(state.CurrentProblem.Narrative)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	b.WriteString("\n\n")

	prompt := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render("  What is true about this transaction?")
	b.WriteString(prompt)
	b.WriteString("\n\n")

	b.WriteString(s.picker.View())
	b.WriteString("\n")

	if s.mode == modeParams {
		b.WriteString(s.renderParamForm(width))
	}

	if s.rejectMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Error).
			Render("  " + s.rejectMsg))
	}

	return b.String()
}

// renderParamForm shows the current parameter prompt for the assertion
// being configured.
func (s *Screen) renderParamForm(width int) string {
	p := s.paramDefs[s.paramIndex]

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s (%d/%d)", s.paramCode, s.paramIndex+1, len(s.paramDefs))))
	b.WriteString("\n")

	label := p.Label
	if p.Optional {
		label += " (optional)"
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("  " + label))
	b.WriteString("\n")
	b.WriteString("  " + s.input.View())
	b.WriteString("\n")
	return b.String()
}

// renderFeedback shows the classification result, hints for a miss and
// the resolved journal entry for a hit.
func (s *Screen) renderFeedback(width, height int) string {
	state := s.state
	result := state.LastResult

	var b strings.Builder
	b.WriteString("\n\n")

	if result == nil {
		return b.String()
	}

	switch result.Status {
	case match.StatusCorrect:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render("Correct!"))
		b.WriteString("\n\n")
		if result.Entry != nil {
			b.WriteString(renderJournalEntry(width, result.Entry))
			b.WriteString("\n")
		}
	case match.StatusIndeterminate:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Bold(true).
			Render("Ambiguous"))
		b.WriteString("\n")
		names := make([]string, 0, len(result.Matched))
		for _, key := range result.Matched {
			names = append(names, ruleName(key))
		}
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Your assertions fit more than one classification: " + strings.Join(names, ", ")))
		b.WriteString("\n\n")
	default:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("Not quite"))
		b.WriteString("\n\n")
	}

	if result.Status != match.StatusCorrect && len(result.Hints) > 0 {
		hintBlock := renderHints(result.Hints)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, hintBlock))
		b.WriteString("\n\n")
	}

	if state.LastUnlock != nil {
		u := state.LastUnlock
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Bold(true).
			Render("Level up!"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Render(fmt.Sprintf("Level %d unlocked — new transaction types ahead", u.To)))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press any key to continue..."))
	return b.String()
}

func renderHints(hints []match.Hint) string {
	var b strings.Builder
	for i, h := range hints {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(theme.Hint.Render("hint: " + h.Text))
	}
	return b.String()
}

// renderJournalEntry renders the resolved entry with debits flush left
// and credits indented, ledger style.
func renderJournalEntry(width int, entry *match.ResolvedEntry) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(ruleName(entry.Rule)))
	b.WriteString("\n")

	for _, line := range entry.Lines {
		detail := ""
		if line.Detail != "" {
			detail = "  (" + line.Detail + ")"
		}
		text := fmt.Sprintf("%s %-14s %10.2f%s", line.Side, line.Account, line.Amount, detail)
		if line.Side == match.SideDebit {
			b.WriteString(theme.Debit.Render(text))
		} else {
			b.WriteString(theme.Credit.Render("    " + text))
		}
		b.WriteString("\n")
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func ruleName(key rules.Key) string {
	if r, err := rules.Get(key); err == nil {
		return r.Name
	}
	return string(key)
}

func (s *Screen) renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("End this session?"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Your progress is saved either way. [y/n]"))
	return b.String()
}

func (s *Screen) renderError(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Bold(true).
		Render("Something went wrong"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(min(width, 70)).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(s.errMsg))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}
