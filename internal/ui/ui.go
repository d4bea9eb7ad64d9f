package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Nomadcxx/nfosink/internal/reporter"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewSummary ViewMode = iota
	ViewFailures
)

// Model represents the report viewer state
type Model struct {
	report   reporter.Report
	mode     ViewMode
	viewport viewport.Model
	ready    bool
	width    int
	height   int
}

// NewModel creates a report viewer model
func NewModel(report reporter.Report) Model {
	return Model{
		report: report,
		mode:   ViewSummary,
	}
}

// Init initializes the TUI
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "esc":
			if m.mode != ViewSummary {
				m.mode = ViewSummary
				m.viewport.SetContent(m.renderSummary())
				return m, nil
			}
			return m, tea.Quit

		case "f1":
			m.mode = ViewFailures
			m.viewport.SetContent(m.renderFailures())
			m.viewport.GotoTop()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		if !m.ready {
			// Leave room for header/footer
			m.viewport = viewport.New(msg.Width, msg.Height-4)
			m.viewport.SetContent(m.renderSummary())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 4
		}

		return m, nil
	}

	// Handle viewport updates (scrolling)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var header string
	var footer string

	switch m.mode {
	case ViewSummary:
		header = FormatHeader("NFOSINK SYNC REPORT")
		footer = FormatFooter(
			FormatKeybinding("F1", "Failures"),
			FormatKeybinding("Esc", "Exit"),
		)

	case ViewFailures:
		header = FormatHeader("FAILED AND SKIPPED ITEMS")
		scrollInfo := fmt.Sprintf("%d%%", int(m.viewport.ScrollPercent()*100))
		footer = FormatFooter(
			FormatKeybinding("↑↓", "Scroll"),
			FormatKeybinding("PgUp/PgDn", "Page"),
			FormatKeybinding("Esc", "Back"),
			MutedStyle.Render(scrollInfo),
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		m.viewport.View(),
		footer,
	)
}

// renderSummary renders the summary view
func (m Model) renderSummary() string {
	var sb strings.Builder

	sb.WriteString(InfoStyle.Render("Generated: ") + ContentStyle.Render(m.report.Timestamp.Format("2006-01-02 15:04:05")) + "\n")
	sb.WriteString(InfoStyle.Render("Server: ") + ContentStyle.Render(m.report.ServerURL) + "\n")
	sb.WriteString(InfoStyle.Render("Library: ") + ContentStyle.Render(fmt.Sprintf("%s (%s)", m.report.Library, m.report.LibraryType)) + "\n")
	sb.WriteString(InfoStyle.Render("Root: ") + ContentStyle.Render(m.report.RootPath) + "\n")
	if m.report.DryRun {
		sb.WriteString(WarningStyle.Render("DRY RUN - no files were written") + "\n")
	}
	sb.WriteString("\n")

	sb.WriteString(TitleStyle.Render("RESULTS") + "\n")
	sb.WriteString(InfoStyle.Render("Markers written: ") + StatStyle.Render(fmt.Sprintf("%d", m.report.Stats.Success)) + "\n")
	sb.WriteString(InfoStyle.Render("Failed: ") + StatStyle.Render(fmt.Sprintf("%d", m.report.Stats.Failed)) + "\n")
	sb.WriteString(InfoStyle.Render("Skipped: ") + StatStyle.Render(fmt.Sprintf("%d", m.report.Stats.Skipped)) + "\n\n")

	sb.WriteString(TitleStyle.Render("IDENTIFIER SOURCES") + "\n")
	sb.WriteString(InfoStyle.Render("Structured annotations: ") + StatStyle.Render(fmt.Sprintf("%d", m.report.Stats.Primary)) + "\n")
	sb.WriteString(InfoStyle.Render("Legacy guid fallback: ") + StatStyle.Render(fmt.Sprintf("%d", m.report.Stats.Secondary)) + "\n\n")

	if failed := m.report.FailedItems(); len(failed) > 0 {
		sb.WriteString(TitleStyle.Render("NEEDS ATTENTION") + "\n")
		sb.WriteString(ErrorStyle.Render(fmt.Sprintf("%d item(s) did not get a marker.", len(failed))) + "\n")
		sb.WriteString(InfoStyle.Render("Press F1 for details.") + "\n\n")

		limit := 5
		if len(failed) < limit {
			limit = len(failed)
		}
		sb.WriteString(MutedStyle.Render("First examples:") + "\n")
		for i := 0; i < limit; i++ {
			sb.WriteString(fmt.Sprintf("  %s %s - %s\n",
				WarningStyle.Render(fmt.Sprintf("%d.", i+1)),
				ContentStyle.Render(failed[i].Title),
				MutedStyle.Render(failed[i].Error)))
		}
	} else {
		sb.WriteString(FormatStatusOK("every item synced cleanly") + "\n")
	}

	return sb.String()
}

// Summary renders a styled one-shot console summary of a run, used by
// the sync command after the report is saved
func Summary(report reporter.Report) string {
	var sb strings.Builder

	sb.WriteString(TitleStyle.Render("SYNC SUMMARY") + "\n")
	sb.WriteString(InfoStyle.Render("Library: ") + ContentStyle.Render(fmt.Sprintf("%s (%s)", report.Library, report.LibraryType)) + "\n")
	if report.DryRun {
		sb.WriteString(WarningStyle.Render("DRY RUN - no files were written") + "\n")
	}
	sb.WriteString(FormatStatusOK(fmt.Sprintf("markers written: %d", report.Stats.Success)) + "\n")
	if report.Stats.Failed > 0 {
		sb.WriteString(FormatStatusFail(fmt.Sprintf("failed: %d", report.Stats.Failed)) + "\n")
	}
	if report.Stats.Skipped > 0 {
		sb.WriteString(FormatStatusWarn(fmt.Sprintf("skipped: %d", report.Stats.Skipped)) + "\n")
	}
	sb.WriteString(MutedStyle.Render(fmt.Sprintf("identifiers: %d structured, %d legacy fallback",
		report.Stats.Primary, report.Stats.Secondary)) + "\n")

	return sb.String()
}

// renderFailures renders the failed/skipped detail view
func (m Model) renderFailures() string {
	var sb strings.Builder

	sb.WriteString(TitleStyle.Render("ITEMS WITHOUT MARKERS") + "\n\n")

	failed := m.report.FailedItems()
	if len(failed) == 0 {
		sb.WriteString(SuccessStyle.Render("✓ Every item received a marker file") + "\n")
		return sb.String()
	}

	for i, item := range failed {
		marker := FailMarker.String()
		if item.Status == reporter.StatusSkipped {
			marker = WarnMarker.String()
		}
		sb.WriteString(fmt.Sprintf("%s %s %s\n",
			WarningStyle.Render(fmt.Sprintf("%d.", i+1)),
			marker,
			ContentStyle.Render(item.Title)))

		if item.RecordedPath != "" {
			sb.WriteString(fmt.Sprintf("   %s %s\n",
				MutedStyle.Render("Recorded:"),
				ContentStyle.Render(item.RecordedPath)))
		}
		if item.ResolvedPath != "" && item.ResolvedPath != item.RecordedPath {
			sb.WriteString(fmt.Sprintf("   %s %s\n",
				MutedStyle.Render("Resolved:"),
				ContentStyle.Render(item.ResolvedPath)))
		}
		sb.WriteString(fmt.Sprintf("   %s %s\n\n",
			MutedStyle.Render("Reason:  "),
			ErrorStyle.Render(item.Error)))
	}

	return sb.String()
}
