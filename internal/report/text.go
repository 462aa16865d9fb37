package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Colour palette
var (
	colorPrimary = lipgloss.Color("#00D4FF") // Cyan
	colorSuccess = lipgloss.Color("#10B981") // Green
	colorWarning = lipgloss.Color("#F59E0B") // Yellow/Orange
	colorError   = lipgloss.Color("#EF4444") // Red
	colorMuted   = lipgloss.Color("#6B7280") // Gray
)

type textStyles struct {
	title    lipgloss.Style
	section  lipgloss.Style
	name     lipgloss.Style
	under    lipgloss.Style
	over     lipgloss.Style
	detail   lipgloss.Style
	ok       lipgloss.Style
	failure  lipgloss.Style
	complete lipgloss.Style
}

// TextRenderer writes the console report
type TextRenderer struct {
	opts Options
}

// NewTextRenderer creates a text renderer
func NewTextRenderer(opts Options) *TextRenderer {
	return &TextRenderer{opts: opts}
}

func (t *TextRenderer) styles(w io.Writer) textStyles {
	r := lipgloss.NewRenderer(w)
	if t.opts.Color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	return textStyles{
		title:    r.NewStyle().Bold(true).Foreground(colorPrimary),
		section:  r.NewStyle().Bold(true).Foreground(colorPrimary),
		name:     r.NewStyle().Bold(true),
		under:    r.NewStyle().Foreground(colorWarning),
		over:     r.NewStyle().Foreground(colorError),
		detail:   r.NewStyle().Foreground(colorMuted),
		ok:       r.NewStyle().Foreground(colorSuccess),
		failure:  r.NewStyle().Bold(true).Foreground(colorError),
		complete: r.NewStyle().Bold(true).Foreground(colorPrimary),
	}
}

// Render implements Renderer
func (t *TextRenderer) Render(w io.Writer, r *Result) error {
	st := t.styles(w)
	var sb strings.Builder

	sb.WriteString(st.title.Render("=== Organizational Analysis ===") + "\n")
	sb.WriteString(fmt.Sprintf("Analyzing file: %s\n\n", r.Source))
	sb.WriteString(fmt.Sprintf("Total employees found: %d\n\n", r.EmployeeCount))

	sb.WriteString(st.section.Render("=== MANAGERS EARNING LESS THAN THEY SHOULD ===") + "\n")
	if len(r.Underpaid) == 0 {
		sb.WriteString(st.ok.Render("No underpaid managers found.") + "\n")
	}
	for _, issue := range r.Underpaid {
		sb.WriteString(fmt.Sprintf("%s (ID: %d) earns %s less than they should\n",
			st.name.Render(issue.Manager.FullName()), issue.Manager.ID(), st.under.Render(t.money(issue.Amount))))
		sb.WriteString(st.detail.Render(fmt.Sprintf("  Current salary: %s, Should earn at least: %s",
			t.money(issue.Manager.Salary()), t.money(issue.ExpectedSalary()))) + "\n")
		sb.WriteString(st.detail.Render(fmt.Sprintf("  Based on %d direct subordinates with average salary: %s",
			issue.DirectReportCount, t.money(issue.AverageReportSalary))) + "\n\n")
	}
	sb.WriteString("\n")

	sb.WriteString(st.section.Render("=== MANAGERS EARNING MORE THAN THEY SHOULD ===") + "\n")
	if len(r.Overpaid) == 0 {
		sb.WriteString(st.ok.Render("No overpaid managers found.") + "\n")
	}
	for _, issue := range r.Overpaid {
		sb.WriteString(fmt.Sprintf("%s (ID: %d) earns %s more than they should\n",
			st.name.Render(issue.Manager.FullName()), issue.Manager.ID(), st.over.Render(t.money(issue.Amount))))
		sb.WriteString(st.detail.Render(fmt.Sprintf("  Current salary: %s, Should earn at most: %s",
			t.money(issue.Manager.Salary()), t.money(issue.ExpectedSalary()))) + "\n")
		sb.WriteString(st.detail.Render(fmt.Sprintf("  Based on %d direct subordinates with average salary: %s",
			issue.DirectReportCount, t.money(issue.AverageReportSalary))) + "\n\n")
	}
	sb.WriteString("\n")

	sb.WriteString(st.section.Render("=== EMPLOYEES WITH TOO LONG REPORTING LINES ===") + "\n")
	switch {
	case r.LinesErr != nil:
		sb.WriteString(st.failure.Render("Reporting line analysis failed: "+r.LinesErr.Error()) + "\n")
	case len(r.LongLines) == 0:
		sb.WriteString(st.ok.Render("No employees with excessively long reporting lines found.") + "\n")
	}
	for _, issue := range r.LongLines {
		sb.WriteString(fmt.Sprintf("%s (ID: %d) has reporting line that is too long\n",
			st.name.Render(issue.Employee.FullName()), issue.Employee.ID()))
		sb.WriteString(st.detail.Render(fmt.Sprintf("  Current managers above them: %d, Excess: %d (maximum allowed: %d)",
			issue.ManagerCount, issue.Excess, r.Thresholds.MaxReportingDepth)) + "\n\n")
	}
	sb.WriteString("\n")

	if r.LinesErr != nil {
		sb.WriteString(st.failure.Render("=== ANALYSIS INCOMPLETE ===") + "\n")
	} else {
		sb.WriteString(st.complete.Render("=== ANALYSIS COMPLETE ===") + "\n")
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func (t *TextRenderer) money(v float64) string {
	return fmt.Sprintf("%s%.2f", t.opts.Currency, v)
}
