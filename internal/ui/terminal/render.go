package terminal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"reliance-drill-service/internal/domain"
)

// renderQuestion renders the question stem, its options and the displayed AI answer.
func renderQuestion(number int, q domain.ParsedQuestion, a domain.DisplayedAnswer, remaining, width int, noColor bool) string {
	lines := []string{
		renderTitle(fmt.Sprintf("Question %d", number), noColor) + "   " +
			stylize(fmt.Sprintf("%ds remaining", remaining), noColor, timerColor(remaining)),
		"",
		wrap(q.Stem, width),
		"",
	}
	lines = append(lines, q.OptionLines()...)
	lines = append(lines,
		"",
		renderTitle("AI answer", noColor),
		wrap(a.Choice, width),
		wrap(a.Explanation, width),
		"",
	)
	return strings.Join(lines, "\n")
}

// RenderReport renders the final report as plain text blocks, colouring each entry by
// its category unless noColor is set.
func RenderReport(report domain.Report, width int, noColor bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total number of questions: %d\n", report.TotalQuestions)
	fmt.Fprintf(&b, "Total number of questions attempted: %d\n", report.QuestionsAttempted)
	fmt.Fprintf(&b, "Total number of reliance drills: %d\n", report.TotalDrills)
	fmt.Fprintf(&b, "Instances of potential over-reliance: %d\n", report.OverRelianceCount)

	writeSection(&b, domain.HarmfulSectionTitle, domain.HarmfulSectionEmpty, report.Harmful, width, noColor)
	writeSection(&b, domain.HelpfulSectionTitle, domain.HelpfulSectionEmpty, report.Helpful, width, noColor)
	return b.String()
}

func writeSection(b *strings.Builder, title, empty string, entries []domain.ReportEntry, width int, noColor bool) {
	b.WriteString("\n")
	b.WriteString(renderTitle(title, noColor))
	b.WriteString("\n")
	if len(entries) == 0 {
		b.WriteString(empty)
		b.WriteString("\n")
		return
	}
	for _, e := range entries {
		b.WriteString(renderEntry(e, width, noColor))
		b.WriteString("\n")
	}
}

func renderEntry(e domain.ReportEntry, width int, noColor bool) string {
	text := strings.Join([]string{
		fmt.Sprintf("Question %d: %s", e.QuestionNumber, e.Question),
		"Displayed Choice: " + e.DisplayedChoice,
		"Displayed Explanation: " + e.DisplayedExplanation,
		"Correct Answer: " + e.CorrectAnswerLine(),
		"User Response: " + e.VerdictLabel,
	}, "\n")
	if noColor {
		return wrap(text, width)
	}
	style := lipgloss.NewStyle().
		Background(lipgloss.Color(e.Color)).
		Foreground(lipgloss.Color("#000000")).
		Padding(0, 1)
	if width > 2 {
		style = style.Width(width - 2)
	}
	return style.Render(text)
}

func renderTitle(text string, noColor bool) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")).Render(text)
}

func renderHelp(text string, noColor bool) string {
	return stylize(text, noColor, lipgloss.Color("242"))
}

func timerColor(remaining int) lipgloss.Color {
	if remaining <= 10 {
		return lipgloss.Color("160")
	}
	return lipgloss.Color("240")
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}
