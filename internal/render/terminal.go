package render

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
)

const (
	defaultWidth = 72
	barWidth     = 30
)

var (
	textColor   = lipgloss.Color("#F8FAFC")
	dimColor    = lipgloss.Color("#94A3B8")
	borderColor = lipgloss.Color("#334155")
	goodColor   = lipgloss.Color("#4CAF50")
	badColor    = lipgloss.Color("#F44336")

	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(textColor)
	bodyStyle    = lipgloss.NewStyle().Foreground(textColor)
	hintStyle    = lipgloss.NewStyle().Foreground(dimColor).Italic(true)
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)
	barEmptyStyle = lipgloss.NewStyle().Background(borderColor)
)

// Terminal draws a View for a character terminal.
type Terminal struct {
	Width int
}

func NewTerminal(width int) *Terminal {
	if width <= 0 {
		width = defaultWidth
	}
	return &Terminal{Width: width}
}

func (t *Terminal) Render(v View) string {
	sections := []string{
		t.banner(v),
		t.findings("Risk Factors", v.RiskFactors, v.RiskMessage, badColor),
		t.findings("Protective Factors", v.ProtectiveFactors, v.ProtectiveMessage, goodColor),
		t.radar(v.Radar),
		t.plan(v),
		t.contacts(v.Contacts),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (t *Terminal) banner(v View) string {
	tier := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color(v.Color)).
		Padding(0, 2).
		Render(v.Banner)
	prob := bodyStyle.Render("Dropout probability: " + v.Probability)
	cgpa := hintStyle.Render(fmt.Sprintf("CGPA %.2f (%s)", v.CGPA, v.CGPAClass))

	return cardStyle.Width(t.Width).Render(lipgloss.JoinVertical(lipgloss.Left, tier, prob, cgpa))
}

func (t *Terminal) findings(title string, items []string, empty string, bullet color.Color) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render(title))
	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString(hintStyle.Render(empty))
		return cardStyle.Width(t.Width).Render(b.String())
	}

	mark := lipgloss.NewStyle().Foreground(bullet).Render("•")
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(mark + " " + bodyStyle.Render(item))
	}
	return cardStyle.Width(t.Width).Render(b.String())
}

func (t *Terminal) radar(r Radar) string {
	rows := []string{sectionStyle.Render(r.Title)}
	for _, p := range r.Points {
		rows = append(rows, scoreBar(string(p.Axis), p.Score, r.Max))
	}
	return cardStyle.Width(t.Width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func scoreBar(label string, score, top int) string {
	filled := 0
	if top > 0 {
		filled = barWidth * score / top
	}
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	fill := goodColor
	switch {
	case score >= 70:
		fill = badColor
	case score >= 40:
		fill = lipgloss.Color("#FF9800")
	}

	bar := lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		barEmptyStyle.Render(strings.Repeat(" ", barWidth-filled))
	return fmt.Sprintf("%-11s %s %3d", label, bar, score)
}

func (t *Terminal) plan(v View) string {
	headline := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(v.Color)).Render(v.Plan.Headline)
	rows := []string{headline, sectionStyle.Render(v.Plan.Section)}
	for i, a := range v.Plan.Actions {
		rows = append(rows, bodyStyle.Render(fmt.Sprintf("%d. %s - %s", i+1, a.Title, a.Detail)))
	}
	rows = append(rows, hintStyle.Render(v.Plan.FollowUpLabel+": "+v.Plan.FollowUp))
	return cardStyle.Width(t.Width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (t *Terminal) contacts(c Contacts) string {
	rows := []string{sectionStyle.Render("Support Contacts")}
	for _, o := range c.Offices {
		rows = append(rows, bodyStyle.Render(fmt.Sprintf("%-20s %s", o.Office, o.Email)))
	}
	rows = append(rows,
		bodyStyle.Render(fmt.Sprintf("%-20s %s", "Crisis Line", c.CrisisLine)),
		bodyStyle.Render(fmt.Sprintf("%-20s %s", "Campus Security", c.CampusSecurity)),
	)
	return cardStyle.Width(t.Width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
