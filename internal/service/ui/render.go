// Package ui renders engine responses for the chat transports.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sandevgo/mentoria/internal/core"
	"github.com/sandevgo/mentoria/internal/service/agent"
)

// Choice is one selectable answer offered by a response. Picking it sends
// Field=Value back as structured input.
type Choice struct {
	Group string
	Label string
	Field string
	Value string
}

func (c Choice) Input() core.FieldInput {
	return core.FieldInput{Field: c.Field, Value: c.Value}
}

// Choices lists the selectable answers of a welcome or buttons response in
// display order.
func Choices(resp core.Response) []Choice {
	switch d := resp.Data.(type) {
	case core.WelcomeData:
		out := make([]Choice, 0, len(d.Options))
		for _, o := range d.Options {
			out = append(out, Choice{Label: o.Label, Field: agent.FieldMenuOption, Value: o.Value})
		}
		return out
	case core.ButtonsData:
		var out []Choice
		for _, q := range d.Questions {
			for _, o := range q.Options {
				out = append(out, Choice{Group: q.QuestionText, Label: o.Label, Field: q.FieldName, Value: o.Value})
			}
		}
		return out
	}
	return nil
}

// Markdown renders the response body without its choices.
func Markdown(resp core.Response) string {
	switch d := resp.Data.(type) {
	case core.WelcomeData:
		return d.Message
	case core.ButtonsData:
		return d.Message
	case core.TextInputData:
		return d.Message
	case core.TextData:
		return d.Text
	case core.CardsData:
		var b strings.Builder
		b.WriteString(d.IntroText)
		b.WriteString("\n")
		for _, c := range d.ContentCards {
			b.WriteString("\n")
			b.WriteString(cardMarkdown(c))
		}
		return b.String()
	}
	return resp.Summary()
}

func cardMarkdown(c core.ContentCard) string {
	title := "**" + c.Title + "**"
	if c.URL != "" {
		title = fmt.Sprintf("[%s](%s)", c.Title, c.URL)
	}
	line := fmt.Sprintf("📄 %s _%s_\n%s\n", title, c.ContentType, c.Description)
	if len(c.Tags) > 0 {
		line += "🏷 " + strings.Join(c.Tags, ", ") + "\n"
	}
	return line
}

// Terminal renders the response for an interactive terminal. Choices are
// numbered from 1 in the order returned by Choices.
func Terminal(resp core.Response) string {
	var b strings.Builder

	switch d := resp.Data.(type) {
	case core.CardsData:
		b.WriteString(AgentStyle.Render(d.IntroText) + "\n")
		for _, c := range d.ContentCards {
			b.WriteString(CardStyle.Render(cardTerminal(c)) + "\n")
		}
	default:
		b.WriteString(AgentStyle.Render(Markdown(resp)) + "\n")
	}

	group := ""
	for i, c := range Choices(resp) {
		if c.Group != "" && c.Group != group {
			group = c.Group
			b.WriteString("\n" + TitleStyle.UnsetMarginBottom().Render(group) + "\n")
		}
		b.WriteString(ChoiceStyle.Render(fmt.Sprintf("  %d) %s", i+1, c.Label)) + "\n")
	}

	if d, ok := resp.Data.(core.TextInputData); ok && d.Placeholder != "" {
		b.WriteString(DescStyle.Render(d.Placeholder) + "\n")
	}
	return b.String()
}

func cardTerminal(c core.ContentCard) string {
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(c.Title) + " " + DescStyle.Render("("+c.ContentType+")"),
		c.Description,
	}
	if c.URL != "" {
		lines = append(lines, UsageStyle.Render(c.URL))
	}
	if len(c.Tags) > 0 {
		lines = append(lines, FlagStyle.Render(strings.Join(c.Tags, " · ")))
	}
	return strings.Join(lines, "\n")
}
