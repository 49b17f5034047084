package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type choice struct {
	label string
	value string
}

// ChoiceStep picks one value from a fixed list.
type ChoiceStep struct {
	prompt  string
	choices []choice
	cursor  int
	apply   func(state *InstallState, value string)
}

// NewProviderStep selects the plan provider backend
func NewProviderStep() Step {
	return &ChoiceStep{
		prompt: "Selecciona el proveedor de IA:",
		choices: []choice{
			{"Google Gemini", "gemini"},
			{"OpenAI", "openai"},
			{"OpenRouter", "openrouter"},
			{"Ollama", "ollama"},
			{"OpenAI compatible (URL propia)", "custom"},
		},
		apply: func(state *InstallState, value string) {
			state.Settings.LLMProvider = value
		},
	}
}

func (s *ChoiceStep) Init() tea.Cmd {
	return nil
}

func (s *ChoiceStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.choices)-1 {
				s.cursor++
			}
		case "enter":
			s.apply(state, s.choices[s.cursor].value)
			return nil, nil
		}
	}
	return s, nil
}

func (s *ChoiceStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString(s.prompt + "\n\n")
	for i, c := range s.choices {
		if s.cursor == i {
			b.WriteString(selStyle.Render(fmt.Sprintf("❯ %s", c.label)) + "\n")
		} else {
			b.WriteString(itemStyle.Render(fmt.Sprintf("  %s", c.label)) + "\n")
		}
	}
	b.WriteString("\n(ctrl+c para salir)\n")
	return b.String()
}
