package installer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// InputStep collects one free-text value. Steps whose skip func reports true
// complete without rendering.
type InputStep struct {
	input    textinput.Model
	title    string
	optional bool
	skip     func(state *InstallState) bool
	apply    func(state *InstallState, value string)
	missing  bool
}

type inputOption func(*InputStep)

func secret() inputOption {
	return func(s *InputStep) {
		s.input.EchoMode = textinput.EchoPassword
		s.input.EchoCharacter = '•'
	}
}

func optional() inputOption {
	return func(s *InputStep) { s.optional = true }
}

func onlyFor(providers ...string) inputOption {
	return func(s *InputStep) {
		s.skip = func(state *InstallState) bool {
			for _, p := range providers {
				if state.Settings.LLMProvider == p {
					return false
				}
			}
			return true
		}
	}
}

func skipWhen(fn func(state *InstallState) bool) inputOption {
	return func(s *InputStep) { s.skip = fn }
}

func NewInputStep(title, placeholder string, apply func(*InstallState, string), opts ...inputOption) Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 50
	ti.Placeholder = placeholder

	s := &InputStep{input: ti, title: title, apply: apply}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InputStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *InputStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.skip != nil && s.skip(state) {
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val := strings.TrimSpace(s.input.Value())
		if val == "" && !s.optional {
			s.missing = true
			return s, cmd
		}
		s.apply(state, val)
		return nil, nil
	}
	return s, cmd
}

func (s *InputStep) View(state *InstallState) string {
	if s.skip != nil && s.skip(state) {
		return ""
	}
	hint := "(enter para confirmar)"
	if s.optional {
		hint = "(opcional, enter para omitir)"
	}
	view := fmt.Sprintf("%s:\n\n%s\n\n%s\n", s.title, s.input.View(), hint)
	if s.missing {
		view += errorStyle.Render("Este valor es obligatorio.") + "\n"
	}
	return view
}
