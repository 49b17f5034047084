package ui

import (
	"testing"

	"github.com/sandevgo/mentoria/internal/core"
	"github.com/sandevgo/mentoria/internal/service/agent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChoices(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		resp core.Response
		want []Choice
	}{
		{
			name: "welcome menu",
			resp: core.Response{Kind: core.KindWelcome, Data: core.WelcomeData{Options: []core.MenuOption{
				{Label: "📚 Planeaciones", Value: "planeaciones"},
				{Label: "⚙️ Perfil", Value: "perfil"},
			}}},
			want: []Choice{
				{Label: "📚 Planeaciones", Field: agent.FieldMenuOption, Value: "planeaciones"},
				{Label: "⚙️ Perfil", Field: agent.FieldMenuOption, Value: "perfil"},
			},
		},
		{
			name: "profile questions",
			resp: core.Response{Kind: core.KindButtons, Data: core.ButtonsData{Questions: []core.Question{
				{FieldName: "nivel", QuestionText: "¿Nivel?", Options: []core.Option{{Label: "Primaria", Value: "primaria"}}},
				{FieldName: "grado", QuestionText: "¿Grado?", Options: []core.Option{{Label: "5to", Value: "quinto"}, {Label: "6to", Value: "sexto"}}},
			}}},
			want: []Choice{
				{Group: "¿Nivel?", Label: "Primaria", Field: "nivel", Value: "primaria"},
				{Group: "¿Grado?", Label: "5to", Field: "grado", Value: "quinto"},
				{Group: "¿Grado?", Label: "6to", Field: "grado", Value: "sexto"},
			},
		},
		{name: "text", resp: core.Response{Kind: core.KindText, Data: core.TextData{Text: "hola"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Choices(tt.resp))
		})
	}
}

func TestMarkdown_Cards(t *testing.T) {
	t.Parallel()
	resp := core.Response{Kind: core.KindContentCards, Data: core.CardsData{
		IntroText: "Aquí tienes algunos recursos:",
		ContentCards: []core.ContentCard{
			{Title: "Fracciones", ContentType: "med", Description: "Material", URL: "https://example.org/f", Tags: []string{"matemáticas"}},
			{Title: "Lectura", ContentType: "planeacion", Description: "Sin descripción"},
		},
	}}

	md := Markdown(resp)
	assert.Contains(t, md, "Aquí tienes algunos recursos:")
	assert.Contains(t, md, "[Fracciones](https://example.org/f) _med_")
	assert.Contains(t, md, "🏷 matemáticas")
	assert.Contains(t, md, "**Lectura** _planeacion_")
}

func TestTerminal_NumbersChoices(t *testing.T) {
	t.Parallel()
	resp := core.Response{Kind: core.KindWelcome, Data: core.WelcomeData{
		Message: "¡Bienvenido!",
		Options: []core.MenuOption{{Label: "Uno", Value: "a"}, {Label: "Dos", Value: "b"}},
	}}

	out := Terminal(resp)
	assert.Contains(t, out, "¡Bienvenido!")
	assert.Contains(t, out, "1) Uno")
	assert.Contains(t, out, "2) Dos")

	choices := Choices(resp)
	require.Len(t, choices, 2)
	assert.Equal(t, core.FieldInput{Field: agent.FieldMenuOption, Value: "b"}, choices[1].Input())
}
