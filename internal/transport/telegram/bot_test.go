package telegram

import (
	"strings"
	"testing"

	"github.com/sandevgo/mentoria/internal/core"
	"github.com/sandevgo/mentoria/internal/service/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyboard(t *testing.T) {
	t.Parallel()

	choices := []ui.Choice{
		{Label: "📚 Planeaciones", Field: "menu_option", Value: "planeaciones"},
		{Label: "5to Grado", Field: "grado", Value: "quinto"},
		{Label: "Demasiado largo", Field: "campo", Value: strings.Repeat("x", 80)},
	}

	markup := keyboard(choices)
	require.NotNil(t, markup)
	require.Len(t, markup.InlineKeyboard, 2)

	first := markup.InlineKeyboard[0][0]
	assert.Equal(t, "📚 Planeaciones", first.Text)
	assert.Equal(t, choiceUnique, first.Unique)
	assert.Equal(t, "menu_option|planeaciones", first.Data)

	assert.Nil(t, keyboard(nil))
}

func TestParseChoice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		want    core.FieldInput
		wantErr bool
	}{
		{name: "menu", data: "menu_option|meds", want: core.FieldInput{Field: "menu_option", Value: "meds"}},
		{name: "value with separator", data: "materia|a|b", want: core.FieldInput{Field: "materia", Value: "a|b"}},
		{name: "empty value", data: "grado|", want: core.FieldInput{Field: "grado", Value: ""}},
		{name: "no separator", data: "grado", wantErr: true},
		{name: "no field", data: "|x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseChoice(tt.data)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUserKey(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "telegram-42", userKey(42))
}
