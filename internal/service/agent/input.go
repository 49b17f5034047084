package agent

import (
	"fmt"
	"strings"

	"github.com/sandevgo/mentoria/internal/core"
)

// resolution is what a turn's raw input means for the rest of the turn.
type resolution struct {
	message        string
	selectedOption string
	updatedFields  map[string]any
	// menuReply is set when the input is answered from the fixed menus alone.
	menuReply *Outcome
}

func resolveInput(req core.TurnRequest, c core.ConversationContext) resolution {
	if len(req.UserData) == 0 {
		return resolution{message: strings.TrimSpace(req.Message)}
	}

	for _, item := range req.UserData {
		if item.Field != FieldMenuOption {
			continue
		}
		return resolveMenu(menuValue(item.Value))
	}

	fields := make(map[string]any, len(req.UserData))
	for _, item := range req.UserData {
		fields[item.Field] = item.Value
	}

	message := c.PendingPrompt
	if message == "" {
		message = resumeFallback
	}
	return resolution{message: message, updatedFields: fields}
}

func resolveMenu(value string) resolution {
	res := resolution{selectedOption: value}

	switch value {
	case OptionProfile:
		res.menuReply = &Outcome{
			Kind: core.KindButtons,
			Data: profileSetupData(),
			Plan: core.ExecutedPlan{Intent: "configurar_perfil", SelectedOption: value},
		}
	case OptionCustom:
		res.menuReply = &Outcome{
			Kind: core.KindTextInput,
			Data: customQueryData(),
			Plan: core.ExecutedPlan{Intent: "consulta_personalizada", SelectedOption: value},
		}
	default:
		res.message = menuMessage(value)
	}
	return res
}

// menuValue reads a menu selection. Menu options are strings; anything
// else is taken by its printed form and falls through to a free selection.
func menuValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// describeInput renders the user's input for the message log.
func describeInput(req core.TurnRequest) string {
	if req.Message != "" || len(req.UserData) == 0 {
		if req.Message == "" {
			return "Mensaje vacío"
		}
		return req.Message
	}

	if len(req.UserData) == 1 && req.UserData[0].Field == FieldMenuOption {
		return "👆 Seleccionó: " + MenuLabel(menuValue(req.UserData[0].Value))
	}

	parts := make([]string, 0, len(req.UserData))
	for _, item := range req.UserData {
		parts = append(parts, fmt.Sprintf("%s=%v", item.Field, item.Value))
	}
	return "📝 Datos: " + strings.Join(parts, ", ")
}
