package installer

// NewChannelStep selects which chat channels run next to the HTTP API
func NewChannelStep() Step {
	return &ChoiceStep{
		prompt: "¿Qué canales quieres habilitar?",
		choices: []choice{
			{"Solo API HTTP", "http"},
			{"API HTTP + Telegram", "telegram"},
		},
		apply: func(state *InstallState, value string) {
			state.Settings.EnableTelegram = value == "telegram"
		},
	}
}
