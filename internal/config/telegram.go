package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/mentoria/pkg/log"
)

type TelegramConfig struct {
	Token string `env:"TELEGRAM_TOKEN,required,notEmpty"`
	// Empty means every chat may talk to the bot.
	AllowedIDs []int64 `env:"TELEGRAM_ALLOWED_IDS" envSeparator:","`
}

func NewTelegramConfig(ctx context.Context) *TelegramConfig {
	c := &TelegramConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Telegram config")
	}
	return c
}

func (c TelegramConfig) Allowed(id int64) bool {
	if len(c.AllowedIDs) == 0 {
		return true
	}
	for _, allowed := range c.AllowedIDs {
		if allowed == id {
			return true
		}
	}
	return false
}
