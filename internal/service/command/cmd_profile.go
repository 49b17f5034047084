package command

import (
	"context"
	"fmt"
	"sort"

	"github.com/sandevgo/mentoria/internal/core"
)

type ProfileCommand struct {
	profiles  core.ProfileRepository
	formatter *ResponseFormatter
}

func NewProfileCommand(profiles core.ProfileRepository) *ProfileCommand {
	return &ProfileCommand{profiles: profiles, formatter: NewResponseFormatter()}
}

func (c *ProfileCommand) Name() string {
	return "profile"
}

func (c *ProfileCommand) Description() string {
	return "Mostrar tu perfil docente"
}

func (c *ProfileCommand) Execute(ctx context.Context, session *core.Session, _ []string) (string, error) {
	profile, err := c.profiles.GetProfile(ctx, session.UserID)
	if err != nil {
		return "", err
	}
	if len(profile) == 0 {
		return c.formatter.Combine(
			c.formatter.Info("Perfil"),
			"Todavía no has configurado tu perfil.\n",
			c.formatter.Tip("elige \"Configurar mi perfil\" en el menú de bienvenida"),
		), nil
	}

	fields := make([]string, 0, len(profile))
	for k := range profile {
		fields = append(fields, k)
	}
	sort.Strings(fields)

	sections := []string{c.formatter.Info("Perfil")}
	for _, k := range fields {
		sections = append(sections, c.formatter.Label(k, fmt.Sprint(profile[k])))
	}
	return c.formatter.Combine(sections...), nil
}
