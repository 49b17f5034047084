package installer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandevgo/mentoria/configs"
	"github.com/sandevgo/mentoria/internal/config"
	"github.com/sandevgo/mentoria/pkg/env"
)

// SaveEnvStep writes the collected settings to the runtime .env file
type SaveEnvStep struct {
	err   error
	saved bool
}

func NewSaveEnvStep() Step {
	return &SaveEnvStep{}
}

func (s *SaveEnvStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *SaveEnvStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.saved {
		return nil, nil
	}
	if err := SaveEnv(config.GetRuntimePath(), &state.Settings); err != nil {
		s.err = err
		return s, nil
	}
	s.saved = true
	return nil, nil
}

func (s *SaveEnvStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(ctrl+c para salir)\n"
	}
	return "Guardando configuración...\n"
}

// SaveEnv writes settings to <dir>/.env. An existing file is never replaced.
func SaveEnv(dir string, settings *Settings) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create runtime directory: %w", err)
	}

	envPath := filepath.Join(dir, config.EnvFileName)
	if _, err := os.Stat(envPath); err == nil {
		return fmt.Errorf(".env file already exists at %s", envPath)
	}

	content, err := env.MarshalEnv(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return os.WriteFile(envPath, []byte(content), 0600)
}

// InitializeFilesStep copies the bundled knowledge indices into the runtime directory
type InitializeFilesStep struct {
	err  error
	done bool
}

func NewInitializeFilesStep() Step {
	return &InitializeFilesStep{}
}

func (s *InitializeFilesStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *InitializeFilesStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.done {
		return nil, nil
	}
	if err := InitializeKnowledge(config.GetRuntimePath()); err != nil {
		s.err = err
		return s, nil
	}
	s.done = true
	return nil, nil
}

func (s *InitializeFilesStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(ctrl+c para salir)\n"
	}
	return "Copiando índices de conocimiento...\n"
}

// InitializeKnowledge writes the embedded knowledge files under
// <dir>/knowledge, keeping any file the user already has.
func InitializeKnowledge(dir string) error {
	target := filepath.Join(dir, "knowledge")
	if err := os.MkdirAll(target, 0755); err != nil {
		return fmt.Errorf("failed to create knowledge directory: %w", err)
	}

	entries, err := fs.ReadDir(configs.FS, "knowledge")
	if err != nil {
		return fmt.Errorf("failed to list embedded knowledge: %w", err)
	}

	for _, e := range entries {
		dst := filepath.Join(target, e.Name())
		if _, err := os.Stat(dst); err == nil {
			continue
		}
		data, err := configs.FS.ReadFile("knowledge/" + e.Name())
		if err != nil {
			return fmt.Errorf("failed to read embedded %s: %w", e.Name(), err)
		}
		if err := os.WriteFile(dst, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", dst, err)
		}
	}
	return nil
}
