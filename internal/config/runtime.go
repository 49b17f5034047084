package config

import (
	"os"
	"path/filepath"
)

const EnvFileName = ".env"

func GetRuntimePath() string {
	path := os.Getenv("MENTORIA_RUNTIME_PATH")
	if path == "" {
		path = ".mentoria"
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}

func GetEnvPath() string {
	return filepath.Join(GetRuntimePath(), EnvFileName)
}
