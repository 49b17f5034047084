package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandevgo/mentoria/internal/core"
	"github.com/sandevgo/mentoria/pkg/log"
	"gopkg.in/yaml.v3"
)

// LoadKnowledge reads the NEM and SEP indices. A missing or unreadable file
// yields an empty index and a warning.
func LoadKnowledge(ctx context.Context, nemPath, sepPath string) core.Knowledge {
	return core.Knowledge{
		NEM: loadIndexOrEmpty(ctx, "nem", nemPath),
		SEP: loadIndexOrEmpty(ctx, "sep", sepPath),
	}
}

func loadIndexOrEmpty(ctx context.Context, name, path string) core.KnowledgeIndex {
	logger := log.FromCtx(ctx)

	index, err := LoadIndex(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn().Str("index", name).Str("path", path).Msg("knowledge file not found, using empty index")
		} else {
			logger.Warn().Err(err).Str("index", name).Str("path", path).Msg("knowledge file unreadable, using empty index")
		}
		return core.KnowledgeIndex{}
	}

	logger.Info().Str("index", name).Int("topics", len(index)).Msg("knowledge index loaded")
	return index
}

// LoadIndex decodes a knowledge file. YAML is chosen by extension, JSON otherwise.
func LoadIndex(path string) (core.KnowledgeIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	index := core.KnowledgeIndex{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &index)
	default:
		err = json.Unmarshal(data, &index)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return index, nil
}
