package service

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"truthscope_backend/internal/verdicts/transport"
)

//go:embed seed_default.yaml
var defaultSeed []byte

// SeedFromFile loads a YAML seed list from disk and applies it.
func (s *Service) SeedFromFile(ctx context.Context, path string) (transport.SeedResponse, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return transport.SeedResponse{}, fmt.Errorf("read seed file: %w", err)
	}
	return s.SeedFromYAML(ctx, data)
}

// SeedDefaults applies the embedded curated list. Used when no external
// seed file is configured so fresh deployments still have domain signals.
func (s *Service) SeedDefaults(ctx context.Context) (transport.SeedResponse, error) {
	return s.SeedFromYAML(ctx, defaultSeed)
}

// SeedFromYAML parses a YAML document and applies it.
func (s *Service) SeedFromYAML(ctx context.Context, data []byte) (transport.SeedResponse, error) {
	var file transport.SeedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return transport.SeedResponse{}, fmt.Errorf("parse seed yaml: %w", err)
	}
	if len(file.Verdicts) == 0 {
		return transport.SeedResponse{}, fmt.Errorf("seed yaml contains no verdicts")
	}
	return s.Seed(ctx, file)
}
