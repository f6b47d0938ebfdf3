package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"codeberg.org/snonux/wordlens/internal/remote"
)

// ModelSource is implemented by remote.Client.
type ModelSource interface {
	ListModels(ctx context.Context, credential string) ([]remote.ModelInfo, error)
}

// Lister handles listing available Gemini models
type Lister struct {
	source ModelSource
	apiKey string
}

// NewLister creates a new model lister
func NewLister(source ModelSource, apiKey string) *Lister {
	return &Lister{source: source, apiKey: apiKey}
}

// GenerateModels returns the models supporting generateContent, sorted by
// their short name.
func (l *Lister) GenerateModels(ctx context.Context) ([]remote.ModelInfo, error) {
	if l.apiKey == "" {
		return nil, fmt.Errorf("Gemini API key not found. Run 'wordlens key set' or set GEMINI_API_KEY")
	}

	all, err := l.source.ListModels(ctx, l.apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	var models []remote.ModelInfo
	for _, m := range all {
		if m.SupportsGenerate() {
			models = append(models, m)
		}
	}
	sort.Slice(models, func(i, j int) bool {
		return ShortName(models[i].Name) < ShortName(models[j].Name)
	})
	return models, nil
}

// ListAvailableModels prints the generation models to w, marking current.
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer, current string) error {
	models, err := l.GenerateModels(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Available Gemini Models (generateContent):")
	if len(models) == 0 {
		fmt.Fprintln(w, "  No generation models found")
		return nil
	}

	for _, m := range models {
		name := ShortName(m.Name)
		marker := " "
		if name == current {
			marker = "*"
		}
		if m.DisplayName != "" {
			fmt.Fprintf(w, "%s %s (%s)\n", marker, name, m.DisplayName)
		} else {
			fmt.Fprintf(w, "%s %s\n", marker, name)
		}
	}
	return nil
}

// ShortName strips the "models/" prefix the API puts on model names.
func ShortName(name string) string {
	return strings.TrimPrefix(name, "models/")
}
