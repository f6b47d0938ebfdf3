package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"codeberg.org/snonux/wordlens/internal/frequency"
	"codeberg.org/snonux/wordlens/internal/processor"
	"codeberg.org/snonux/wordlens/internal/reading"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// report is what a single run prints
type report struct {
	Source  string `json:"source,omitempty" yaml:"source,omitempty"`
	Title   string `json:"title,omitempty" yaml:"title,omitempty"`
	Warning string `json:"warning,omitempty" yaml:"warning,omitempty"`

	processor.Result `yaml:",inline"`

	Reading string          `json:"reading,omitempty" yaml:"reading,omitempty"`
	Tokens  []reading.Token `json:"tokens,omitempty" yaml:"tokens,omitempty"`

	// showWords is false when only word details were requested
	showWords bool
	// annotated is the translation as surface(reading) pairs, text output only
	annotated string
}

func validateOutput(format string) error {
	switch format {
	case OutputText, OutputJSON, OutputYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (use text, json or yaml)", format)
	}
}

func writeReport(w io.Writer, r report, format string) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(r)
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		writeText(w, r)
		return nil
	}
}

func writeText(w io.Writer, r report) {
	if r.Title != "" {
		fmt.Fprintf(w, "%s\n\n", r.Title)
	}

	if r.showWords {
		fmt.Fprintln(w, "Japanese Translation:")
		switch {
		case r.TranslationError != "":
			fmt.Fprintln(w, r.TranslationError)
		default:
			fmt.Fprintln(w, r.Translation)
		}
		if r.Reading != "" {
			fmt.Fprintf(w, "Reading: %s\n", r.Reading)
		}
		if r.annotated != "" {
			fmt.Fprintf(w, "Tokens: %s\n", r.annotated)
		}

		fmt.Fprintln(w)
		fmt.Fprintln(w, "Frequent Words:")
		if len(r.Words) == 0 {
			msg := r.WordsMessage
			if msg == "" {
				msg = frequency.NoWordsMessage
			}
			fmt.Fprintf(w, "  %s\n", msg)
		}
		for _, e := range r.Words {
			fmt.Fprintf(w, "  %s\n", e)
		}
	}

	if r.Word != "" {
		if r.showWords {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "Details for %q:\n", r.Word)
		fmt.Fprintln(w, firstNonEmpty(r.DefinitionError, r.Definition))
		fmt.Fprintln(w, firstNonEmpty(r.ExampleError, r.Example))
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
