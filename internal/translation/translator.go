package translation

import (
	"context"
	"fmt"

	"codeberg.org/snonux/wordlens/internal/remote"
)

// Translator turns user requests into prompts for a remote generator
type Translator struct {
	gen remote.Generator
}

// NewTranslator creates a new translator instance
func NewTranslator(gen remote.Generator) *Translator {
	return &Translator{gen: gen}
}

// TranslatePrompt returns the prompt asking for a Japanese translation of text
func TranslatePrompt(text string) string {
	return fmt.Sprintf("Translate the following English text to Japanese. Output only the Japanese translation, without any introductory phrases or explanations:\n\n\"%s\"", text)
}

// DefinitionPrompt returns the prompt asking for a short definition of word
func DefinitionPrompt(word string) string {
	return fmt.Sprintf("Provide a concise English definition for the word \"%s\". Output only the definition.", word)
}

// ExamplePrompt returns the prompt asking for an example sentence using word
func ExamplePrompt(word string) string {
	return fmt.Sprintf("Provide one clear English example sentence using the word \"%s\". Output only the sentence.", word)
}

// Translate translates English text to Japanese
func (t *Translator) Translate(ctx context.Context, text, credential string) (string, error) {
	return t.gen.Generate(ctx, TranslatePrompt(text), credential)
}

// Define fetches an English definition of word
func (t *Translator) Define(ctx context.Context, word, credential string) (string, error) {
	return t.gen.Generate(ctx, DefinitionPrompt(word), credential)
}

// Example fetches one English example sentence using word
func (t *Translator) Example(ctx context.Context, word, credential string) (string, error) {
	return t.gen.Generate(ctx, ExamplePrompt(word), credential)
}
