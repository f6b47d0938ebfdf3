// Package reading annotates Japanese text with katakana readings using the
// kagome morphological analyzer and its IPA dictionary.
package reading

import (
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Token is one morpheme of the analyzed text.
type Token struct {
	Surface      string `json:"surface" yaml:"surface"`
	Reading      string `json:"reading,omitempty" yaml:"reading,omitempty"`
	PartOfSpeech string `json:"pos,omitempty" yaml:"pos,omitempty"`
}

// Annotator splits Japanese text into tokens with readings.
type Annotator struct {
	t *tokenizer.Tokenizer
}

// NewAnnotator loads the IPA dictionary. Loading is slow, so reuse the
// returned value.
func NewAnnotator() (*Annotator, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Annotator{t: t}, nil
}

// Tokens analyzes text. Whitespace tokens are dropped.
func (a *Annotator) Tokens(text string) []Token {
	var result []Token

	for _, token := range a.t.Tokenize(text) {
		if token.Class == tokenizer.DUMMY || strings.TrimSpace(token.Surface) == "" {
			continue
		}

		// IPA features: 0 is the part of speech, 7 the katakana reading.
		features := token.Features()
		tok := Token{Surface: token.Surface}
		if len(features) > 0 {
			tok.PartOfSpeech = features[0]
		}
		if len(features) > 7 && features[7] != "*" {
			tok.Reading = features[7]
		}
		result = append(result, tok)
	}

	return result
}

// Reading returns the katakana reading of text. Tokens without a reading,
// such as punctuation or latin words, are kept as written.
func (a *Annotator) Reading(text string) string {
	var b strings.Builder
	for _, tok := range a.Tokens(text) {
		if tok.Reading != "" {
			b.WriteString(tok.Reading)
		} else {
			b.WriteString(tok.Surface)
		}
	}
	return b.String()
}

// Annotate renders text as "surface(reading)" pairs separated by spaces.
// Tokens whose reading equals their surface carry no parenthesis.
func (a *Annotator) Annotate(text string) string {
	var parts []string
	for _, tok := range a.Tokens(text) {
		if tok.Reading == "" || tok.Reading == tok.Surface {
			parts = append(parts, tok.Surface)
			continue
		}
		parts = append(parts, tok.Surface+"("+tok.Reading+")")
	}
	return strings.Join(parts, " ")
}
