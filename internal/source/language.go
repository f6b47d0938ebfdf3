package source

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// Languages the detector chooses between. English is the expected input;
// the others are what users most often paste by mistake.
var candidateLanguages = []lingua.Language{
	lingua.English,
	lingua.Japanese,
	lingua.German,
	lingua.French,
	lingua.Spanish,
	lingua.Chinese,
}

func languageDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(candidateLanguages...).
			Build()
	})
	return detector
}

// DetectLanguage returns the most likely language of text and whether one
// could be determined.
func DetectLanguage(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	lang, ok := languageDetector().DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return lang.String(), true
}

// LanguageWarning returns a warning for text that is clearly not English,
// or "" otherwise.
func LanguageWarning(text string) string {
	lang, ok := DetectLanguage(text)
	if !ok || lang == lingua.English.String() {
		return ""
	}
	return "Warning: input looks like " + lang + ", not English"
}
