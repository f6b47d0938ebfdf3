package processor

import (
	"sync"

	"codeberg.org/snonux/wordlens/internal/frequency"
)

// Region identifies one display area of a Sink.
type Region int

const (
	RegionTranslation Region = iota
	RegionWords
	RegionDefinition
	RegionExample
)

func (r Region) String() string {
	switch r {
	case RegionTranslation:
		return "translation"
	case RegionWords:
		return "words"
	case RegionDefinition:
		return "definition"
	case RegionExample:
		return "example"
	default:
		return "unknown"
	}
}

// Sink renders processor output. Methods may be called from more than one
// goroutine and must be safe for that.
type Sink interface {
	SetLoading(loading bool)
	SetCredentialNotice(visible bool)
	Alert(message string)
	// Clear empties every region.
	Clear()
	Show(region Region, text string)
	ShowError(region Region, message string)
	ShowWords(entries []frequency.Entry)
	// ShowWordDetail announces the word whose details follow.
	ShowWordDetail(word string)
}

// Result is everything a Recorder has seen.
type Result struct {
	Translation       string            `json:"translation,omitempty" yaml:"translation,omitempty"`
	TranslationError  string            `json:"translation_error,omitempty" yaml:"translation_error,omitempty"`
	Words             []frequency.Entry `json:"words,omitempty" yaml:"words,omitempty"`
	WordsMessage      string            `json:"words_message,omitempty" yaml:"words_message,omitempty"`
	Word              string            `json:"word,omitempty" yaml:"word,omitempty"`
	Definition        string            `json:"definition,omitempty" yaml:"definition,omitempty"`
	DefinitionError   string            `json:"definition_error,omitempty" yaml:"definition_error,omitempty"`
	Example           string            `json:"example,omitempty" yaml:"example,omitempty"`
	ExampleError      string            `json:"example_error,omitempty" yaml:"example_error,omitempty"`
	CredentialMissing bool              `json:"credential_missing,omitempty" yaml:"credential_missing,omitempty"`
	Alerts            []string          `json:"alerts,omitempty" yaml:"alerts,omitempty"`
}

// Failed reports whether any region shows an error.
func (r Result) Failed() bool {
	return r.TranslationError != "" || r.DefinitionError != "" || r.ExampleError != ""
}

// Recorder is a Sink that keeps the latest state of every region.
type Recorder struct {
	mu      sync.Mutex
	result  Result
	loading bool
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Result returns a copy of the recorded state.
func (r *Recorder) Result() Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := r.result
	res.Words = append([]frequency.Entry(nil), r.result.Words...)
	res.Alerts = append([]string(nil), r.result.Alerts...)
	return res
}

// Loading reports the current loading state.
func (r *Recorder) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

func (r *Recorder) SetLoading(loading bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = loading
}

func (r *Recorder) SetCredentialNotice(visible bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result.CredentialMissing = visible
}

func (r *Recorder) Alert(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result.Alerts = append(r.result.Alerts, message)
}

func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result = Result{
		CredentialMissing: r.result.CredentialMissing,
		Alerts:            r.result.Alerts,
	}
}

func (r *Recorder) Show(region Region, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.set(region, text, "")
}

func (r *Recorder) ShowError(region Region, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.set(region, "", message)
}

func (r *Recorder) set(region Region, text, message string) {
	switch region {
	case RegionTranslation:
		r.result.Translation, r.result.TranslationError = text, message
	case RegionWords:
		r.result.Words = nil
		r.result.WordsMessage = text
		if message != "" {
			r.result.WordsMessage = message
		}
	case RegionDefinition:
		r.result.Definition, r.result.DefinitionError = text, message
	case RegionExample:
		r.result.Example, r.result.ExampleError = text, message
	}
}

func (r *Recorder) ShowWords(entries []frequency.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result.Words = append([]frequency.Entry(nil), entries...)
	r.result.WordsMessage = ""
}

func (r *Recorder) ShowWordDetail(word string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result.Word = word
	r.result.Definition, r.result.DefinitionError = "", ""
	r.result.Example, r.result.ExampleError = "", ""
}
