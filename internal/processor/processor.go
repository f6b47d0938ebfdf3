package processor

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"codeberg.org/snonux/wordlens/internal/credential"
	"codeberg.org/snonux/wordlens/internal/frequency"
	"codeberg.org/snonux/wordlens/internal/remote"
	"codeberg.org/snonux/wordlens/internal/translation"
)

// Messages shown to the user.
const (
	EmptyTextMessage     = "Please paste some English text."
	MissingKeyMessage    = "Please set your Gemini API Key in the options."
	LoadingDefinition    = "Loading definition..."
	LoadingExample       = "Loading example..."
	errorPrefix          = "Error: "
	definitionFailPrefix = "Error: Could not get definition: "
	exampleFailPrefix    = "Error getting example: "
)

// ErrEmptyText is returned by Submit for blank input.
var ErrEmptyText = errors.New("no text to process")

// Options tunes a Processor.
type Options struct {
	// WordCount is the number of ranked words, frequency.DefaultCount if zero.
	WordCount int
	Logger    *slog.Logger
}

// Processor handles the text and word-detail flows
type Processor struct {
	translator *translation.Translator
	keys       credential.Reader
	sink       Sink
	wordCount  int
	logger     *slog.Logger

	mu           sync.Mutex
	active       int
	submitSeq    uint64
	submitCancel context.CancelFunc
	detailSeq    uint64
	detailCancel context.CancelFunc
}

// NewProcessor creates a new processor rendering to sink
func NewProcessor(translator *translation.Translator, keys credential.Reader, sink Sink, opts Options) *Processor {
	if opts.WordCount <= 0 {
		opts.WordCount = frequency.DefaultCount
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Processor{
		translator: translator,
		keys:       keys,
		sink:       sink,
		wordCount:  opts.WordCount,
		logger:     opts.Logger,
	}
}

// Submit translates text and ranks its frequent words. The translation runs
// in the background while the ranking is computed; loading stays on until
// both are done. A newer Submit replaces a running one: the older translation
// is cancelled and nothing it produces is rendered. Translation failures are
// rendered, not returned. Submit returns an error only when the flow could
// not start or was replaced.
func (p *Processor) Submit(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		p.sink.Alert(EmptyTextMessage)
		return ErrEmptyText
	}

	key, err := credential.LoadAPIKey(ctx, p.keys)
	if err != nil {
		p.sink.Alert(errorPrefix + err.Error())
		return err
	}
	if key == "" {
		p.sink.SetCredentialNotice(true)
		p.sink.Alert(MissingKeyMessage)
		return remote.ErrMissingCredential
	}

	p.cancelDetail()
	ctx, seq := p.beginSubmit(ctx)
	defer p.endSubmit(seq)

	p.startLoading()
	defer p.stopLoading()
	p.renderSubmit(seq, func() {
		p.sink.SetCredentialNotice(false)
		p.sink.Clear()
	})

	done := make(chan bool, 1)
	go func() {
		done <- p.translate(ctx, seq, text, key)
	}()

	words := frequency.ExtractFrequentWords(text, p.wordCount)
	p.renderSubmit(seq, func() {
		if len(words) == 0 {
			p.sink.Show(RegionWords, frequency.NoWordsMessage)
		} else {
			p.sink.ShowWords(words)
		}
	})
	p.logger.Debug("frequent words ranked", "words", len(words), "chars", len(text))

	if !<-done {
		return context.Canceled
	}
	return nil
}

// translate renders the translation of text unless a newer Submit has
// started. It reports whether the result was rendered.
func (p *Processor) translate(ctx context.Context, seq uint64, text, key string) bool {
	start := time.Now()
	translated, err := p.translator.Translate(ctx, text, key)
	return p.renderSubmit(seq, func() {
		if err != nil {
			p.logger.Warn("translation failed", "error", err)
			p.noteMissingKey(err)
			p.sink.ShowError(RegionTranslation, errorPrefix+err.Error())
			return
		}
		p.logger.Debug("translation complete", "duration", time.Since(start))
		p.sink.Show(RegionTranslation, translated)
	})
}

// SelectWord fetches the definition and then an example sentence for word.
// The example is requested even when the definition fails. Selecting another
// word while a request is running cancels the older one, and its results are
// discarded.
func (p *Processor) SelectWord(ctx context.Context, word string) error {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil
	}

	ctx, seq := p.beginDetail(ctx)
	defer p.endDetail(seq)

	key, err := credential.LoadAPIKey(ctx, p.keys)
	if err != nil {
		p.sink.Alert(errorPrefix + err.Error())
		return err
	}

	p.startLoading()
	defer p.stopLoading()
	p.render(seq, func() {
		p.sink.ShowWordDetail(word)
		p.sink.Show(RegionDefinition, LoadingDefinition)
		p.sink.Show(RegionExample, LoadingExample)
	})

	definition, err := p.translator.Define(ctx, word, key)
	if !p.render(seq, func() {
		if err != nil {
			p.logger.Warn("definition failed", "word", word, "error", err)
			p.noteMissingKey(err)
			p.sink.ShowError(RegionDefinition, definitionFailPrefix+err.Error())
			return
		}
		p.sink.Show(RegionDefinition, "Definition: "+definition)
	}) {
		return context.Canceled
	}

	example, err := p.translator.Example(ctx, word, key)
	if !p.render(seq, func() {
		if err != nil {
			p.logger.Warn("example failed", "word", word, "error", err)
			p.noteMissingKey(err)
			p.sink.ShowError(RegionExample, exampleFailPrefix+err.Error())
			return
		}
		p.sink.Show(RegionExample, "Example: "+example)
	}) {
		return context.Canceled
	}
	return nil
}

func (p *Processor) noteMissingKey(err error) {
	if errors.Is(err, remote.ErrMissingCredential) {
		p.sink.SetCredentialNotice(true)
	}
}

// startLoading and stopLoading bracket every running flow. Loading is shown
// while at least one flow is running.
func (p *Processor) startLoading() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.active++
	if p.active == 1 {
		p.sink.SetLoading(true)
	}
}

func (p *Processor) stopLoading() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.active--
	if p.active == 0 {
		p.sink.SetLoading(false)
	}
}

// beginSubmit cancels any running Submit and starts a new one.
func (p *Processor) beginSubmit(ctx context.Context) (context.Context, uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.submitCancel != nil {
		p.submitCancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	p.submitSeq++
	p.submitCancel = cancel
	return ctx, p.submitSeq
}

func (p *Processor) endSubmit(seq uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.submitSeq == seq && p.submitCancel != nil {
		p.submitCancel()
		p.submitCancel = nil
	}
}

// renderSubmit runs fn only while seq is the newest Submit.
func (p *Processor) renderSubmit(seq uint64, fn func()) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.submitSeq != seq {
		return false
	}
	fn()
	return true
}

// beginDetail cancels any running detail request and starts a new one.
func (p *Processor) beginDetail(ctx context.Context) (context.Context, uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.detailCancel != nil {
		p.detailCancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	p.detailSeq++
	p.detailCancel = cancel
	return ctx, p.detailSeq
}

func (p *Processor) endDetail(seq uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.detailSeq == seq && p.detailCancel != nil {
		p.detailCancel()
		p.detailCancel = nil
	}
}

func (p *Processor) cancelDetail() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.detailCancel != nil {
		p.detailCancel()
		p.detailCancel = nil
	}
	p.detailSeq++
}

// render runs fn only while seq is the newest detail request. It reports
// whether fn ran.
func (p *Processor) render(seq uint64, fn func()) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.detailSeq != seq {
		return false
	}
	fn()
	return true
}

