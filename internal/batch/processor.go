package batch

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/schollz/progressbar/v3"
	"gopkg.in/yaml.v3"

	"codeberg.org/snonux/wordlens/internal/credential"
	"codeberg.org/snonux/wordlens/internal/processor"
	"codeberg.org/snonux/wordlens/internal/remote"
	"codeberg.org/snonux/wordlens/internal/source"
	"codeberg.org/snonux/wordlens/internal/translation"
)

// Output formats accepted by Write.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Item is the outcome for one file or word.
type Item struct {
	Source string           `json:"source" yaml:"source"`
	Result processor.Result `json:"result" yaml:"result"`
	Error  string           `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether the item could not be processed or shows an error.
func (i Item) Failed() bool {
	return i.Error != "" || i.Result.Failed()
}

// ExpandPatterns resolves doublestar glob patterns to a sorted list of
// regular files. Duplicates are removed.
func ExpandPatterns(patterns ...string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			info, err := os.Stat(m)
			if err != nil || info.IsDir() {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}

	sort.Strings(files)
	return files, nil
}

// ReadWordList reads words from a file, one per line. Blank lines and lines
// starting with '#' are skipped.
func ReadWordList(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	return words, nil
}

// Runner processes items one after another.
type Runner struct {
	translator *translation.Translator
	keys       credential.Reader
	wordCount  int
	progress   io.Writer
	logger     *slog.Logger
}

// Options tunes a Runner.
type Options struct {
	WordCount int
	// Progress receives the progress bar; nil disables it.
	Progress io.Writer
	Logger   *slog.Logger
}

// NewRunner creates a batch runner.
func NewRunner(translator *translation.Translator, keys credential.Reader, opts Options) *Runner {
	if opts.Progress == nil {
		opts.Progress = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Runner{
		translator: translator,
		keys:       keys,
		wordCount:  opts.WordCount,
		progress:   opts.Progress,
		logger:     opts.Logger,
	}
}

// Files translates every file and ranks its words. A missing credential
// stops the run; other failures are recorded per item.
func (r *Runner) Files(ctx context.Context, paths []string) ([]Item, error) {
	return r.run(ctx, "Translating", paths, func(p *processor.Processor, path string) error {
		doc, err := source.FromFile(path)
		if err != nil {
			return err
		}
		return p.Submit(ctx, doc.Text)
	})
}

// Words fetches a definition and an example for every word.
func (r *Runner) Words(ctx context.Context, words []string) ([]Item, error) {
	key, err := credential.LoadAPIKey(ctx, r.keys)
	if err != nil {
		return nil, err
	}
	if key == "" {
		return nil, remote.ErrMissingCredential
	}

	return r.run(ctx, "Defining", words, func(p *processor.Processor, word string) error {
		return p.SelectWord(ctx, word)
	})
}

func (r *Runner) run(ctx context.Context, label string, inputs []string, process func(*processor.Processor, string) error) ([]Item, error) {
	bar := progressbar.NewOptions(len(inputs),
		progressbar.OptionSetWriter(r.progress),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription(label),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(r.progress)
		}),
	)

	items := make([]Item, 0, len(inputs))
	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return items, err
		}

		rec := processor.NewRecorder()
		p := processor.NewProcessor(r.translator, r.keys, rec, processor.Options{
			WordCount: r.wordCount,
			Logger:    r.logger,
		})

		item := Item{Source: input}
		err := process(p, input)
		item.Result = rec.Result()
		_ = bar.Add(1)

		switch {
		case errors.Is(err, remote.ErrMissingCredential):
			return items, err
		case errors.Is(err, processor.ErrEmptyText):
			item.Error = "empty input"
		case err != nil:
			item.Error = err.Error()
		}
		if item.Failed() {
			r.logger.Warn("batch item failed", "source", input, "error", item.Error)
		}
		items = append(items, item)
	}

	_ = bar.Finish()
	return items, nil
}

// Write encodes items as YAML or JSON.
func Write(w io.Writer, items []Item, format string) error {
	switch format {
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(items); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(items); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// Summary counts failed items.
func Summary(items []Item) (total, failed int) {
	for _, it := range items {
		if it.Failed() {
			failed++
		}
	}
	return len(items), failed
}
