package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/wordlens/internal/gui"
	"codeberg.org/snonux/wordlens/internal/processor"
	"codeberg.org/snonux/wordlens/internal/reading"
	"codeberg.org/snonux/wordlens/internal/remote"
	"codeberg.org/snonux/wordlens/internal/source"
)

// runProcess handles the root command: translate text and list words
func runProcess(cmd *cobra.Command, args []string, flags *Flags) error {
	if err := validateOutput(flags.Output); err != nil {
		return err
	}

	doc, ok, err := resolveInput(cmd, args, flags)
	if err != nil {
		return err
	}

	cfg := LoadConfig()

	if !ok {
		if flags.Word != "" {
			return runDefine(cmd, flags.Word, flags)
		}
		// No input provided - launch GUI mode by default
		return runGUI(cmd, cfg)
	}

	a, err := newApp(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	rep := report{Source: doc.Origin, Title: doc.Title, showWords: true}
	if warning := source.LanguageWarning(doc.Text); warning != "" {
		rep.Warning = warning
		fmt.Fprintln(cmd.ErrOrStderr(), warning)
	}

	rec := processor.NewRecorder()
	proc := processor.NewProcessor(a.translator, a.store, rec, processor.Options{
		WordCount: cfg.WordCount,
		Logger:    a.logger,
	})

	ctx := commandContext(cmd)
	if err := proc.Submit(ctx, doc.Text); err != nil {
		return reportAlerts(cmd, rec.Result(), err)
	}
	if flags.Word != "" {
		if err := proc.SelectWord(ctx, flags.Word); err != nil {
			return err
		}
	}

	rep.Result = rec.Result()
	if flags.Readings && rep.Translation != "" {
		annotator, err := reading.NewAnnotator()
		if err != nil {
			return fmt.Errorf("failed to load Japanese dictionary: %w", err)
		}
		rep.Reading = annotator.Reading(rep.Translation)
		if flags.Output == OutputText {
			rep.annotated = annotator.Annotate(rep.Translation)
		} else {
			rep.Tokens = annotator.Tokens(rep.Translation)
		}
	}

	if err := writeReport(cmd.OutOrStdout(), rep, flags.Output); err != nil {
		return err
	}
	return resultError(rep.Result)
}

// resolveInput picks the text source. ok is false when there is none.
func resolveInput(cmd *cobra.Command, args []string, flags *Flags) (source.Document, bool, error) {
	switch {
	case len(args) > 0:
		return source.FromArgs(args), true, nil
	case flags.File != "":
		doc, err := source.FromFile(flags.File)
		return doc, err == nil, err
	case flags.URL != "":
		doc, err := source.NewFetcher(nil).Fetch(commandContext(cmd), flags.URL)
		return doc, err == nil, err
	}

	in := cmd.InOrStdin()
	if isInteractive(in) {
		return source.Document{}, false, nil
	}
	doc, err := source.FromReader(in, "stdin")
	if err != nil {
		return doc, false, err
	}
	if strings.TrimSpace(doc.Text) == "" && flags.Word != "" {
		return doc, false, nil
	}
	return doc, true, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func isInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// runDefine shows the definition and an example for word
func runDefine(cmd *cobra.Command, word string, flags *Flags) error {
	if err := validateOutput(flags.Output); err != nil {
		return err
	}

	a, err := newApp(LoadConfig(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	rec := processor.NewRecorder()
	proc := processor.NewProcessor(a.translator, a.store, rec, processor.Options{Logger: a.logger})

	if err := proc.SelectWord(commandContext(cmd), word); err != nil {
		return err
	}

	res := rec.Result()
	if res.CredentialMissing {
		return reportAlerts(cmd, res, remote.ErrMissingCredential)
	}
	if err := writeReport(cmd.OutOrStdout(), report{Result: res}, flags.Output); err != nil {
		return err
	}
	return resultError(res)
}

func runGUI(cmd *cobra.Command, cfg Config) error {
	a, err := newApp(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	gui.New(&gui.Config{
		Translator: a.translator,
		Store:      a.store,
		WordCount:  cfg.WordCount,
		LogOutput:  cmd.ErrOrStderr(),
	}).Run()
	return nil
}

// reportAlerts prints what the processor asked to show the user and
// returns err so the process exits non-zero.
func reportAlerts(cmd *cobra.Command, res processor.Result, err error) error {
	for _, alert := range res.Alerts {
		fmt.Fprintln(cmd.ErrOrStderr(), alert)
	}
	if res.CredentialMissing {
		fmt.Fprintln(cmd.ErrOrStderr(), "Run 'wordlens key set' or set GEMINI_API_KEY.")
	}
	return err
}

// errResultFailed marks a run whose output contains an error line
var errResultFailed = errors.New("one or more requests failed")

func resultError(res processor.Result) error {
	if res.Failed() {
		return errResultFailed
	}
	return nil
}
