package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/wordlens/internal/batch"
	"codeberg.org/snonux/wordlens/internal/credential"
	"codeberg.org/snonux/wordlens/internal/models"
	"codeberg.org/snonux/wordlens/internal/remote"
	"codeberg.org/snonux/wordlens/internal/server"
)

func newDefineCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "define <word>",
		Short: "Show an English definition and an example sentence for a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDefine(cmd, args[0], flags)
		},
	}
}

func newKeyCommand(flags *Flags) *cobra.Command {
	keyCmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the stored API Key",
	}

	setCmd := &cobra.Command{
		Use:   "set [key]",
		Short: "Store the API Key (read from stdin when not given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(LoadConfig(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			raw := ""
			if len(args) == 1 {
				raw = args[0]
			} else {
				if isInteractive(cmd.InOrStdin()) {
					fmt.Fprint(cmd.ErrOrStderr(), "API Key: ")
				}
				scanner := bufio.NewScanner(cmd.InOrStdin())
				if scanner.Scan() {
					raw = scanner.Text()
				}
			}

			if err := credential.SaveAPIKey(commandContext(cmd), a.store, raw); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), credential.SavedMessage)
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show whether an API Key is configured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(LoadConfig(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			key, err := credential.LoadAPIKey(commandContext(cmd), a.store)
			if err != nil {
				return err
			}
			if key == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No API Key set.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "API Key: %s\n", credential.Mask(key))
			return nil
		},
	}

	keyCmd.AddCommand(setCmd, showCmd)
	return keyCmd
}

func newGUICommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Open the popup window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd, LoadConfig())
		},
	}
}

func newServeCommand(flags *Flags) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local HTTP API for the browser extension",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := LoadConfig()
			a, err := newApp(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			logger := newServerLogger(cmd, cfg.Verbose)
			handler := server.NewRouter(server.Config{
				Translator: a.translator,
				Store:      a.store,
				WordCount:  cfg.WordCount,
				Logger:     logger,

				AllowedOrigins: cfg.AllowedOrigins,
			})

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Serve(ctx, cfg.ServerAddr, handler, logger)
		},
	}

	serveCmd.Flags().StringVar(&flags.Addr, "addr", server.DefaultAddr, "Listen address")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	serveCmd.Flags().StringSliceVar(&flags.AllowedOrigins, "allow-origin", nil,
		`Browser origin allowed to call the API, repeatable ("chrome-extension://" admits every Chrome extension)`)
	viper.BindPFlag("server.allowed_origins", serveCmd.Flags().Lookup("allow-origin"))
	return serveCmd
}

func newBatchCommand(flags *Flags) *cobra.Command {
	batchCmd := &cobra.Command{
		Use:   "batch [glob...]",
		Short: "Process many files, or define a list of words",
		Long: `Process every file matched by the glob patterns (doublestar syntax,
e.g. "notes/**/*.txt") or, with --words, define every word listed in a
file. Results are printed as YAML (default) or JSON.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && flags.WordList == "" {
				return errors.New("give glob patterns or --words")
			}

			format := flags.Output
			if format == OutputText {
				format = batch.FormatYAML
			}
			if err := validateOutput(format); err != nil {
				return err
			}

			cfg := LoadConfig()
			a, err := newApp(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()
			a.withBreaker("wordlens-batch")

			runner := batch.NewRunner(a.translator, a.store, batch.Options{
				WordCount: cfg.WordCount,
				Progress:  cmd.ErrOrStderr(),
				Logger:    a.logger,
			})

			ctx := commandContext(cmd)
			var items []batch.Item
			if flags.WordList != "" {
				words, err := batch.ReadWordList(flags.WordList)
				if err != nil {
					return err
				}
				items, err = runner.Words(ctx, words)
				if err != nil {
					return err
				}
			} else {
				paths, err := batch.ExpandPatterns(args...)
				if err != nil {
					return err
				}
				if len(paths) == 0 {
					return errors.New("no files matched")
				}
				items, err = runner.Files(ctx, paths)
				if err != nil {
					return err
				}
			}

			if err := batch.Write(cmd.OutOrStdout(), items, format); err != nil {
				return err
			}

			total, failed := batch.Summary(items)
			fmt.Fprintf(cmd.ErrOrStderr(), "Processed %d items, %d failed\n", total, failed)
			return nil
		},
	}

	batchCmd.Flags().StringVar(&flags.WordList, "words", "", "File with one word per line to define")
	return batchCmd
}

func newModelsCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List Gemini models that can generate text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := LoadConfig()
			if cfg.Provider == remote.ProviderOpenAI {
				return errors.New("model listing is only available for Gemini providers")
			}

			a, err := newApp(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := commandContext(cmd)
			key, err := credential.LoadAPIKey(ctx, a.store)
			if err != nil {
				return err
			}

			client := remote.NewClient(cfg.GeminiBaseURL, cfg.GeminiModel, nil)
			lister := models.NewLister(client, key)
			return lister.ListAvailableModels(ctx, cmd.OutOrStdout(), cfg.GeminiModel)
		},
	}
}
