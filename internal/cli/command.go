package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/wordlens/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wordlens [text...]",
		Short: "English to Japanese translation and frequent word finder",
		Long: `wordlens translates English text to Japanese and lists the most
frequent significant words. Pick a word to get an English definition
and an example sentence. All language work is done by the Gemini API.

Examples:
  wordlens                                  # Launch the popup window (default)
  wordlens "The cat sat on the mat."        # Translate text via CLI
  wordlens --file notes.txt --word garden   # Translate a file and define a word
  cat page.txt | wordlens --output json     # Read stdin, print JSON
  wordlens define serendipity               # Definition and example only
  wordlens key set                          # Store the Gemini API Key`,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			InitConfig(flags.CfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, args, flags)
		},
	}

	setupFlags(rootCmd, flags)

	rootCmd.AddCommand(
		newDefineCommand(flags),
		newKeyCommand(flags),
		newGUICommand(flags),
		newServeCommand(flags),
		newBatchCommand(flags),
		newModelsCommand(flags),
	)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.wordlens.yaml)")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "Log debug messages to stderr")
	pf.StringVar(&flags.Provider, "provider", flags.Provider, "Language service: gemini, genai or openai")
	pf.StringVar(&flags.Model, "model", "", "Model name for the selected provider")
	pf.StringVar(&flags.BaseURL, "base-url", "", "Gemini API base URL")
	pf.StringVar(&flags.StoreDriver, "store", flags.StoreDriver, "Credential store: sqlite, bolt or memory")
	pf.StringVar(&flags.StorePath, "store-path", "", "Credential store file (default under ~/.local/state/wordlens)")
	pf.IntVarP(&flags.Count, "count", "n", flags.Count, "Number of frequent words to list")
	pf.StringVarP(&flags.Output, "output", "o", flags.Output, "Output format: text, json or yaml")

	// Local flags
	cmd.Flags().StringVarP(&flags.File, "file", "f", "", "Read text from file")
	cmd.Flags().StringVarP(&flags.URL, "url", "u", "", "Read the article text of a web page")
	cmd.Flags().StringVarP(&flags.Word, "word", "w", "", "Also show definition and example for this word")
	cmd.Flags().BoolVar(&flags.Readings, "readings", false, "Show katakana readings of the translation")

	bindFlagsToViper(pf)
}

func bindFlagsToViper(pf *pflag.FlagSet) {
	viper.BindPFlag("verbose", pf.Lookup("verbose"))
	viper.BindPFlag("provider", pf.Lookup("provider"))
	viper.BindPFlag("model", pf.Lookup("model"))
	viper.BindPFlag("gemini.base_url", pf.Lookup("base-url"))
	viper.BindPFlag("store.driver", pf.Lookup("store"))
	viper.BindPFlag("store.path", pf.Lookup("store-path"))
	viper.BindPFlag("words.count", pf.Lookup("count"))
}
