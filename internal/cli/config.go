package cli

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"codeberg.org/snonux/wordlens/internal/credential"
	"codeberg.org/snonux/wordlens/internal/frequency"
	"codeberg.org/snonux/wordlens/internal/remote"
	"codeberg.org/snonux/wordlens/internal/server"
)

// Config is the resolved configuration after flags, environment and the
// config file have been merged by viper.
type Config struct {
	Provider      string
	GeminiBaseURL string
	GeminiModel   string
	OpenAIBaseURL string
	OpenAIModel   string
	StoreDriver   string
	StorePath     string
	WordCount     int
	ServerAddr    string
	Verbose       bool

	// AllowedOrigins restricts which browser origins may call the local API
	AllowedOrigins []string
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".wordlens" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".wordlens")
	}

	// Environment variables
	viper.SetEnvPrefix("WORDLENS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// LoadConfig reads the merged configuration from viper. GeminiBaseURL stays
// empty unless configured, so each provider falls back to its own endpoint.
func LoadConfig() Config {
	cfg := Config{
		Provider:      viper.GetString("provider"),
		GeminiBaseURL: viper.GetString("gemini.base_url"),
		GeminiModel:   viper.GetString("gemini.model"),
		OpenAIBaseURL: viper.GetString("openai.base_url"),
		OpenAIModel:   viper.GetString("openai.model"),
		StoreDriver:   viper.GetString("store.driver"),
		StorePath:     viper.GetString("store.path"),
		WordCount:     viper.GetInt("words.count"),
		ServerAddr:    viper.GetString("server.addr"),
		Verbose:       viper.GetBool("verbose"),
	}
	cfg.AllowedOrigins = viper.GetStringSlice("server.allowed_origins")

	if cfg.Provider == "" {
		cfg.Provider = remote.ProviderGemini
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = remote.DefaultModel
	}
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = remote.DefaultOpenAIModel
	}
	if cfg.StoreDriver == "" {
		cfg.StoreDriver = credential.DriverSQLite
	}
	if cfg.WordCount <= 0 {
		cfg.WordCount = frequency.DefaultCount
	}
	if cfg.ServerAddr == "" {
		cfg.ServerAddr = server.DefaultAddr
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = server.DefaultAllowedOrigins
	}

	// --model overrides the model of whichever provider is active
	if model := viper.GetString("model"); model != "" {
		if cfg.Provider == remote.ProviderOpenAI {
			cfg.OpenAIModel = model
		} else {
			cfg.GeminiModel = model
		}
	}

	return cfg
}

// RemoteConfig returns the generator settings for the active provider
func (c Config) RemoteConfig() remote.Config {
	if c.Provider == remote.ProviderOpenAI {
		return remote.Config{Provider: c.Provider, BaseURL: c.OpenAIBaseURL, Model: c.OpenAIModel}
	}
	return remote.Config{Provider: c.Provider, BaseURL: c.GeminiBaseURL, Model: c.GeminiModel}
}

// APIKeyEnv names the environment variable that overrides the stored key
func (c Config) APIKeyEnv() string {
	if c.Provider == remote.ProviderOpenAI {
		return "OPENAI_API_KEY"
	}
	return "GEMINI_API_KEY"
}
