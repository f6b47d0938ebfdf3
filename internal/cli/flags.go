package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile string
	Verbose bool

	// Input flags
	File string
	URL  string
	Word string

	// Output flags
	Count    int
	Output   string
	Readings bool

	// Service flags
	Provider string
	Model    string
	BaseURL  string

	// Credential store flags
	StoreDriver string
	StorePath   string

	// Subcommand flags
	Addr           string
	AllowedOrigins []string
	WordList       string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Count:       10,
		Output:      "text",
		Provider:    "gemini",
		StoreDriver: "sqlite",
	}
}
