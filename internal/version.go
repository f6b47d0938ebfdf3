package internal

// Version is the wordlens release version.
const Version = "0.3.0"
