// Package cli provides command-line interface setup and configuration
// for the wordlens application. It handles flag parsing, command
// creation, and configuration management using cobra and viper, and
// wires the processor to the terminal, the popup window and the HTTP API.
package cli
