// Package translation builds the prompts for English to Japanese translation
// and for on-demand word details, and sends them through a remote generator.
package translation
