// Package gui implements the wordlens popup window: paste English text, get
// a Japanese translation and the most frequent words, and click a word to
// see its definition and an example sentence.
package gui
