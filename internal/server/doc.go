// Package server exposes the processor over a small local HTTP API so a
// browser extension popup can use wordlens as its backend.
package server
