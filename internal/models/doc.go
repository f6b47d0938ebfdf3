// Package models lists the Gemini models available to an API key that can
// serve text generation, so users can pick a value for gemini.model.
package models
