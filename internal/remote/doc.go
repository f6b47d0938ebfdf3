// Package remote talks to generative-language services. The default Client
// speaks the Gemini generateContent REST protocol directly; alternative
// generators wrap the official Gemini SDK and the OpenAI chat API. Every
// generator reports failures with the same error taxonomy so callers can
// render them uniformly.
package remote
