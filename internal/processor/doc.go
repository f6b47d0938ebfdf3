// Package processor contains the interaction logic behind every surface. It
// reads the API key once per user action, runs the translation and the
// frequent-word ranking for submitted text, fetches word details on demand,
// and reports everything to a Sink. The CLI, the GUI and the HTTP API are
// all Sink implementations.
package processor
