// Package credential persists the single API key the application needs.
// Stores are small key/value backends (SQLite, bbolt or memory) behind one
// interface, and the options helpers validate user input before saving.
package credential
