// Package frequency ranks the most frequent significant words of an English
// text. Tokens are lowercased, stripped of punctuation, and filtered against
// a fixed stop-word list before counting.
package frequency
