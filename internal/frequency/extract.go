package frequency

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultCount is the number of entries returned when no count is given.
const DefaultCount = 10

// NoWordsMessage is shown in place of an empty ranking.
const NoWordsMessage = "No significant words found."

// Entry is one ranked word and how often it occurred.
type Entry struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// String renders the entry the way word lists display it.
func (e Entry) String() string {
	return fmt.Sprintf("%s (%d)", e.Word, e.Count)
}

// ExtractFrequentWords returns at most count entries sorted by count
// descending. Equal counts keep the order in which words were first seen.
// A count below one falls back to DefaultCount.
func ExtractFrequentWords(text string, count int) []Entry {
	if count <= 0 {
		count = DefaultCount
	}

	counts := make(map[string]int)
	var order []string
	for _, token := range Tokenize(text) {
		if _, seen := counts[token]; !seen {
			order = append(order, token)
		}
		counts[token]++
	}

	entries := make([]Entry, 0, len(order))
	for _, word := range order {
		entries = append(entries, Entry{Word: word, Count: counts[word]})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if len(entries) > count {
		entries = entries[:count]
	}
	return entries
}

// Tokenize lowercases text, strips punctuation and returns the tokens that
// survive the length, stop-word and numeric filters, in text order.
func Tokenize(text string) []string {
	fields := strings.Fields(clean(strings.ToLower(text)))

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) <= 2 || IsStopWord(f) || isNumeric(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// clean drops every rune that is not an ASCII word rune, whitespace, hyphen
// or an apostrophe with word runes on both sides. Accented letters and
// non-ASCII digits are dropped like punctuation.
func clean(text string) string {
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))

	for i, r := range runes {
		switch {
		case isWordRune(r), unicode.IsSpace(r), r == '-':
			b.WriteRune(r)
		case r == '\'':
			if i > 0 && i < len(runes)-1 && isWordRune(runes[i-1]) && isWordRune(runes[i+1]) {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// isWordRune matches [A-Za-z0-9_]. Text is lowercased before cleaning.
func isWordRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
