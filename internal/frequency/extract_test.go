package frequency

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractFrequentWords(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		count int
		want  []Entry
	}{
		{
			name:  "empty text",
			text:  "",
			count: 10,
			want:  []Entry{},
		},
		{
			name:  "ranking with first-seen tie order",
			text:  "the cat sat on the mat the cat ran",
			count: 10,
			want: []Entry{
				{Word: "cat", Count: 2},
				{Word: "sat", Count: 1},
				{Word: "mat", Count: 1},
				{Word: "ran", Count: 1},
			},
		},
		{
			name:  "only stop words, short and numeric tokens",
			text:  "The and of it is 42 1999 ab x",
			count: 10,
			want:  []Entry{},
		},
		{
			name:  "punctuation and case",
			text:  "Apple! apple? APPLE, banana.",
			count: 10,
			want: []Entry{
				{Word: "apple", Count: 3},
				{Word: "banana", Count: 1},
			},
		},
		{
			name:  "inner apostrophes kept, outer ones dropped",
			text:  "'quoted' isn't dogs' rock'n'roll",
			count: 10,
			want: []Entry{
				{Word: "quoted", Count: 1},
				{Word: "isn't", Count: 1},
				{Word: "dogs", Count: 1},
				{Word: "rock'n'roll", Count: 1},
			},
		},
		{
			name:  "non-ascii letters are stripped",
			text:  "café café naïve",
			count: 10,
			want: []Entry{
				{Word: "caf", Count: 2},
				{Word: "nave", Count: 1},
			},
		},
		{
			name:  "non-ascii digits never form tokens",
			text:  "١٢٣ ١٢٣ ４５６ data",
			count: 10,
			want: []Entry{
				{Word: "data", Count: 1},
			},
		},
		{
			name:  "hyphenated words stay whole",
			text:  "well-known well-known facts",
			count: 10,
			want: []Entry{
				{Word: "well-known", Count: 2},
				{Word: "facts", Count: 1},
			},
		},
		{
			name:  "truncated to count",
			text:  "alpha beta gamma delta alpha",
			count: 2,
			want: []Entry{
				{Word: "alpha", Count: 2},
				{Word: "beta", Count: 1},
			},
		},
		{
			name:  "non-positive count uses default",
			text:  "one1 two2 three3 four4 five5 six6 seven7 eight8 nine9 ten10 eleven11",
			count: 0,
			want: []Entry{
				{Word: "one1", Count: 1},
				{Word: "two2", Count: 1},
				{Word: "three3", Count: 1},
				{Word: "four4", Count: 1},
				{Word: "five5", Count: 1},
				{Word: "six6", Count: 1},
				{Word: "seven7", Count: 1},
				{Word: "eight8", Count: 1},
				{Word: "nine9", Count: 1},
				{Word: "ten10", Count: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractFrequentWords(tt.text, tt.count)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractFrequentWords(%q, %d) = %v, want %v", tt.text, tt.count, got, tt.want)
			}
		})
	}
}

func TestExtractFrequentWords_Properties(t *testing.T) {
	texts := []string{
		"",
		"Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor.",
		strings.Repeat("river stone river water stone river ", 20),
		"It's a well-known fact that the quick brown fox jumps over the lazy dog; the dog sleeps.",
		"123 456 seventy-eight 9 --- '' '",
	}

	for _, text := range texts {
		for _, count := range []int{1, 3, 10} {
			got := ExtractFrequentWords(text, count)

			if len(got) > count {
				t.Errorf("%q: got %d entries, want at most %d", text, len(got), count)
			}

			seen := make(map[string]bool)
			for i, e := range got {
				if e.Count < 1 {
					t.Errorf("%q: entry %v has count < 1", text, e)
				}
				if seen[e.Word] {
					t.Errorf("%q: duplicate word %q", text, e.Word)
				}
				seen[e.Word] = true
				if i > 0 && got[i-1].Count < e.Count {
					t.Errorf("%q: entries not sorted by count: %v", text, got)
				}
			}

			again := ExtractFrequentWords(text, count)
			if !reflect.DeepEqual(got, again) {
				t.Errorf("%q: results differ between runs: %v vs %v", text, got, again)
			}
		}
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("The Hobbit: There and Back Again (1937)")
	want := []string{"hobbit", "back"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestIsStopWord(t *testing.T) {
	for _, w := range []string{"the", "and", "themselves", "don"} {
		if !IsStopWord(w) {
			t.Errorf("IsStopWord(%q) = false, want true", w)
		}
	}
	for _, w := range []string{"cat", "The", ""} {
		if IsStopWord(w) {
			t.Errorf("IsStopWord(%q) = true, want false", w)
		}
	}
}

func TestEntryString(t *testing.T) {
	e := Entry{Word: "cat", Count: 2}
	if e.String() != "cat (2)" {
		t.Errorf("String() = %q, want %q", e.String(), "cat (2)")
	}
}
