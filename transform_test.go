package editarea

import "testing"

func TestApplyCapitalization(t *testing.T) {
	tests := []struct {
		name   string
		policy CapitalizationPolicy
		in     string
		want   string
	}{
		{"none passes through", CapitalizeNone, "hello. world", "hello. world"},
		{"characters uppercases all", CapitalizeCharacters, "héllo 1a", "HÉLLO 1A"},
		{"words", CapitalizeWords, "hello brave new world", "Hello Brave New World"},
		{"words after newline", CapitalizeWords, "one\ntwo", "One\nTwo"},
		{"words leaves mid-word runes", CapitalizeWords, "mcdonald", "Mcdonald"},
		{"sentences first letter", CapitalizeSentences, "hello there", "Hello there"},
		{"sentences after period", CapitalizeSentences, "one. two. three", "One. Two. Three"},
		{"sentences after bang and question", CapitalizeSentences, "go! now? ok", "Go! Now? Ok"},
		{"sentences after newline", CapitalizeSentences, "one\ntwo", "One\nTwo"},
		{"sentences digit clears pending", CapitalizeSentences, "v2. 3rd item", "V2. 3rd item"},
		{"sentences multiple spaces", CapitalizeSentences, "a.   b", "A.   B"},
		{"empty", CapitalizeSentences, "", ""},
		{"already capitalized", CapitalizeSentences, "Fine. Good", "Fine. Good"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := applyCapitalization(tt.in, tt.policy); got != tt.want {
				t.Errorf("applyCapitalization(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
