package search

import (
	"reflect"
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"lowercases", "NOMINT Nominierung", []string{"nomint", "nominierung"}},
		{"hyphen becomes space", "GAS-X", []string{"gas"}},
		{"strips punctuation", "Nominierung, bitte!", []string{"nominierung", "bitte"}},
		{"drops short tokens", "ab abc de xyz", []string{"abc", "xyz"}},
		{"drops stop words", "die Nominierung für das System", []string{"nominierung", "system"}},
		{"keeps digits and underscore", "as4 step_1", []string{"as4", "step_1"}},
		{"umlauts survive", "Übertragung über Bilanzkreis", []string{"übertragung", "über", "bilanzkreis"}},
		{"only punctuation", "?! ... --", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTokenize_IdempotentUnderRejoin(t *testing.T) {
	texts := []string{
		"Nominierung von GRID nach MIRA über AS4",
		"Fehlermeldung APERAK für die Bilanzierung",
		"zwischen Marktpartner und VHP-Portal",
	}

	for _, text := range texts {
		once := Tokenize(text)
		twice := Tokenize(strings.Join(once, " "))
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("re-tokenizing %q changed tokens: %v vs %v", text, once, twice)
		}
	}
}

func TestLeadingWord(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"grid", "grid"},
		{"grid,", "grid"},
		{"mira?", "mira"},
		{"", ""},
		{"...", ""},
	}
	for _, tt := range tests {
		if got := leadingWord(tt.in); got != tt.want {
			t.Errorf("leadingWord(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
