package search

import (
	"reflect"
	"testing"
)

func TestTokenize_SplitsOnNonAlnumAndLowercases(t *testing.T) {
	got := Tokenize("GIMP Image-Editor_2024!")
	want := []string{"gimp", "image", "editor", "2024"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenize_DropsShortTokens(t *testing.T) {
	got := Tokenize("a vi of go")
	want := []string{"vi", "of", "go"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize() = %v, want %v", got, want)
	}
}

func TestIsBrowseAll(t *testing.T) {
	cases := map[string]bool{
		"":    true,
		" ":   true,
		"s":   true,
		"go":  false,
		" go ": false,
	}
	for in, want := range cases {
		if got := IsBrowseAll(in); got != want {
			t.Errorf("IsBrowseAll(%q) = %v, want %v", in, got, want)
		}
	}
}
