package services

import (
	"reflect"
	"strings"
	"testing"
)

func TestQueryTerms(t *testing.T) {
	got := queryTerms("How does the Krebs cycle work?")
	want := []string{"does", "krebs", "cycle", "work"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("queryTerms = %v, want %v", got, want)
	}
}

func TestQueryTerms_DropsShortWords(t *testing.T) {
	if got := queryTerms("is it a an of to"); len(got) != 0 {
		t.Fatalf("expected no terms, got %v", got)
	}
}

func TestBestExcerpt(t *testing.T) {
	text := strings.Repeat("filler ", 200) +
		"The Krebs cycle produces ATP inside mitochondria. " +
		strings.Repeat("filler ", 200)

	score, excerpt := bestExcerpt(text, []string{"krebs", "mitochondria"})
	if score == 0 {
		t.Fatalf("expected a match")
	}
	if !strings.Contains(strings.ToLower(excerpt), "krebs") {
		t.Fatalf("excerpt missing matched term: %q", excerpt)
	}
	if len(excerpt) > excerptRadius {
		t.Fatalf("excerpt too long: %d", len(excerpt))
	}
}

func TestBestExcerpt_NoMatch(t *testing.T) {
	score, excerpt := bestExcerpt("completely unrelated text", []string{"mitochondria"})
	if score != 0 || excerpt != "" {
		t.Fatalf("expected no match, got score=%d excerpt=%q", score, excerpt)
	}
}

func TestBestExcerpt_CountsRepeats(t *testing.T) {
	text := "cycle cycle cycle"
	score, _ := bestExcerpt(text, []string{"cycle"})
	if score != 3 {
		t.Fatalf("score = %d, want 3", score)
	}
}
