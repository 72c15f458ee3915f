package services

import (
	"reflect"
	"testing"
)

func TestAnalyzeTopics_Buckets(t *testing.T) {
	answers := []QuestionAnswer{
		// cells: 1/2 = 50% -> weakest
		{Topic: "cells", Correct: true},
		{Topic: "cells", Correct: false},
		// energy: 3/4 = 75% -> neither bucket
		{Topic: "energy", Correct: true},
		{Topic: "energy", Correct: true},
		{Topic: "energy", Correct: true},
		{Topic: "energy", Correct: false},
		// genetics: 4/5 = 80% -> strongest
		{Topic: "genetics", Correct: true},
		{Topic: "genetics", Correct: true},
		{Topic: "genetics", Correct: true},
		{Topic: "genetics", Correct: true},
		{Topic: "genetics", Correct: false},
	}

	breakdown, weakest, strongest := AnalyzeTopics(answers)

	if got := breakdown["cells"].Percent; got != 50 {
		t.Fatalf("cells percent = %d, want 50", got)
	}
	if got := breakdown["energy"].Percent; got != 75 {
		t.Fatalf("energy percent = %d, want 75", got)
	}
	if got := breakdown["genetics"].Percent; got != 80 {
		t.Fatalf("genetics percent = %d, want 80", got)
	}
	if !reflect.DeepEqual(weakest, []string{"cells"}) {
		t.Fatalf("weakest = %v, want [cells]", weakest)
	}
	if !reflect.DeepEqual(strongest, []string{"genetics"}) {
		t.Fatalf("strongest = %v, want [genetics]", strongest)
	}
}

func TestAnalyzeTopics_EmptyTopicFallsBackToGeneral(t *testing.T) {
	breakdown, weakest, _ := AnalyzeTopics([]QuestionAnswer{
		{Topic: "  ", Correct: false},
		{Topic: "", Correct: true},
	})
	stats, ok := breakdown["general"]
	if !ok {
		t.Fatalf("expected general bucket, got %v", breakdown)
	}
	if stats.Total != 2 || stats.Correct != 1 || stats.Percent != 50 {
		t.Fatalf("unexpected general stats: %+v", stats)
	}
	if !reflect.DeepEqual(weakest, []string{"general"}) {
		t.Fatalf("weakest = %v, want [general]", weakest)
	}
}

func TestAnalyzeTopics_NoAnswers(t *testing.T) {
	breakdown, weakest, strongest := AnalyzeTopics(nil)
	if len(breakdown) != 0 || len(weakest) != 0 || len(strongest) != 0 {
		t.Fatalf("expected empty results, got %v %v %v", breakdown, weakest, strongest)
	}
}

func TestAnalyzeTopics_SortsBuckets(t *testing.T) {
	answers := []QuestionAnswer{
		{Topic: "zebra", Correct: false},
		{Topic: "alpha", Correct: false},
	}
	_, weakest, _ := AnalyzeTopics(answers)
	if !reflect.DeepEqual(weakest, []string{"alpha", "zebra"}) {
		t.Fatalf("weakest not sorted: %v", weakest)
	}
}
