package services

import (
	"testing"

	"github.com/studyloop/studyloop-backend/internal/types"
)

func TestApplyAnswer_AdvancesAfterStreak(t *testing.T) {
	s := &types.StudySession{Difficulty: 1}

	applyAnswer(s, true)
	applyAnswer(s, true)
	if s.Difficulty != 1 {
		t.Fatalf("difficulty moved early: got %d", s.Difficulty)
	}
	applyAnswer(s, true)
	if s.Difficulty != 2 {
		t.Fatalf("expected difficulty 2 after 3-streak, got %d", s.Difficulty)
	}
	if s.CurrentStreak != 0 {
		t.Fatalf("expected streak reset after advance, got %d", s.CurrentStreak)
	}
	if s.CorrectCount != 3 {
		t.Fatalf("expected 3 correct, got %d", s.CorrectCount)
	}
}

func TestApplyAnswer_MissResetsStreak(t *testing.T) {
	s := &types.StudySession{Difficulty: 3}

	applyAnswer(s, true)
	applyAnswer(s, true)
	applyAnswer(s, false)
	if s.CurrentStreak != 0 {
		t.Fatalf("expected streak reset on miss, got %d", s.CurrentStreak)
	}
	if s.Difficulty != 3 {
		t.Fatalf("single miss should not ease difficulty, got %d", s.Difficulty)
	}

	// Second consecutive miss eases by one.
	applyAnswer(s, false)
	if s.Difficulty != 2 {
		t.Fatalf("expected difficulty 2 after 2 misses, got %d", s.Difficulty)
	}
	if s.CurrentMissRun != 0 {
		t.Fatalf("expected miss run reset after easing, got %d", s.CurrentMissRun)
	}
}

func TestApplyAnswer_ClampsAtBounds(t *testing.T) {
	s := &types.StudySession{Difficulty: maxDifficulty}
	for i := 0; i < 6; i++ {
		applyAnswer(s, true)
	}
	if s.Difficulty != maxDifficulty {
		t.Fatalf("difficulty exceeded max: got %d", s.Difficulty)
	}

	s = &types.StudySession{Difficulty: minDifficulty}
	for i := 0; i < 6; i++ {
		applyAnswer(s, false)
	}
	if s.Difficulty != minDifficulty {
		t.Fatalf("difficulty fell below min: got %d", s.Difficulty)
	}
}

func TestApplyAnswer_CorrectClearsMissRun(t *testing.T) {
	s := &types.StudySession{Difficulty: 3}
	applyAnswer(s, false)
	applyAnswer(s, true)
	applyAnswer(s, false)
	if s.Difficulty != 3 {
		t.Fatalf("non-consecutive misses should not ease, got %d", s.Difficulty)
	}
}

func TestEvaluateAnswer(t *testing.T) {
	tests := []struct {
		name     string
		answer   string
		expected string
		want     bool
	}{
		{"exact", "mitochondria", "mitochondria", true},
		{"case and punctuation", "The Mitochondria!", "mitochondria", true},
		{"answer contains expected", "the process of photosynthesis", "photosynthesis", true},
		{"expected contains answer", "photosynthesis", "the process of photosynthesis", true},
		{"wrong", "golgi apparatus", "mitochondria", false},
		{"empty answer", "", "mitochondria", false},
		{"punctuation-only answer", "?!", "mitochondria", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := evaluateAnswer(tt.answer, tt.expected); got != tt.want {
				t.Fatalf("evaluateAnswer(%q, %q) = %v, want %v", tt.answer, tt.expected, got, tt.want)
			}
		})
	}
}

func TestNormalizeAnswer(t *testing.T) {
	got := normalizeAnswer("  The   QUICK, brown fox!  ")
	if got != "the quick brown fox" {
		t.Fatalf("unexpected normalization: %q", got)
	}
}
