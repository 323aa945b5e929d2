// ABOUTME: Tests for keyword sentiment analysis
// ABOUTME: Pins score math, label boundaries, and emotion candidate order

package core

import (
	"math"
	"strings"
	"testing"
)

func TestAnalyzeSentimentScores(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantScore float64
		wantLabel string
	}{
		{"neutral text", "the sky is blue", 0, "neutral"},
		{"single positive keyword stays neutral", "great", 0.3, "neutral"},
		{"two positive keywords go positive", "great and awesome", 0.6, "positive"},
		{"exclamation pushes over the line", "this is great!", 0.5, "positive"},
		{"single negative keyword stays neutral", "terrible", -0.3, "neutral"},
		{"two negative keywords go negative", "terrible and awful", -0.6, "negative"},
		{"ellipsis drags score down", "hmm...", -0.1, "neutral"},
		{"emotional keyword nudges up", "i feel something", 0.1, "neutral"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeSentiment(tt.input)
			if math.Abs(got.Score-tt.wantScore) > 1e-9 {
				t.Errorf("Score = %v, want %v", got.Score, tt.wantScore)
			}
			if got.Label != tt.wantLabel {
				t.Errorf("Label = %q, want %q", got.Label, tt.wantLabel)
			}
			if math.Abs(got.Intensity-math.Abs(tt.wantScore)) > 1e-9 {
				t.Errorf("Intensity = %v, want %v", got.Intensity, math.Abs(tt.wantScore))
			}
		})
	}
}

func TestAnalyzeSentimentClampsScore(t *testing.T) {
	got := AnalyzeSentiment("great awesome fantastic amazing wonderful excellent brilliant!")
	if got.Score != 1 {
		t.Errorf("Score = %v, want clamped to 1", got.Score)
	}
	if got.Intensity != 1 {
		t.Errorf("Intensity = %v, want 1", got.Intensity)
	}

	got = AnalyzeSentiment("sad bad terrible awful depressed angry frustrated")
	if got.Score != -1 {
		t.Errorf("Score = %v, want clamped to -1", got.Score)
	}
}

func TestAnalyzeSentimentEmotions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"exclamation wins", "wow! what do you think about all of this today?", "enthusiastic"},
		{"long question is curious", "what do you think about gardens?", "curious"},
		{"short question is not curious", "why is that?", "neutral"},
		{"ellipsis is contemplative", "hmm...", "contemplative"},
		{"emotional keyword is engaged", "i worry about my friend", "engaged"},
		{"long plain text is thoughtful", strings.Repeat("za ", 70), "thoughtful"},
		{"nothing fires", "the sky is blue", "neutral"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeSentiment(tt.input)
			if got.Emotion != tt.want {
				t.Errorf("Emotion = %q, want %q", got.Emotion, tt.want)
			}
		})
	}
}

func TestAnalyzeSentimentPlayful(t *testing.T) {
	if got := AnalyzeSentiment("lol you got me"); !got.IsPlayful {
		t.Error("IsPlayful = false, want true for lol")
	}
	if got := AnalyzeSentiment("is someone behind me right now"); !got.IsPlayful {
		t.Error("IsPlayful = false, want true for behind me")
	}
	if got := AnalyzeSentiment("plain statement"); got.IsPlayful {
		t.Error("IsPlayful = true, want false for plain text")
	}
}

func TestAnalyzeSentimentPunctuationUsesRawText(t *testing.T) {
	// Keyword matching is case-insensitive, punctuation scoring is not
	// affected by the lowering.
	got := AnalyzeSentiment("GREAT!")
	if math.Abs(got.Score-0.5) > 1e-9 {
		t.Errorf("Score = %v, want 0.5", got.Score)
	}
	if got.Label != "positive" {
		t.Errorf("Label = %q, want positive", got.Label)
	}
}
