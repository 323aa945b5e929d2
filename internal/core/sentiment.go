// ABOUTME: Fast local sentiment analysis over keyword lexicons
// ABOUTME: Total function: any input maps to a score, label, and emotion
package core

import (
	"math"
	"strings"

	"github.com/harper/duality/internal/config"
	"github.com/harper/duality/internal/models"
)

// AnalyzeSentiment scores the text against the positive/negative lexicons
// and punctuation signals. The score always lands in [-1, 1]. The emotion is
// the first candidate triggered, in this order: enthusiastic, curious,
// contemplative, engaged, thoughtful. Candidate order is part of the
// contract; tests pin it.
func AnalyzeSentiment(text string) models.Sentiment {
	textLower := strings.ToLower(text)

	var posCount, negCount, emoCount int
	for _, kw := range config.PositiveKeywords {
		if strings.Contains(textLower, kw) {
			posCount++
		}
	}
	for _, kw := range config.NegativeKeywords {
		if strings.Contains(textLower, kw) {
			negCount++
		}
	}
	for _, kw := range config.EmotionalKeywords {
		if strings.Contains(textLower, kw) {
			emoCount++
		}
	}

	score := float64(posCount)*0.3 - float64(negCount)*0.3

	var emotions []string
	if strings.Contains(text, "!") {
		score += 0.2
		emotions = append(emotions, "enthusiastic")
	}
	if strings.Contains(text, "?") && len(text) > 30 {
		emotions = append(emotions, "curious")
	}
	if strings.Contains(text, "...") {
		score -= 0.1
		emotions = append(emotions, "contemplative")
	}
	if emoCount > 0 {
		score += 0.1
		emotions = append(emotions, "engaged")
	}
	if len(text) > 200 {
		emotions = append(emotions, "thoughtful")
	}

	score = math.Max(math.Min(score, 1), -1)

	label := "neutral"
	if score > 0.3 {
		label = "positive"
	} else if score < -0.3 {
		label = "negative"
	}

	emotion := "neutral"
	if len(emotions) > 0 {
		emotion = emotions[0]
	}

	isPlayful := false
	for _, sig := range config.PlayfulSignals {
		if strings.Contains(textLower, sig) {
			isPlayful = true
			break
		}
	}

	return models.Sentiment{
		Score:     score,
		Label:     label,
		Emotion:   emotion,
		Intensity: math.Abs(score),
		IsPlayful: isPlayful,
	}
}
