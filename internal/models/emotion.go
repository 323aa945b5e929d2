// ABOUTME: Emotional tracking types for sentiment samples and trend summaries
// ABOUTME: Samples are append-only and pruned on the retention window
package models

import "time"

// EmotionalSample is one sentiment observation tied to an input snippet.
type EmotionalSample struct {
	ID              int64     `json:"id"`
	UserID          int       `json:"user_id"`
	Timestamp       time.Time `json:"timestamp"`
	SentimentScore  float64   `json:"sentiment_score"`
	DetectedEmotion string    `json:"detected_emotion"`
	Context         string    `json:"context"`
}

// Sentiment is the result of keyword analysis over one input. Score is
// always within [-1, 1] and Intensity is its absolute value.
type Sentiment struct {
	Score     float64 `json:"score"`
	Label     string  `json:"label"`
	Emotion   string  `json:"emotion"`
	Intensity float64 `json:"intensity"`
	IsPlayful bool    `json:"is_playful"`
}

// EmotionalPattern summarizes the samples inside the tracking window.
type EmotionalPattern struct {
	AvgSentiment    float64 `json:"avg_sentiment"`
	Trend           string  `json:"trend"`
	DominantEmotion string  `json:"dominant_emotion"`
	SampleSize      int     `json:"sample_size"`
}
