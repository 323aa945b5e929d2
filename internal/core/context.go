// ABOUTME: Tracker follows conversation topics and references for natural flow
// ABOUTME: Per-session mutable state: topic, code language, depth, task type
package core

import (
	"strings"

	"github.com/harper/duality/internal/config"
)

// Tracker holds in-session conversational context. One instance per chat
// session, owned by a single caller.
type Tracker struct {
	CurrentTopic      string
	LastCodeLanguage  string
	LastMentionedTech string
	ConversationDepth int
	LastTaskType      string
}

// NewTracker creates an empty Tracker
func NewTracker() *Tracker {
	return &Tracker{}
}

// DetectTopic extracts the main topic from an exchange. Technical keywords in
// the input win over code fences in the response; rule order decides ties.
// Returns empty string when nothing matches.
func (t *Tracker) DetectTopic(userInput, aiResponse string) string {
	inputLower := strings.ToLower(userInput)

	for _, rule := range config.TopicRules {
		if strings.Contains(inputLower, rule.Keyword) {
			t.LastMentionedTech = rule.Topic
			return rule.Topic
		}
	}

	if aiResponse != "" {
		responseLower := strings.ToLower(aiResponse)
		for _, lang := range config.CodeFenceLanguages {
			if strings.Contains(responseLower, "```"+lang) {
				t.LastCodeLanguage = lang
				return lang + " code"
			}
		}
	}

	return ""
}

// DetectFollowUp reports whether the input refers back to the previous topic:
// a short command with a reference word, or an explicit follow-up phrase.
func (t *Tracker) DetectFollowUp(userInput string) bool {
	inputLower := strings.ToLower(strings.TrimSpace(userInput))

	if len(strings.Fields(userInput)) <= 3 {
		for _, word := range config.ReferenceWords {
			if strings.Contains(inputLower, word) {
				return true
			}
		}
	}

	for _, phrase := range config.FollowUpPhrases {
		if strings.Contains(inputLower, phrase) {
			return true
		}
	}

	return false
}

// DetectRefinement reports whether the input asks for iteration on previous
// work: a short request with a refinement signal, or an explicit phrase.
func (t *Tracker) DetectRefinement(userInput string) bool {
	inputLower := strings.ToLower(strings.TrimSpace(userInput))

	if len(strings.Fields(userInput)) < 10 {
		for _, sig := range config.RefinementSignals {
			if strings.Contains(inputLower, sig) {
				return true
			}
		}
	}

	for _, phrase := range config.RefinementPhrases {
		if strings.Contains(inputLower, phrase) {
			return true
		}
	}

	return false
}

// Summary renders the current context for prompt injection. Empty string when
// no topic is being tracked.
func (t *Tracker) Summary() string {
	if t.CurrentTopic == "" {
		return ""
	}

	parts := []string{"Current topic: " + t.CurrentTopic}
	if t.LastCodeLanguage != "" {
		parts = append(parts, "Last code language: "+t.LastCodeLanguage)
	}
	if t.ConversationDepth > 2 {
		parts = append(parts, "Deep discussion - maintain consistency")
	}

	return strings.Join(parts, " | ")
}

// Update advances the tracker after an exchange: repeated topics deepen the
// conversation, new topics restart depth at 1, and a topic-shift signal wipes
// everything.
func (t *Tracker) Update(userInput, aiResponse string) {
	newTopic := t.DetectTopic(userInput, aiResponse)

	if newTopic != "" {
		if newTopic == t.CurrentTopic {
			t.ConversationDepth++
		} else {
			t.CurrentTopic = newTopic
			t.ConversationDepth = 1
		}
	}

	inputLower := strings.ToLower(userInput)
	for _, sig := range config.TopicShiftSignals {
		if strings.Contains(inputLower, sig) {
			t.Reset()
			return
		}
	}
}

// Reset clears tracked context after a topic shift.
func (t *Tracker) Reset() {
	t.CurrentTopic = ""
	t.LastCodeLanguage = ""
	t.ConversationDepth = 0
	t.LastTaskType = ""
}
