// ABOUTME: Tests for the conversation context tracker
// ABOUTME: Covers topic detection, follow-up and refinement checks, and shift resets

package core

import "testing"

func TestTrackerDetectTopic(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		response string
		want     string
	}{
		{"input keyword", "how do python decorators work", "", "Python programming"},
		{"input keyword case insensitive", "Tell me about DOCKER", "", "Docker containers"},
		{"rule order wins", "python or javascript", "", "Python programming"},
		{"code fence in response", "show me", "Here:\n```rust\nfn main() {}\n```", "rust code"},
		{"input beats response fence", "explain the python part", "```go\npackage main\n```", "Python programming"},
		{"nothing matches", "tell me about gardening", "plants are nice", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := NewTracker()
			got := tracker.DetectTopic(tt.input, tt.response)
			if got != tt.want {
				t.Errorf("DetectTopic(%q, %q) = %q, want %q", tt.input, tt.response, got, tt.want)
			}
		})
	}
}

func TestTrackerDetectTopicSideEffects(t *testing.T) {
	tracker := NewTracker()

	tracker.DetectTopic("what about kubernetes", "")
	if tracker.LastMentionedTech != "Kubernetes" {
		t.Errorf("LastMentionedTech = %q, want %q", tracker.LastMentionedTech, "Kubernetes")
	}

	tracker.DetectTopic("show me", "```sql\nSELECT 1;\n```")
	if tracker.LastCodeLanguage != "sql" {
		t.Errorf("LastCodeLanguage = %q, want %q", tracker.LastCodeLanguage, "sql")
	}
}

func TestTrackerDetectFollowUp(t *testing.T) {
	tracker := NewTracker()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"short with reference word", "explain it", true},
		{"short with that", "fix that", true},
		{"explicit phrase in long message", "could you tell me more about how this approach scales", true},
		{"long without reference", "I would like a completely fresh overview of container networking concepts please", false},
		{"unrelated short", "ok cool", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tracker.DetectFollowUp(tt.input); got != tt.want {
				t.Errorf("DetectFollowUp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTrackerDetectRefinement(t *testing.T) {
	tracker := NewTracker()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"short with signal", "make this faster and better", true},
		{"short optimize", "optimize the loop", true},
		{"explicit phrase regardless of length", "I appreciate the effort but honestly I think we need a different approach entirely here", true},
		{"long without phrase", "please walk through every stage of the deployment pipeline from commit to production rollout", false},
		{"plain question", "what time is it", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tracker.DetectRefinement(tt.input); got != tt.want {
				t.Errorf("DetectRefinement(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTrackerSummary(t *testing.T) {
	tracker := NewTracker()

	if got := tracker.Summary(); got != "" {
		t.Errorf("empty tracker Summary() = %q, want empty", got)
	}

	tracker.CurrentTopic = "API development"
	if got, want := tracker.Summary(), "Current topic: API development"; got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}

	tracker.LastCodeLanguage = "go"
	tracker.ConversationDepth = 3
	want := "Current topic: API development | Last code language: go | Deep discussion - maintain consistency"
	if got := tracker.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}

	// Depth of exactly 2 is not yet a deep discussion
	tracker.ConversationDepth = 2
	tracker.LastCodeLanguage = ""
	if got, want := tracker.Summary(), "Current topic: API development"; got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

func TestTrackerUpdateDeepensRepeatedTopic(t *testing.T) {
	tracker := NewTracker()

	tracker.Update("how does sql indexing work", "")
	if tracker.CurrentTopic != "SQL and databases" {
		t.Fatalf("CurrentTopic = %q, want %q", tracker.CurrentTopic, "SQL and databases")
	}
	if tracker.ConversationDepth != 1 {
		t.Fatalf("ConversationDepth = %d, want 1", tracker.ConversationDepth)
	}

	tracker.Update("what about sql joins", "")
	if tracker.ConversationDepth != 2 {
		t.Errorf("ConversationDepth after repeat = %d, want 2", tracker.ConversationDepth)
	}

	tracker.Update("now explain docker networking", "")
	if tracker.CurrentTopic != "Docker containers" {
		t.Errorf("CurrentTopic = %q, want %q", tracker.CurrentTopic, "Docker containers")
	}
	if tracker.ConversationDepth != 1 {
		t.Errorf("ConversationDepth after new topic = %d, want 1", tracker.ConversationDepth)
	}
}

func TestTrackerUpdateShiftResets(t *testing.T) {
	tracker := NewTracker()
	tracker.Update("help with my generator", "```python\nyield\n```")
	if tracker.CurrentTopic != "python code" {
		t.Fatalf("CurrentTopic = %q, want %q before the shift", tracker.CurrentTopic, "python code")
	}
	if tracker.LastCodeLanguage != "python" {
		t.Fatalf("LastCodeLanguage = %q, want %q before the shift", tracker.LastCodeLanguage, "python")
	}

	tracker.Update("anyway, let's talk about something else", "")

	if tracker.CurrentTopic != "" {
		t.Errorf("CurrentTopic = %q, want empty after shift", tracker.CurrentTopic)
	}
	if tracker.LastCodeLanguage != "" {
		t.Errorf("LastCodeLanguage = %q, want empty after shift", tracker.LastCodeLanguage)
	}
	if tracker.ConversationDepth != 0 {
		t.Errorf("ConversationDepth = %d, want 0 after shift", tracker.ConversationDepth)
	}
}

func TestTrackerResetKeepsLastMentionedTech(t *testing.T) {
	tracker := NewTracker()
	tracker.Update("react hooks question", "")

	tracker.Reset()

	if tracker.LastMentionedTech != "React framework" {
		t.Errorf("LastMentionedTech = %q, want %q after reset", tracker.LastMentionedTech, "React framework")
	}
}
