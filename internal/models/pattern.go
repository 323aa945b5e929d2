// ABOUTME: Pattern labels assigned to a single user input
// ABOUTME: Detection precedence is fixed, first matching rule wins
package models

// Pattern is the discrete classification assigned to one user input.
type Pattern string

const (
	PatternSpam       Pattern = "spam"
	PatternStrict     Pattern = "strict"
	PatternShift      Pattern = "shift"
	PatternRefinement Pattern = "refinement"
	PatternFollowUp   Pattern = "follow_up"
	PatternNormal     Pattern = "normal"
)
