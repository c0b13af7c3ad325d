// Package models defines the domain types for Ansuz.
package models

// Template is a persisted, user-editable, reusable message body with metadata.
// The body may contain zero or more {{token}} placeholders that are replaced
// at render time; rendering never mutates the template itself.
type Template struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Body     string   `json:"body"`
}

// Tone is a fixed closing-style variant applied to generated or rendered text.
// Any unrecognized value falls back to the formal closing.
type Tone string

// Known tones.
const (
	ToneFormal     Tone = "formal"
	ToneFriendly   Tone = "friendly"
	ToneApologetic Tone = "apologetic"
	ToneProactive  Tone = "proactive"
)

// IssueType is the classifier's output category, used to pick a base reply
// paragraph.
type IssueType string

// Issue categories. IssueUnknown is returned only for empty input;
// IssueGeneral is the catch-all for non-empty text matching no keyword set.
const (
	IssueLogin       IssueType = "login"
	IssuePassword    IssueType = "password"
	IssueBilling     IssueType = "billing"
	IssuePerformance IssueType = "performance"
	IssueError       IssueType = "error"
	IssueGeneral     IssueType = "general"
	IssueUnknown     IssueType = "unknown"
)
