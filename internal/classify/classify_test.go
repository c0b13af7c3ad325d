package classify

import (
	"testing"

	"github.com/starford/ansuz/internal/models"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		summary string
		want    models.IssueType
	}{
		{"empty", "", models.IssueUnknown},
		{"whitespace only", "   ", models.IssueUnknown},
		{"login", "I cannot login to my account", models.IssueLogin},
		{"login apostrophe", "can't sign in since yesterday", models.IssueLogin},
		{"locked", "my account is locked", models.IssueLogin},
		{"password", "please send a reset password link", models.IssuePassword},
		{"billing", "I was charged twice on my invoice", models.IssueBilling},
		{"performance", "the dashboard is very slow", models.IssuePerformance},
		{"error", "I hit an unexpected crash", models.IssueError},
		{"general", "how do I change my avatar?", models.IssueGeneral},
		{"uppercase", "LOGIN BROKEN", models.IssueLogin},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.summary); got != tc.want {
				t.Errorf("Classify(%q) = %q, want %q", tc.summary, got, tc.want)
			}
		})
	}
}

func TestClassify_PriorityOrder(t *testing.T) {
	// Login keywords are checked before billing, so a summary matching both
	// classifies as login.
	got := Classify("I can't sign in and was also charged twice")
	if got != models.IssueLogin {
		t.Errorf("Classify = %q, want %q (login set has priority)", got, models.IssueLogin)
	}
}

func TestClassify_SubstringMatching(t *testing.T) {
	// No word-boundary matching: "password" matches inside "passwordless".
	if got := Classify("thoughts on passwordless auth?"); got != models.IssuePassword {
		t.Errorf("Classify = %q, want %q", got, models.IssuePassword)
	}
	// No negation handling either.
	if got := Classify("the app is not slow at all"); got != models.IssuePerformance {
		t.Errorf("Classify = %q, want %q", got, models.IssuePerformance)
	}
}
