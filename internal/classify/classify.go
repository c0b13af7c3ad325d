// Package classify tags a free-text issue summary with an issue type.
package classify

import (
	"strings"

	"github.com/starford/ansuz/internal/models"
)

// rules are tested in fixed priority order; the first category with any
// matching keyword wins, regardless of how many keywords other categories
// would match.
var rules = []struct {
	issue    models.IssueType
	keywords []string
}{
	{models.IssueLogin, []string{"login", "sign in", "signin", "can't sign", "cannot login", "account locked", "locked"}},
	{models.IssuePassword, []string{"password", "reset password", "forgot password", "change password"}},
	{models.IssueBilling, []string{"billing", "invoice", "charge", "payment", "refund"}},
	{models.IssuePerformance, []string{"performance", "slow", "lag", "timeout"}},
	{models.IssueError, []string{"error", "unexpected", "bug", "crash"}},
}

// Classify returns the issue type for a free-text summary. Matching is plain
// case-insensitive substring containment, so "password" also matches inside
// "passwordless", and negations are not understood ("not slow" still
// classifies as performance). Empty or whitespace-only input yields
// IssueUnknown; non-empty input matching nothing yields IssueGeneral.
func Classify(summary string) models.IssueType {
	s := strings.ToLower(strings.TrimSpace(summary))
	if s == "" {
		return models.IssueUnknown
	}
	for _, r := range rules {
		for _, k := range r.keywords {
			if strings.Contains(s, k) {
				return r.issue
			}
		}
	}
	return models.IssueGeneral
}
