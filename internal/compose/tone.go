// Package compose turns ticket context into tone-aware reply text: it owns
// the closing blocks appended to rendered previews and the deterministic
// rule-based reply generator.
package compose

import (
	"strings"

	"github.com/starford/ansuz/internal/models"
)

// closing returns the two-part closing block for a tone: a short flavored
// sentence plus a salutation line and the agent name. Unrecognized tones get
// the formal closing.
func closing(tone models.Tone, agentName string) string {
	switch tone {
	case models.ToneFriendly:
		return "\n\nThanks! We’ll get this sorted. \n\nWarm regards,\n" + agentName
	case models.ToneApologetic:
		return "\n\nWe apologize for the inconvenience and appreciate your patience.\n\nKind regards,\n" + agentName
	case models.ToneProactive:
		return "\n\nWe’re already investigating and will follow up with next steps.\n\nBest regards,\n" + agentName
	default:
		return "\n\nBest regards,\n" + agentName
	}
}

// ApplyClosing appends the tone-specific closing to text. If the text
// already ends with the agent name, or already contains "Best regards",
// it is returned unchanged so a template that supplies its own closing is
// never double-signed. The caller's template body is never mutated; only
// the rendered copy passes through here.
func ApplyClosing(text string, tone models.Tone, agentName string) string {
	trimmed := strings.TrimSpace(text)
	if strings.HasSuffix(trimmed, agentName) || strings.Contains(text, "Best regards") {
		return text
	}
	return text + closing(tone, agentName)
}
