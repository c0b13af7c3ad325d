package compose

import (
	"time"

	"github.com/starford/ansuz/internal/classify"
	"github.com/starford/ansuz/internal/models"
)

// DateLayout is the fixed layout for the Date line of generated replies.
const DateLayout = "January 2, 2006"

// Generator produces deterministic rule-based replies. The clock is the
// only non-pure input; tests override Now to pin the Date line.
type Generator struct {
	Now func() time.Time
}

// NewGenerator returns a Generator using the wall clock.
func NewGenerator() *Generator {
	return &Generator{Now: time.Now}
}

// Generate builds a complete reply for the given context and tone: a base
// paragraph chosen by classifying the issue summary, a tone-specific suffix
// block, an optional Ticket line, and a Date line. Output is identical for
// identical context, tone, and clock reading.
func (g *Generator) Generate(c models.Context, tone models.Tone) string {
	agent := c.AgentName
	if agent == "" {
		agent = "Support Team"
	}

	issue := classify.Classify(c.IssueSummary)
	reply := baseParagraph(issue, c) + toneSuffix(tone, agent)

	if c.TicketNumber != "" {
		reply += "\nTicket: " + c.TicketNumber
	}
	reply += "\nDate: " + g.Now().Format(DateLayout)
	return reply
}

// baseParagraph returns the fixed opening paragraph for an issue type.
// Unknown and general share the default paragraph, which quotes the issue
// summary verbatim or says "this matter" when the summary is empty.
func baseParagraph(issue models.IssueType, c models.Context) string {
	name := c.ClientName
	if name == "" {
		name = "there"
	}
	greeting := "Hi " + name + ",\n\n"

	switch issue {
	case models.IssueLogin:
		return greeting + "Thanks for letting us know you’re having trouble signing in. Please try resetting your password using the “Forgot password” link. If you still can’t access your account, reply and we will initiate a manual reset."
	case models.IssuePassword:
		return greeting + "We can help with the password reset. I have initiated a reset link to the email associated with your account. Please follow the instructions to complete the update."
	case models.IssueBilling:
		return greeting + "Thanks for raising this billing concern. I’ve forwarded the details to our billing team for review. We will follow up with an update or any required refund on this ticket."
	case models.IssuePerformance:
		return greeting + "I’m sorry you experienced slowness. Could you share the time, affected page, and any error messages? This helps us reproduce and fix the issue quickly."
	case models.IssueError:
		return greeting + "Thank you for reporting this error. Could you provide a screenshot and the steps to reproduce it? We’ll investigate right away."
	default:
		subject := c.IssueSummary
		if subject == "" {
			subject = "this matter"
		}
		return greeting + "Thanks for contacting us about " + subject + ". We’re looking into it and will get back to you with next steps."
	}
}

// toneSuffix is the generator's own closing table. It is deliberately not
// routed through ApplyClosing: generated replies always start from a clean
// base paragraph, so the already-signed guard does not apply here.
func toneSuffix(tone models.Tone, agentName string) string {
	switch tone {
	case models.ToneFormal:
		return "\n\nWe appreciate your patience.\n\nBest regards,\n" + agentName
	case models.ToneFriendly:
		return "\n\nNo worries — we’ll get this sorted quickly for you.\n\nWarm regards,\n" + agentName
	case models.ToneApologetic:
		return "\n\nWe sincerely apologize for any inconvenience this may have caused and appreciate your patience.\n\nKind regards,\n" + agentName
	case models.ToneProactive:
		return "\n\nWe’ve already started looking into this and will follow up shortly with an update.\n\nBest regards,\n" + agentName
	default:
		return "\n\nBest regards,\n" + agentName
	}
}
