package compose

import (
	"strings"

	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/render"
)

const (
	summaryHint      = "\n\n[Note: no issue summary provided — consider adding details.]"
	testPreviewLabel = "[Test Template Preview — simulated values]\n\n"
)

// Preview runs the on-screen pipeline for a template body: build the token
// mapping from the context, flag a referenced-but-empty issue summary,
// substitute tokens, then apply the tone closing. The body itself is never
// modified; the hint and closing exist only in the returned copy.
func (g *Generator) Preview(body string, c models.Context, tone models.Tone) string {
	tokens := c.Tokens(g.Now().Format(DateLayout))
	if strings.Contains(body, "{{issue_summary}}") && c.IssueSummary == "" {
		body += summaryHint
	}
	rendered := render.Render(body, tokens)
	return ApplyClosing(rendered, tone, tokens["agent_name"])
}

// TestPreview renders a body against fixed sample values so an author can
// see a completed email without filling in the context form. Agent name,
// issue summary, and ticket number from the context are used when present.
func (g *Generator) TestPreview(body string, c models.Context) string {
	tokens := map[string]string{
		"client_name":   "Acme Corp.",
		"agent_name":    valueOr(c.AgentName, "Alex Rivera"),
		"issue_summary": valueOr(c.IssueSummary, "Unable to upload files"),
		"ticket_number": valueOr(c.TicketNumber, "TCK-12345"),
		"current_date":  g.Now().Format(DateLayout),
	}
	return testPreviewLabel + render.Render(body, tokens)
}

func valueOr(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
