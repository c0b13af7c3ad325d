package compose

import (
	"strings"
	"testing"

	"github.com/starford/ansuz/internal/models"
)

func TestPreview_RendersAndCloses(t *testing.T) {
	g := fixedGenerator()
	body := "Hi {{client_name}},\n\nAbout ticket {{ticket_number}}."
	ctx := models.Context{ClientName: "Mira", AgentName: "Alex", TicketNumber: "T-2"}

	got := g.Preview(body, ctx, models.ToneFormal)
	want := "Hi Mira,\n\nAbout ticket T-2.\n\nBest regards,\nAlex"
	if got != want {
		t.Errorf("preview = %q\nwant      %q", got, want)
	}
}

func TestPreview_DefaultsForEmptyNames(t *testing.T) {
	g := fixedGenerator()
	got := g.Preview("Hi {{client_name}},", models.Context{}, models.ToneFormal)
	if !strings.HasPrefix(got, "Hi Customer,") {
		t.Errorf("client name should default to Customer: %q", got)
	}
	if !strings.HasSuffix(got, "Best regards,\nSupport Team") {
		t.Errorf("agent name should default to Support Team: %q", got)
	}
}

func TestPreview_EmptySummaryHint(t *testing.T) {
	g := fixedGenerator()
	body := "Regarding {{issue_summary}}."

	got := g.Preview(body, models.Context{AgentName: "Alex"}, models.ToneFormal)
	if !strings.Contains(got, "[Note: no issue summary provided") {
		t.Errorf("expected hint for empty summary: %q", got)
	}

	got = g.Preview(body, models.Context{AgentName: "Alex", IssueSummary: "slow exports"}, models.ToneFormal)
	if strings.Contains(got, "[Note:") {
		t.Errorf("unexpected hint when summary present: %q", got)
	}
	if !strings.Contains(got, "Regarding slow exports.") {
		t.Errorf("summary not substituted: %q", got)
	}
}

func TestPreview_PreClosedBodyUnchangedByTone(t *testing.T) {
	g := fixedGenerator()
	body := "All set.\n\nBest regards,\n{{agent_name}}"
	got := g.Preview(body, models.Context{AgentName: "Alex"}, models.ToneApologetic)
	if got != "All set.\n\nBest regards,\nAlex" {
		t.Errorf("pre-closed body should not gain a second closing: %q", got)
	}
}

func TestTestPreview_SampleTokens(t *testing.T) {
	g := fixedGenerator()
	body := "{{client_name}} / {{agent_name}} / {{issue_summary}} / {{ticket_number}} / {{current_date}}"

	got := g.TestPreview(body, models.Context{})
	want := testPreviewLabel + "Acme Corp. / Alex Rivera / Unable to upload files / TCK-12345 / March 14, 2026"
	if got != want {
		t.Errorf("test preview = %q\nwant         %q", got, want)
	}
}

func TestTestPreview_ContextValuesWinOverSamples(t *testing.T) {
	g := fixedGenerator()
	got := g.TestPreview("{{agent_name}} {{ticket_number}}", models.Context{AgentName: "Noor", TicketNumber: "T-7"})
	if !strings.Contains(got, "Noor T-7") {
		t.Errorf("context values should override samples: %q", got)
	}
}
