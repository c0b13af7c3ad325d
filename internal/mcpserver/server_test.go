package mcpserver

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/ansuz/internal/compose"
	"github.com/starford/ansuz/internal/provider"
	"github.com/starford/ansuz/internal/templatestore"
	"github.com/starford/ansuz/internal/testutil"
)

func testServer(t *testing.T) (*Server, *templatestore.Store) {
	t.Helper()

	templates := testutil.TestTemplateStore(t)
	gen := &compose.Generator{Now: func() time.Time {
		return time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)
	}}
	registry := provider.NewRegistry(provider.NewRulebased(gen))

	srv := New(templates, gen, registry)
	return srv, templates
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go doesn't expose a direct "call tool" test helper, so we call
	// the handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "search_templates":
		result, err = srv.searchTemplates(ctx, req)
	case "read_template":
		result, err = srv.readTemplate(ctx, req)
	case "render_preview":
		result, err = srv.renderPreview(ctx, req)
	case "classify_issue":
		result, err = srv.classifyIssue(ctx, req)
	case "generate_reply":
		result, err = srv.generateReply(ctx, req)
	case "list_providers":
		result, err = srv.listProviders(ctx, req)
	case "get_token_contract":
		result, err = srv.getTokenContract(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestSearchAndReadTemplate(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "search_templates", map[string]interface{}{})
	if !strings.Contains(resultText(r), "embedded-generic") {
		t.Errorf("search result = %q", resultText(r))
	}

	r = callTool(t, srv, "read_template", map[string]interface{}{"id": "embedded-generic"})
	if !strings.Contains(resultText(r), "{{client_name}}") {
		t.Errorf("read result = %q", resultText(r))
	}
}

func TestReadTemplateMissing(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "read_template", map[string]interface{}{"id": "nope"})
	if !r.IsError {
		t.Error("expected error for missing template")
	}
}

func TestRenderPreview(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "render_preview", map[string]interface{}{
		"body":        "Hi {{client_name}}",
		"client_name": "Mira",
		"agent_name":  "Alex",
		"tone":        "formal",
	})
	text := resultText(r)
	if !strings.HasPrefix(text, "Hi Mira") {
		t.Errorf("preview = %q", text)
	}
	if !strings.Contains(text, "Best regards,\nAlex") {
		t.Errorf("preview missing closing: %q", text)
	}
}

func TestClassifyIssue(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "classify_issue", map[string]interface{}{
		"issue_summary": "I was charged twice on my invoice",
	})
	if got := resultText(r); got != "billing" {
		t.Errorf("classification = %q, want billing", got)
	}
}

func TestGenerateReply(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "generate_reply", map[string]interface{}{
		"client_name":   "Mira",
		"issue_summary": "cannot login",
		"tone":          "formal",
	})
	text := resultText(r)
	if !strings.HasPrefix(text, "Hi Mira,") {
		t.Errorf("reply = %q", text)
	}
	if !strings.Contains(text, "Date: March 14, 2026") {
		t.Errorf("reply missing date: %q", text)
	}
}

func TestGenerateReply_UnknownProvider(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "generate_reply", map[string]interface{}{"provider": "ghost"})
	if !r.IsError {
		t.Error("expected error for unknown provider")
	}
}

func TestListProviders(t *testing.T) {
	srv, _ := testServer(t)
	text := resultText(callTool(t, srv, "list_providers", map[string]interface{}{}))
	if !strings.Contains(text, "active: rulebased") {
		t.Errorf("providers = %q", text)
	}
}

func TestGetTokenContract(t *testing.T) {
	srv, _ := testServer(t)
	text := resultText(callTool(t, srv, "get_token_contract", map[string]interface{}{}))
	if !strings.Contains(text, "{{client_name}}") {
		t.Errorf("contract = %q", text)
	}
}
