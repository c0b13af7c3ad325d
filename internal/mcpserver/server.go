// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Ansuz composer tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/ansuz/internal/classify"
	"github.com/starford/ansuz/internal/compose"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/provider"
	"github.com/starford/ansuz/internal/templatestore"
)

// Server wraps the MCP server with Ansuz tools.
type Server struct {
	mcp       *server.MCPServer
	templates *templatestore.Store
	gen       *compose.Generator
	registry  *provider.Registry
}

// New creates a new MCP server with all Ansuz tools registered.
func New(templates *templatestore.Store, gen *compose.Generator, registry *provider.Registry) *Server {
	s := &Server{templates: templates, gen: gen, registry: registry}

	s.mcp = server.NewMCPServer(
		"Ansuz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_templates",
		mcp.WithDescription("Substring search through reply template titles, tags, and bodies. "+
			"An empty query lists all templates."),
		mcp.WithString("query", mcp.Description("Search query string")),
	), s.searchTemplates)

	s.mcp.AddTool(mcp.NewTool("read_template",
		mcp.WithDescription("Read the full body and metadata of a reply template."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Template id (e.g. tmpl-abc123)")),
	), s.readTemplate)

	s.mcp.AddTool(mcp.NewTool("render_preview",
		mcp.WithDescription("Render a template body with ticket context values and a tone closing. "+
			"The body may contain {{token}} placeholders; read the contract first via the "+
			"get_token_contract tool or the ansuz://token-contract resource."),
		mcp.WithString("body", mcp.Required(), mcp.Description("Template body with {{token}} placeholders")),
		mcp.WithString("client_name", mcp.Description("Customer name")),
		mcp.WithString("agent_name", mcp.Description("Support agent name")),
		mcp.WithString("issue_summary", mcp.Description("Short issue description")),
		mcp.WithString("ticket_number", mcp.Description("Ticket reference")),
		mcp.WithString("tone", mcp.Description("Closing tone: formal, friendly, apologetic, proactive")),
	), s.renderPreview)

	s.mcp.AddTool(mcp.NewTool("classify_issue",
		mcp.WithDescription("Classify an issue summary into a support category "+
			"(login, password, billing, performance, error, general)."),
		mcp.WithString("issue_summary", mcp.Required(), mcp.Description("Issue text to classify")),
	), s.classifyIssue)

	s.mcp.AddTool(mcp.NewTool("generate_reply",
		mcp.WithDescription("Generate a complete support reply from ticket context using a "+
			"registered generation provider."),
		mcp.WithString("client_name", mcp.Description("Customer name")),
		mcp.WithString("agent_name", mcp.Description("Support agent name")),
		mcp.WithString("issue_summary", mcp.Description("Short issue description")),
		mcp.WithString("ticket_number", mcp.Description("Ticket reference")),
		mcp.WithString("tone", mcp.Description("Reply tone: formal, friendly, apologetic, proactive")),
		mcp.WithString("provider", mcp.Description("Provider name (empty for the active provider)")),
	), s.generateReply)

	s.mcp.AddTool(mcp.NewTool("list_providers",
		mcp.WithDescription("List registered generation providers and the active selection."),
	), s.listProviders)

	s.mcp.AddTool(mcp.NewTool("get_token_contract",
		mcp.WithDescription("Returns the canonical Ansuz template token contract. "+
			"Call this before writing template bodies to ensure placeholders resolve."),
	), s.getTokenContract)

	// Resource: token contract.
	s.mcp.AddResource(
		mcp.NewResource("ansuz://token-contract", "Template Token Contract",
			mcp.WithResourceDescription("Canonical placeholder tokens and tones that template bodies may use."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readTokenContractResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// optString reads an optional string argument, empty when absent.
func optString(req mcp.CallToolRequest, key string) string {
	if v, err := req.RequireString(key); err == nil {
		return v
	}
	return ""
}

func contextFromRequest(req mcp.CallToolRequest) models.Context {
	return models.Context{
		ClientName:   optString(req, "client_name"),
		AgentName:    optString(req, "agent_name"),
		IssueSummary: optString(req, "issue_summary"),
		TicketNumber: optString(req, "ticket_number"),
	}
}

func (s *Server) searchTemplates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	results := s.templates.Search(optString(req, "query"))
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readTemplate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	t, ok := s.templates.Get(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	out, _ := json.MarshalIndent(t, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) renderPreview(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	body, err := req.RequireString("body")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	c := contextFromRequest(req)
	tone := models.Tone(optString(req, "tone"))
	return mcp.NewToolResultText(s.gen.Preview(body, c, tone)), nil
}

func (s *Server) classifyIssue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary, err := req.RequireString("issue_summary")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(classify.Classify(summary))), nil
}

func (s *Server) generateReply(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c := contextFromRequest(req)
	tone := models.Tone(optString(req, "tone"))
	if tone == "" {
		tone = models.ToneFriendly
	}

	name := optString(req, "provider")
	if name == "" {
		name = s.registry.Active()
	}
	p, err := s.registry.Get(name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("unknown provider: %s", name)), nil
	}

	reply, err := p.Generate(ctx, c, tone)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(reply), nil
}

func (s *Server) listProviders(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lines := []string{"active: " + s.registry.Active()}
	lines = append(lines, s.registry.List()...)
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) getTokenContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(TokenContract), nil
}

func (s *Server) readTokenContractResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "ansuz://token-contract",
			MIMEType: "text/markdown",
			Text:     TokenContract,
		},
	}, nil
}
