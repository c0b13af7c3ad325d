package models

import "encoding/json"

// Context describes one support ticket. It is supplied by the interface
// layer on every render or generate call and never persisted; the current
// date is derived at render time, not stored here.
type Context struct {
	ClientName   string `json:"client_name"`
	AgentName    string `json:"agent_name"`
	IssueSummary string `json:"issue_summary"`
	TicketNumber string `json:"ticket_number"`
}

// UnmarshalJSON accepts both the canonical snake_case keys and the interface
// layer's camelCase field names. When both spellings are present the
// snake_case value wins.
func (c *Context) UnmarshalJSON(data []byte) error {
	var raw struct {
		ClientName     string `json:"client_name"`
		AgentName      string `json:"agent_name"`
		IssueSummary   string `json:"issue_summary"`
		TicketNumber   string `json:"ticket_number"`
		ClientNameAlt  string `json:"clientName"`
		AgentNameAlt   string `json:"agentName"`
		IssueSummAlt   string `json:"issueSummary"`
		TicketNumAlt   string `json:"ticketNumber"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.ClientName = firstNonEmpty(raw.ClientName, raw.ClientNameAlt)
	c.AgentName = firstNonEmpty(raw.AgentName, raw.AgentNameAlt)
	c.IssueSummary = firstNonEmpty(raw.IssueSummary, raw.IssueSummAlt)
	c.TicketNumber = firstNonEmpty(raw.TicketNumber, raw.TicketNumAlt)
	return nil
}

// Tokens builds the render mapping for this context. Keys are lower-cased
// token names. Empty client and agent names fall back to generic display
// values so a half-filled form still renders something presentable.
func (c Context) Tokens(currentDate string) map[string]string {
	client := c.ClientName
	if client == "" {
		client = "Customer"
	}
	agent := c.AgentName
	if agent == "" {
		agent = "Support Team"
	}
	return map[string]string{
		"client_name":   client,
		"agent_name":    agent,
		"issue_summary": c.IssueSummary,
		"ticket_number": c.TicketNumber,
		"current_date":  currentDate,
	}
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
