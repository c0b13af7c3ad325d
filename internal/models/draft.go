package models

// Draft is the autosaved snapshot of the in-progress composition. One
// singleton record per device: overwritten on every field change, cleared
// by explicit user action, read once at startup. The camelCase encoding
// matches the record shape the interface layer has always written.
type Draft struct {
	ClientName    string `json:"clientName,omitempty"`
	AgentName     string `json:"agentName,omitempty"`
	IssueSummary  string `json:"issueSummary,omitempty"`
	TicketNumber  string `json:"ticketNumber,omitempty"`
	TemplateBody  string `json:"templateBody,omitempty"`
	TemplateTitle string `json:"templateTitle,omitempty"`
	TemplateTags  string `json:"templateTags,omitempty"`
}

// IsZero reports whether the draft carries no data at all.
func (d Draft) IsZero() bool {
	return d == Draft{}
}
