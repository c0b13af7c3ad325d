package api

import (
	"github.com/starford/ansuz/internal/models"
)

// UpdateTemplateRequest is the request body for updating a template.
// Omitted fields keep their current value; tags is a comma-separated list.
type UpdateTemplateRequest struct {
	Title *string `json:"title" example:"Billing follow-up"`
	Tags  *string `json:"tags" example:"billing, refund"`
	Body  *string `json:"body" example:"Hi {{client_name}},"`
}

// TemplateListResponse wraps template listings and export payloads.
type TemplateListResponse struct {
	Templates []models.Template `json:"templates" validate:"required"`
}

// GenerateRequest is the request body for reply generation.
type GenerateRequest struct {
	Context  *models.Context `json:"context" validate:"required"`
	Tone     string          `json:"tone" example:"friendly"`
	Provider string          `json:"provider" example:"rulebased"`
}

// GenerateResponse carries the generated reply text.
type GenerateResponse struct {
	Reply    string `json:"reply" validate:"required"`
	Provider string `json:"provider" example:"rulebased" validate:"required"`
}

// ClassifyRequest is the request body for issue classification.
type ClassifyRequest struct {
	IssueSummary string `json:"issue_summary" example:"cannot login to my account"`
}

// ClassifyResponse carries the classification result.
type ClassifyResponse struct {
	IssueType models.IssueType `json:"issue_type" example:"login" validate:"required"`
}

// PreviewRequest is the request body for template preview rendering.
type PreviewRequest struct {
	Body    string         `json:"body" validate:"required"`
	Context models.Context `json:"context"`
	Tone    string         `json:"tone" example:"formal"`
}

// PreviewResponse carries rendered preview text.
type PreviewResponse struct {
	Preview string `json:"preview" validate:"required"`
}

// ProvidersResponse lists registered generation providers.
type ProvidersResponse struct {
	Providers []string `json:"providers" validate:"required"`
	Active    string   `json:"active" example:"rulebased" validate:"required"`
}
