package provider

import (
	"context"

	"github.com/starford/ansuz/internal/compose"
	"github.com/starford/ansuz/internal/models"
)

// NameRulebased is the local deterministic provider and the default.
const NameRulebased = "rulebased"

// Rulebased wraps the local rule engine in the provider contract. It never
// fails and needs no network or credentials.
type Rulebased struct {
	gen *compose.Generator
}

// NewRulebased creates the local provider.
func NewRulebased(gen *compose.Generator) *Rulebased {
	return &Rulebased{gen: gen}
}

// Name implements Provider.
func (p *Rulebased) Name() string { return NameRulebased }

// Generate implements Provider.
func (p *Rulebased) Generate(_ context.Context, c models.Context, tone models.Tone) (string, error) {
	return p.gen.Generate(c, tone), nil
}
