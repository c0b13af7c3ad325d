package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/starford/ansuz/internal/models"
)

// NameOpenAI is the remote chat-completion backed provider.
const NameOpenAI = "openai"

const (
	openaiTimeout     = 20 * time.Second
	openaiMaxTokens   = 500
	openaiTemperature = 0.2

	systemPrompt = "You are a helpful customer support assistant. Given context about a support ticket, " +
		"generate a concise, polite, and professional email reply. Use the tone specified " +
		"(formal, friendly, apologetic, proactive). Include a short closing with agent name " +
		"when provided. Do not include markdown or extra commentary."
)

// OpenAI proxies reply generation to the OpenAI chat-completion API. A
// missing API key is reported at call time as a provider error so the rest
// of the application starts normally without a credential.
type OpenAI struct {
	client     *openai.Client
	model      string
	configured bool
}

// NewOpenAI creates the remote provider. model defaults to gpt-3.5-turbo.
func NewOpenAI(apiKey, model string) *OpenAI {
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &OpenAI{
		client:     openai.NewClient(apiKey),
		model:      model,
		configured: apiKey != "",
	}
}

// Name implements Provider.
func (p *OpenAI) Name() string { return NameOpenAI }

// Generate implements Provider.
func (p *OpenAI) Generate(ctx context.Context, c models.Context, tone models.Tone) (string, error) {
	if !p.configured {
		return "", fmt.Errorf("provider: openai api key not configured")
	}

	reqCtx, cancel := context.WithTimeout(ctx, openaiTimeout)
	defer cancel()

	user := strings.Join([]string{
		"Tone: " + string(tone),
		"Client name: " + valueOr(c.ClientName, "Customer"),
		"Agent name: " + valueOr(c.AgentName, "Support Team"),
		"Ticket number: " + c.TicketNumber,
		"Issue summary: " + c.IssueSummary,
	}, "\n")

	resp, err := p.client.CreateChatCompletion(reqCtx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: openaiTemperature,
		MaxTokens:   openaiMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("provider: openai request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("provider: openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func valueOr(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
