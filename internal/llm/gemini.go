package llm

import (
	"context"
	"errors"
	"fmt"
	"os"

	genai "google.golang.org/genai"
)

// defaultGeminiModel is the model used when no override is provided.
const defaultGeminiModel = "gemini-2.5-flash"

// GeminiProvider implements Provider using the official genai SDK.
type GeminiProvider struct {
	cli   *genai.Client
	model string
}

// Compile-time check that GeminiProvider satisfies the Provider interface.
var _ Provider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a new Gemini provider. If apiKey is empty it
// falls back to GEMINI_API_KEY; if model is empty it uses the default.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("llm: GEMINI_API_KEY not set and no API key provided")
	}
	if model == "" {
		model = defaultGeminiModel
	}

	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: creating gemini client: %w", err)
	}

	return &GeminiProvider{cli: cli, model: model}, nil
}

// Model returns the default model configured for this provider.
func (p *GeminiProvider) Model() string {
	return p.model
}

// Complete sends a completion request to the Gemini generateContent API.
func (p *GeminiProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	model := p.model
	if req.Model != "" {
		model = req.Model
	}

	cfg := &genai.GenerateContentConfig{}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.SystemPrompt != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemPrompt}},
		}
	}
	if req.Temperature != nil {
		temp := float32(*req.Temperature)
		cfg.Temperature = &temp
	}

	resp, err := p.cli.Models.GenerateContent(ctx, model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: req.Prompt}}}},
		cfg,
	)
	if err != nil {
		return nil, p.wrapErr(err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, &Error{
			Provider: "gemini",
			Class:    ClassTransient,
			cause:    errors.New("empty response from model"),
		}
	}

	var content string
	for _, part := range resp.Candidates[0].Content.Parts {
		content += part.Text
	}

	served := model
	if resp.ModelVersion != "" {
		served = resp.ModelVersion
	}

	out := &Response{Content: content, Model: served}
	if resp.UsageMetadata != nil {
		out.Usage = Usage{
			InputTokens:  int(resp.UsageMetadata.PromptTokenCount),
			OutputTokens: int(resp.UsageMetadata.CandidatesTokenCount),
		}
	}
	return out, nil
}

// wrapErr classifies an SDK failure the same way the Anthropic provider does.
func (p *GeminiProvider) wrapErr(err error) error {
	var apierr genai.APIError
	if errors.As(err, &apierr) {
		return &Error{
			Provider: "gemini",
			Class:    classFromStatus(apierr.Code),
			Status:   apierr.Code,
			cause:    err,
		}
	}
	return &Error{Provider: "gemini", Class: ClassTransient, cause: err}
}
