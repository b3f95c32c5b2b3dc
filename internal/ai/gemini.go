package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiProvider implements CompletionProvider using Google's Gemini models.
type GeminiProvider struct {
	client    *genai.Client
	textModel *genai.GenerativeModel
	jsonModel *genai.GenerativeModel
}

// NewGeminiProvider initializes a new Gemini client. An empty model name
// selects the default. apiKey should come from environment configuration.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if model == "" {
		model = defaultGeminiModel
	}

	textModel := client.GenerativeModel(model)
	textModel.SetTemperature(0.7)

	// A second model handle with forced JSON output for structured parsing.
	jsonModel := client.GenerativeModel(model)
	jsonModel.ResponseMIMEType = "application/json"
	jsonModel.SetTemperature(0.3)

	return &GeminiProvider{
		client:    client,
		textModel: textModel,
		jsonModel: jsonModel,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// Complete sends a prompt and returns the generated text.
func (p *GeminiProvider) Complete(ctx context.Context, prompt string) (string, error) {
	return p.generate(ctx, p.textModel, prompt)
}

// CompleteJSON sends a prompt in forced-JSON mode and decodes the result into out.
func (p *GeminiProvider) CompleteJSON(ctx context.Context, prompt string, out any) error {
	raw, err := p.generate(ctx, p.jsonModel, prompt)
	if err != nil {
		return err
	}

	// JSON mode should already be clean, but strip fences just in case.
	cleaned := cleanJSONString(raw)
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w. Raw: %s", err, cleaned)
	}
	return nil
}

func (p *GeminiProvider) generate(ctx context.Context, model *genai.GenerativeModel, prompt string) (string, error) {
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response candidates from Gemini")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("empty text parts from Gemini")
	}

	return text.String(), nil
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
