package gemini

import (
	"context"
	"fmt"
	"iter"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// Config for the Gemini API.
type Config struct {
	APIKey string
	Model  string

	// Default is applied to requests that carry no generation config of
	// their own, such as those issued by the ADK agent loop.
	Default *genai.GenerateContentConfig
}

// Model adapts the Gemini API to the ADK model.LLM interface and exposes a
// direct generation path for one-shot multimodal calls.
type Model struct {
	config Config
	client *genai.Client
}

// New creates a Gemini model client.
func New(ctx context.Context, cfg Config) (*Model, error) {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Model{config: cfg, client: client}, nil
}

func (m *Model) Name() string {
	return m.config.Model
}

// GenerateContent adapts ADK requests to the Gemini API.
func (m *Model) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	return func(yield func(*model.LLMResponse, error) bool) {
		resp, err := m.generate(ctx, req)
		yield(resp, err)
	}
}

func (m *Model) generate(ctx context.Context, req *model.LLMRequest) (*model.LLMResponse, error) {
	var cfg *genai.GenerateContentConfig
	if req != nil {
		cfg = req.Config
	}
	if cfg == nil {
		cfg = m.config.Default
	}

	var contents []*genai.Content
	if req != nil {
		contents = req.Contents
	}

	result, err := m.client.Models.GenerateContent(ctx, m.config.Model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini api error: empty candidates")
	}

	return &model.LLMResponse{
		Content: result.Candidates[0].Content,
	}, nil
}

// GenerateText runs a one-shot generation over the given parts and returns the
// concatenated text of the first candidate. Used for multimodal calls that
// need no tool loop.
func (m *Model) GenerateText(ctx context.Context, parts []*genai.Part, cfg *genai.GenerateContentConfig) (string, error) {
	contents := []*genai.Content{{Role: genai.RoleUser, Parts: parts}}

	result, err := m.client.Models.GenerateContent(ctx, m.config.Model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("gemini api error: no text in response")
	}

	return text, nil
}

// AgentConfig returns the generation settings for agent tool loops: the
// verdict sampling parameters without a forced response MIME type, which
// would interfere with function calling.
func AgentConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.2),
		TopP:            genai.Ptr[float32](0.95),
		TopK:            genai.Ptr[float32](40),
		MaxOutputTokens: 8192,
	}
}

// JSONConfig returns the generation settings used for verdict calls: low
// temperature, JSON response MIME type.
func JSONConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.2),
		TopP:             genai.Ptr[float32](0.95),
		TopK:             genai.Ptr[float32](40),
		MaxOutputTokens:  8192,
		ResponseMIMEType: "application/json",
	}
}
