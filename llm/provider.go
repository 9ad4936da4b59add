package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/askdb/askdb/config"
)

// Provider is the text-generation collaborator. The pipeline treats it as an
// opaque, possibly-unreliable function: every caller parses its output
// defensively and provides a safe default on extraction failure.
type Provider interface {
	GenerateCompletion(ctx context.Context, prompt string) (string, error)
	GetProviderType() string
}

// NewProvider creates an LLM provider based on configuration. Together and
// DashScope expose OpenAI-compatible chat endpoints, so every supported
// provider rides the same client with a different base URL.
func NewProvider(cfg config.LLMConfig) (Provider, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	switch provider {
	case "", "openai", "together", "dashscope":
		return newOpenAIProvider(cfg, provider)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}

type openAIProvider struct {
	client       openai.Client
	model        string
	temperature  float64
	maxTokens    int
	providerType string
}

func newOpenAIProvider(cfg config.LLMConfig, providerType string) (*openAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("create llm provider failed, err: api key is empty")
	}
	if providerType == "" {
		providerType = "openai"
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		switch providerType {
		case "together":
			baseURL = "https://api.together.xyz/v1"
		case "dashscope":
			baseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"
		}
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &openAIProvider{
		client:       openai.NewClient(opts...),
		model:        cfg.Model,
		temperature:  cfg.Temperature,
		maxTokens:    cfg.MaxTokens,
		providerType: providerType,
	}, nil
}

func (p *openAIProvider) GenerateCompletion(ctx context.Context, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
	if p.temperature > 0 {
		params.Temperature = openai.Float(p.temperature)
	}
	if p.maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(p.maxTokens))
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("generate completion failed, err: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("generate completion failed, err: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (p *openAIProvider) GetProviderType() string {
	return p.providerType
}
