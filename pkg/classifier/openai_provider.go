package classifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/rs/zerolog"
)

// OpenAIProvider is the concrete LLMProvider backed by the OpenAI chat
// completions endpoint. It satisfies the single-method classifier.LLMProvider
// interface; workflowTag is logged but not sent to the API, mirroring how
// the teacher tags calls for cost attribution without leaking the tag
// upstream.
type OpenAIProvider struct {
	client openai.Client
	log    zerolog.Logger
}

// NewOpenAIProvider builds a provider against apiKey. baseURL may be empty
// to use the default OpenAI endpoint (an OpenAI-compatible proxy can be
// substituted by passing its base URL instead).
func NewOpenAIProvider(apiKey, baseURL string, log zerolog.Logger) (*OpenAIProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("classifier: openai provider requires an api key")
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if strings.TrimSpace(baseURL) != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIProvider{
		client: openai.NewClient(opts...),
		log:    log.With().Str("component", "classifier.openai_provider").Logger(),
	}, nil
}

// CreateMessage sends prompt as the sole user turn and returns the first
// choice's text content.
func (p *OpenAIProvider) CreateMessage(ctx context.Context, prompt, modelName, workflowTag string) (string, error) {
	req := openai.ChatCompletionNewParams{
		Model: modelName,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0.2),
	}

	resp, err := p.client.Chat.Completions.New(ctx, req)
	if err != nil {
		p.log.Warn().Err(err).Str("workflow_tag", workflowTag).Msg("openai chat completion failed")
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai chat completion: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
