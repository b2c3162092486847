package providers

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAI implements the Reviewer interface on the official OpenAI SDK.
type OpenAI struct {
	client openai.Client
	model  string
}

// NewOpenAI creates a new OpenAI provider. Requires OPENAI_API_KEY.
func NewOpenAI(model string) (*OpenAI, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, &AuthError{Provider: "openai", Message: "OPENAI_API_KEY environment variable is not set"}
	}
	opts := []option.RequestOption{option.WithAPIKey(key)}
	if base := os.Getenv("REVMOB_OPENAI_BASE_URL"); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}
	return &OpenAI{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Review(ctx context.Context, req Request) (Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemPrompt),
			openai.UserMessage(req.UserPrompt),
		},
		MaxTokens: openai.Int(int64(maxTokens)),
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}

	var resp Response
	err := retryTransient(ctx, func() error {
		completion, err := o.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return o.classify(err)
		}
		if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
			return &ModelError{Provider: "openai", Message: "empty completion"}
		}
		resp = Response{
			Content:    completion.Choices[0].Message.Content,
			TokensUsed: int(completion.Usage.TotalTokens),
		}
		return nil
	})
	return resp, err
}

func (o *OpenAI) classify(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 401 || apiErr.StatusCode == 403:
			return &AuthError{Provider: "openai", Message: apiErr.Message}
		case apiErr.StatusCode == 429:
			return &RateLimitError{Provider: "openai"}
		case apiErr.StatusCode >= 500:
			return &transientError{provider: "openai", status: apiErr.StatusCode}
		}
	}
	if timeoutish(err) {
		return &TimeoutError{Provider: "openai"}
	}
	return fmt.Errorf("openai request: %w", err)
}
