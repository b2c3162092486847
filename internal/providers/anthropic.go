package providers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Anthropic implements the Reviewer interface on the official Anthropic SDK.
type Anthropic struct {
	client anthropic.Client
	model  string
}

// NewAnthropic creates a new Anthropic provider. Requires ANTHROPIC_API_KEY.
func NewAnthropic(model string) (*Anthropic, error) {
	key := os.Getenv("ANTHROPIC_API_KEY")
	if key == "" {
		return nil, &AuthError{Provider: "anthropic", Message: "ANTHROPIC_API_KEY environment variable is not set"}
	}
	opts := []option.RequestOption{option.WithAPIKey(key)}
	if base := os.Getenv("REVMOB_ANTHROPIC_BASE_URL"); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}
	return &Anthropic{
		client: anthropic.NewClient(opts...),
		model:  model,
	}, nil
}

func (a *Anthropic) Name() string { return "anthropic" }

func (a *Anthropic) Review(ctx context.Context, req Request) (Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: int64(maxTokens),
		System:    []anthropic.TextBlockParam{{Text: req.SystemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.UserPrompt)),
		},
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}

	var resp Response
	err := retryTransient(ctx, func() error {
		msg, err := a.client.Messages.New(ctx, params)
		if err != nil {
			return a.classify(err)
		}

		var sb strings.Builder
		for _, block := range msg.Content {
			if block.Type == "text" {
				sb.WriteString(block.Text)
			}
		}
		if sb.Len() == 0 {
			return &ModelError{Provider: "anthropic", Message: "no text content in response"}
		}
		resp = Response{
			Content:    sb.String(),
			TokensUsed: int(msg.Usage.InputTokens + msg.Usage.OutputTokens),
		}
		return nil
	})
	return resp, err
}

func (a *Anthropic) classify(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 401, 403:
			return &AuthError{Provider: "anthropic", Message: apiErr.Error()}
		case 429:
			return &RateLimitError{Provider: "anthropic"}
		case 503, 504, 529: // 529 is Anthropic's overloaded status
			return &transientError{provider: "anthropic", status: apiErr.StatusCode}
		}
		if apiErr.StatusCode >= 500 {
			return &transientError{provider: "anthropic", status: apiErr.StatusCode}
		}
	}
	if timeoutish(err) {
		return &TimeoutError{Provider: "anthropic"}
	}
	return fmt.Errorf("anthropic request: %w", err)
}
