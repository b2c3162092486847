package review

import (
	"context"
	"fmt"
	"time"

	"github.com/chainguard-dev/clog"

	"github.com/dshills/revmob/internal/cache"
	"github.com/dshills/revmob/internal/event"
	"github.com/dshills/revmob/internal/filter"
	"github.com/dshills/revmob/internal/prompt"
	"github.com/dshills/revmob/internal/providers"
	"github.com/dshills/revmob/internal/redact"
)

const (
	maxResponseTokens = 8192
	reviewTemperature = 0.2
)

// FileLister yields the changed files of a pull request.
type FileLister interface {
	ChangedFiles(ctx context.Context, number int) ([]filter.File, error)
}

// RubricLoader yields the review rubric text.
type RubricLoader interface {
	Load(ctx context.Context) string
}

// Pipeline wires the review stages together.
type Pipeline struct {
	Files    FileLister
	Rubric   RubricLoader
	Filter   *filter.Filter
	Provider providers.Reviewer
	Model    string
	Cache    *cache.Cache
}

// Review runs the full pipeline for a pull request and returns the report.
// When no changed file survives filtering it returns a Report with an empty
// FilesReviewed slice without calling the provider.
func (p *Pipeline) Review(ctx context.Context, pr event.PullRequest) (*Report, error) {
	start := time.Now()

	files, err := p.Files.ChangedFiles(ctx, pr.Number)
	if err != nil {
		return nil, fmt.Errorf("listing changed files: %w", err)
	}
	clog.InfoContextf(ctx, "pull request #%d has %d changed files", pr.Number, len(files))

	kept := p.Filter.Apply(files)
	if len(kept) == 0 {
		clog.InfoContext(ctx, "no mobile-relevant files changed, skipping provider call")
		return &Report{
			Summary:       "No mobile-relevant files changed.",
			Risk:          RiskLow,
			Checklist:     []string{},
			Findings:      []Finding{},
			Provider:      p.Provider.Name(),
			Model:         p.Model,
			FilesReviewed: []string{},
		}, nil
	}

	reviewed := make([]string, 0, len(kept))
	for i := range kept {
		kept[i].Patch = redact.Patch(kept[i].Path, kept[i].Patch)
		reviewed = append(reviewed, kept[i].Path)
	}

	rubricText := p.Rubric.Load(ctx)
	userPrompt := prompt.Build(rubricText, pr.Title, pr.Body, kept)
	clog.InfoContextf(ctx, "reviewing %d files with %s/%s (prompt %d chars)",
		len(kept), p.Provider.Name(), p.Model, len(userPrompt))

	content, tokens, err := p.requestReview(ctx, userPrompt)
	if err != nil {
		return nil, err
	}

	report, err := parseReport(content)
	if err != nil {
		report, err = p.repair(ctx, content, err)
		if err != nil {
			return nil, err
		}
	}

	report.Provider = p.Provider.Name()
	report.Model = p.Model
	report.TokensUsed = tokens
	report.FilesReviewed = reviewed

	clog.InfoContextf(ctx, "review complete in %s: risk=%s findings=%d tokens=%d",
		time.Since(start).Round(time.Millisecond), report.Risk, len(report.Findings), tokens)
	return report, nil
}

// requestReview calls the provider, consulting the response cache first.
func (p *Pipeline) requestReview(ctx context.Context, userPrompt string) (string, int, error) {
	key := cache.BuildKey(p.Provider.Name(), p.Model, userPrompt)
	if p.Cache != nil && p.Cache.Enabled() {
		if cached, ok := p.Cache.Get(key); ok {
			clog.InfoContext(ctx, "using cached provider response")
			return cached, 0, nil
		}
	}

	resp, err := p.Provider.Review(ctx, providers.Request{
		SystemPrompt: prompt.SystemPrompt(),
		UserPrompt:   userPrompt,
		MaxTokens:    maxResponseTokens,
		Temperature:  reviewTemperature,
	})
	if err != nil {
		return "", 0, fmt.Errorf("provider review: %w", err)
	}

	if p.Cache != nil && p.Cache.Enabled() {
		if cerr := p.Cache.Put(key, resp.Content); cerr != nil {
			clog.WarnContextf(ctx, "caching provider response: %v", cerr)
		}
	}
	return resp.Content, resp.TokensUsed, nil
}

// repair gives the model one chance to fix a malformed JSON response.
func (p *Pipeline) repair(ctx context.Context, content string, parseErr error) (*Report, error) {
	clog.WarnContextf(ctx, "provider response was not valid JSON, attempting repair: %v", parseErr)

	repairPrompt := fmt.Sprintf(
		"Your previous response was not valid JSON. The error was: %s\n\nPlease fix it and respond with ONLY a valid JSON object matching the required schema.\n\nYour previous response was:\n%s",
		parseErr.Error(), content,
	)
	resp, err := p.Provider.Review(ctx, providers.Request{
		SystemPrompt: prompt.SystemPrompt(),
		UserPrompt:   repairPrompt,
		MaxTokens:    maxResponseTokens,
		Temperature:  reviewTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("repair pass failed: %w (original error: %w)", err, parseErr)
	}
	report, err := parseReport(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("response validation failed after repair: %w", err)
	}
	return report, nil
}
