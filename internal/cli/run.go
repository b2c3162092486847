package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"

	"github.com/dshills/revmob/internal/cache"
	"github.com/dshills/revmob/internal/config"
	"github.com/dshills/revmob/internal/event"
	"github.com/dshills/revmob/internal/filter"
	"github.com/dshills/revmob/internal/ghpr"
	"github.com/dshills/revmob/internal/output"
	"github.com/dshills/revmob/internal/providers"
	"github.com/dshills/revmob/internal/review"
	"github.com/dshills/revmob/internal/rubric"
	"github.com/dshills/revmob/internal/slack"
)

var flagVerbose bool

// prClient is the slice of ghpr.Client the run needs: listing changed files
// for the pipeline and posting the review comment.
type prClient interface {
	ChangedFiles(ctx context.Context, number int) ([]filter.File, error)
	PostComment(ctx context.Context, number int, body string) error
}

// Construction seams, overridden in tests.
var (
	newGitHubClient = func(cfg *config.Config) (prClient, error) {
		if cfg.UseApp() {
			return ghpr.NewAppClient(cfg.AppID, cfg.AppInstallationID, cfg.AppPrivateKeyPath, cfg.Repository)
		}
		return ghpr.NewTokenClient(cfg.GithubToken, cfg.Repository)
	}
	newProvider = providers.New
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Review the pull request that triggered this workflow run",
	RunE: func(cmd *cobra.Command, args []string) error {
		exitCode = runAction(cmd.Context())
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
}

func runAction(ctx context.Context) int {
	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitUsageError
	}

	pr, err := event.Load(cfg.EventPath)
	if err != nil {
		if errors.Is(err, event.ErrNotPullRequest) {
			clog.InfoContext(ctx, "event is not a pull request, nothing to do")
			return ExitSuccess
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitRuntimeError
	}
	if !pr.ShouldReview() {
		clog.InfoContextf(ctx, "skipping review for action %q (draft=%v)", pr.Action, pr.Draft)
		return ExitSuccess
	}

	gh, err := newGitHubClient(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitAuthError
	}

	fl, err := filter.New(cfg.FileGlobs, cfg.MaxFiles, cfg.MaxPatchChars)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitUsageError
	}

	provider, err := newProvider(cfg.Provider, cfg.Model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if providers.IsAuthError(err) {
			return ExitAuthError
		}
		return ExitUsageError
	}

	respCache, err := cache.New(!cfg.CacheDisabled, cfg.CacheDir, 0)
	if err != nil {
		clog.WarnContextf(ctx, "disabling response cache: %v", err)
		respCache, _ = cache.New(false, "", 0)
	}

	pipeline := &review.Pipeline{
		Files:    gh,
		Rubric:   rubric.NewLoader(cfg.RubricURL, cfg.RubricToken),
		Filter:   fl,
		Provider: provider,
		Model:    cfg.Model,
		Cache:    respCache,
	}

	report, err := pipeline.Review(ctx, pr)
	if err != nil {
		// Nothing is posted on a failed review run.
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if providers.IsAuthError(err) {
			return ExitAuthError
		}
		return ExitRuntimeError
	}

	body := output.NoEligibleFilesComment()
	if len(report.FilesReviewed) > 0 {
		body = output.Comment(report)
	}

	if err := gh.PostComment(ctx, pr.Number, body); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitRuntimeError
	}
	clog.InfoContextf(ctx, "posted review comment on %s#%d", cfg.Repository, pr.Number)

	if len(report.FilesReviewed) > 0 {
		if err := output.WriteJobSummary(body); err != nil {
			clog.WarnContextf(ctx, "writing job summary: %v", err)
		}
	}

	notifier := slack.NewNotifier(cfg.SlackWebhookURL)
	notifier.Notify(ctx, fmt.Sprintf("revmob reviewed %s#%d: risk %s, %d findings",
		cfg.Repository, pr.Number, report.Risk, len(report.Findings)))

	return ExitSuccess
}
