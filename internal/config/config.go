package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

// defaultFileGlobs covers Kotlin/Swift/Gradle/XML/plist and related mobile
// sources. Applied in code because the tag parser treats commas as options.
const defaultFileGlobs = "*.kt,*.kts,*.java,*.xml,*.swift,*.m,*.mm,*.gradle,*.gradle.kts,*.pro,*.plist,*.md"

const defaultRubricURL = "https://raw.githubusercontent.com/Ahabdelhak/ai-mobile-pr-reviewer/main/rubric/mobile_review.md"

// repoFile is the per-repository override file, read from the checkout root.
const repoFile = ".revmob.yml"

// Config holds everything one review run needs.
type Config struct {
	GithubToken     string `env:"GITHUB_TOKEN"`
	Repository      string `env:"GITHUB_REPOSITORY"`
	EventPath       string `env:"GITHUB_EVENT_PATH"`
	Provider        string `env:"PROVIDER,default=openai"`
	Model           string `env:"MODEL_NAME,default=gpt-4o-mini"`
	MaxPatchChars   int    `env:"MAX_PATCH_CHARS,default=12000"`
	MaxFiles        int    `env:"MAX_FILES,default=25"`
	FileGlobs       string `env:"FILE_GLOBS"`
	RubricURL       string `env:"RUBRIC_URL"`
	RubricToken     string `env:"RUBRIC_TOKEN"`
	SlackWebhookURL string `env:"SLACK_WEBHOOK_URL"`

	// GitHub App credentials, used instead of GITHUB_TOKEN when all three
	// are set.
	AppID             int64  `env:"GITHUB_APP_ID"`
	AppInstallationID int64  `env:"GITHUB_APP_INSTALLATION_ID"`
	AppPrivateKeyPath string `env:"GITHUB_APP_PRIVATE_KEY_PATH"`

	CacheDir      string `env:"REVMOB_CACHE_DIR"`
	CacheDisabled bool   `env:"REVMOB_CACHE_DISABLED"`
}

// repoOverrides mirrors the .revmob.yml schema.
type repoOverrides struct {
	Provider      string `yaml:"provider"`
	Model         string `yaml:"model"`
	MaxPatchChars int    `yaml:"maxPatchChars"`
	MaxFiles      int    `yaml:"maxFiles"`
	FileGlobs     string `yaml:"fileGlobs"`
	RubricURL     string `yaml:"rubricUrl"`
}

// Load builds the Config from the environment, merges .revmob.yml overrides
// where the corresponding variable was not set, and validates the result.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("processing environment: %w", err)
	}

	if err := cfg.mergeRepoFile(repoFile); err != nil {
		return nil, err
	}

	if cfg.FileGlobs == "" {
		cfg.FileGlobs = defaultFileGlobs
	}
	if cfg.RubricURL == "" {
		cfg.RubricURL = defaultRubricURL
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeRepoFile applies overrides from the repo file. Environment variables
// win; a file value is only used when the variable is unset.
func (c *Config) mergeRepoFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var o repoOverrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if os.Getenv("PROVIDER") == "" && o.Provider != "" {
		c.Provider = o.Provider
	}
	if os.Getenv("MODEL_NAME") == "" && o.Model != "" {
		c.Model = o.Model
	}
	if os.Getenv("MAX_PATCH_CHARS") == "" && o.MaxPatchChars > 0 {
		c.MaxPatchChars = o.MaxPatchChars
	}
	if os.Getenv("MAX_FILES") == "" && o.MaxFiles > 0 {
		c.MaxFiles = o.MaxFiles
	}
	if os.Getenv("FILE_GLOBS") == "" && o.FileGlobs != "" {
		c.FileGlobs = o.FileGlobs
	}
	if os.Getenv("RUBRIC_URL") == "" && o.RubricURL != "" {
		c.RubricURL = o.RubricURL
	}
	return nil
}

// Validate reports the first missing or malformed setting.
func (c *Config) Validate() error {
	if c.Repository == "" {
		return fmt.Errorf("GITHUB_REPOSITORY is required")
	}
	if !strings.Contains(c.Repository, "/") {
		return fmt.Errorf("GITHUB_REPOSITORY must be owner/repo, got %q", c.Repository)
	}
	if c.EventPath == "" {
		return fmt.Errorf("GITHUB_EVENT_PATH is required")
	}
	if c.GithubToken == "" && !c.UseApp() {
		return fmt.Errorf("GITHUB_TOKEN or GitHub App credentials are required")
	}
	if c.MaxPatchChars <= 0 {
		return fmt.Errorf("MAX_PATCH_CHARS must be positive, got %d", c.MaxPatchChars)
	}
	if c.MaxFiles <= 0 {
		return fmt.Errorf("MAX_FILES must be positive, got %d", c.MaxFiles)
	}
	switch c.Provider {
	case "openai", "anthropic":
	default:
		return fmt.Errorf("PROVIDER must be openai or anthropic, got %q", c.Provider)
	}
	return nil
}

// UseApp reports whether GitHub App authentication is fully configured.
func (c *Config) UseApp() bool {
	return c.AppID != 0 && c.AppInstallationID != 0 && c.AppPrivateKeyPath != ""
}
