package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/revmob/internal/review"
)

func sampleReport() *review.Report {
	return &review.Report{
		Summary:   "Mostly solid, one lifecycle concern.",
		Risk:      review.RiskMedium,
		Checklist: []string{"Verify rotation handling", "Add UI test for login"},
		Findings: []review.Finding{
			{
				Category:   review.CategoryCorrectness,
				Severity:   review.SeverityLow,
				Title:      "Nullable force unwrap",
				Message:    "Force unwrapping user may crash on logout.",
				File:       "ios/Login.swift",
				Confidence: 0.7,
			},
			{
				Category:   review.CategoryCorrectness,
				Severity:   review.SeverityHigh,
				Title:      "Leaked listener",
				Message:    "Listener registered in onCreate is never removed.",
				Suggestion: "Unregister in onDestroy.",
				File:       "app/Main.kt",
				Confidence: 0.9,
			},
			{
				Category:   review.CategorySecurity,
				Severity:   review.SeverityMedium,
				Title:      "Cleartext traffic allowed",
				File:       "app/AndroidManifest.xml",
				Confidence: 0.8,
			},
		},
		Model:         "gpt-4o-mini",
		Provider:      "openai",
		FilesReviewed: []string{"app/Main.kt", "ios/Login.swift", "app/AndroidManifest.xml"},
	}
}

func TestComment(t *testing.T) {
	body := Comment(sampleReport())

	for _, want := range []string{
		"### 🤖 AI Mobile PR Review",
		"**Risk:** :orange_circle: MEDIUM",
		"**Files reviewed:** 3",
		"`gpt-4o-mini`",
		"Mostly solid, one lifecycle concern.",
		"#### Correctness (2)",
		"#### Security (1)",
		"**Leaked listener**",
		"`app/Main.kt`",
		"_Suggestion:_ Unregister in onDestroy.",
		"- [ ] Verify rotation handling",
		"_This is an automated mobile-focused review. Please verify suggestions before applying._",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Comment missing %q\nbody:\n%s", want, body)
		}
	}

	// High severity listed before low within the category
	high := strings.Index(body, "Leaked listener")
	low := strings.Index(body, "Nullable force unwrap")
	if high == -1 || low == -1 || high > low {
		t.Error("findings should be ordered by severity within a category")
	}
}

func TestComment_NoFindings(t *testing.T) {
	r := &review.Report{
		Summary:       "Looks good.",
		Risk:          review.RiskLow,
		Checklist:     []string{},
		Findings:      []review.Finding{},
		Model:         "gpt-4o-mini",
		FilesReviewed: []string{"app/Main.kt"},
	}
	body := Comment(r)
	if !strings.Contains(body, "No issues found.") {
		t.Errorf("expected no-issues marker, got:\n%s", body)
	}
	if strings.Contains(body, "#### Checklist") {
		t.Error("empty checklist should not render a section")
	}
}

func TestNoEligibleFilesComment(t *testing.T) {
	got := NoEligibleFilesComment()
	if !strings.Contains(got, "No eligible text diffs to review") {
		t.Errorf("unexpected comment: %q", got)
	}
}

func TestWriteJobSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.md")
	t.Setenv("GITHUB_STEP_SUMMARY", path)

	if err := WriteJobSummary("first"); err != nil {
		t.Fatalf("WriteJobSummary error: %v", err)
	}
	if err := WriteJobSummary("second"); err != nil {
		t.Fatalf("WriteJobSummary error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if got, want := string(data), "first\nsecond\n"; got != want {
		t.Errorf("summary content = %q, want %q", got, want)
	}
}

func TestWriteJobSummary_Unset(t *testing.T) {
	t.Setenv("GITHUB_STEP_SUMMARY", "")
	if err := WriteJobSummary("ignored"); err != nil {
		t.Errorf("WriteJobSummary with unset env should be a no-op, got %v", err)
	}
}
