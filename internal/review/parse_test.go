package review

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseReport_ValidObject(t *testing.T) {
	content := `{
		"summary": "Solid change with minor issues.",
		"risk": "low",
		"checklist": ["Tests updated", "No hardcoded secrets"],
		"findings": [
			{
				"category": "performance",
				"severity": "medium",
				"title": "Main-thread disk read",
				"message": "SharedPreferences read on the main thread.",
				"suggestion": "Move to a coroutine.",
				"file": "app/src/main/java/Settings.kt",
				"confidence": 0.8
			}
		]
	}`

	got, err := parseReport(content)
	if err != nil {
		t.Fatalf("parseReport error: %v", err)
	}

	want := &Report{
		Summary:   "Solid change with minor issues.",
		Risk:      RiskLow,
		Checklist: []string{"Tests updated", "No hardcoded secrets"},
		Findings: []Finding{
			{
				Category:   CategoryPerformance,
				Severity:   SeverityMedium,
				Title:      "Main-thread disk read",
				Message:    "SharedPreferences read on the main thread.",
				Suggestion: "Move to a coroutine.",
				File:       "app/src/main/java/Settings.kt",
				Confidence: 0.8,
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parseReport mismatch (-want +got):\n%s", diff)
	}
}

func TestParseReport_StripsCodeFences(t *testing.T) {
	content := "```json\n{\"summary\":\"ok\",\"risk\":\"high\",\"checklist\":[],\"findings\":[]}\n```"

	got, err := parseReport(content)
	if err != nil {
		t.Fatalf("parseReport error: %v", err)
	}
	if got.Risk != RiskHigh {
		t.Errorf("Risk = %q, want %q", got.Risk, RiskHigh)
	}
	if got.Summary != "ok" {
		t.Errorf("Summary = %q, want %q", got.Summary, "ok")
	}
}

func TestParseReport_Normalization(t *testing.T) {
	content := `{
		"summary": "",
		"risk": "CRITICAL",
		"findings": [
			{"category": "styling", "severity": "blocker", "title": "t", "message": "m"}
		]
	}`

	got, err := parseReport(content)
	if err != nil {
		t.Fatalf("parseReport error: %v", err)
	}
	if got.Risk != RiskMedium {
		t.Errorf("unknown risk should default to medium, got %q", got.Risk)
	}
	if got.Summary != "No summary provided." {
		t.Errorf("empty summary should be replaced, got %q", got.Summary)
	}
	if got.Checklist == nil {
		t.Error("missing checklist should be an empty slice, not nil")
	}
	if got.Findings[0].Category != CategoryCorrectness {
		t.Errorf("unknown category should default to correctness, got %q", got.Findings[0].Category)
	}
	if got.Findings[0].Severity != SeverityMedium {
		t.Errorf("unknown severity should default to medium, got %q", got.Findings[0].Severity)
	}
}

func TestParseReport_InvalidJSON(t *testing.T) {
	_, err := parseReport("The change looks fine to me!")
	if err == nil {
		t.Fatal("Expected error for non-JSON content")
	}
	if !strings.Contains(err.Error(), "invalid JSON object") {
		t.Errorf("error = %v, want invalid JSON object", err)
	}
}

func TestRiskRank(t *testing.T) {
	if RiskRank(RiskHigh) <= RiskRank(RiskMedium) {
		t.Error("high should outrank medium")
	}
	if RiskRank(RiskMedium) <= RiskRank(RiskLow) {
		t.Error("medium should outrank low")
	}
	if RiskRank(Risk("bogus")) != 0 {
		t.Error("unknown risk should rank 0")
	}
}

func TestSeverityRank(t *testing.T) {
	if SeverityRank(SeverityHigh) <= SeverityRank(SeverityMedium) {
		t.Error("high should outrank medium")
	}
	if SeverityRank(SeverityMedium) <= SeverityRank(SeverityLow) {
		t.Error("medium should outrank low")
	}
}
