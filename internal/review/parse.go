package review

import (
	"encoding/json"
	"fmt"
	"strings"
)

// rawReport is the JSON object returned by the LLM.
type rawReport struct {
	Summary   string   `json:"summary"`
	Risk      string   `json:"risk"`
	Checklist []string `json:"checklist"`
	Findings  []struct {
		Category   string  `json:"category"`
		Severity   string  `json:"severity"`
		Title      string  `json:"title"`
		Message    string  `json:"message"`
		Suggestion string  `json:"suggestion"`
		File       string  `json:"file"`
		Confidence float64 `json:"confidence"`
	} `json:"findings"`
}

func parseReport(content string) (*Report, error) {
	content = strings.TrimSpace(content)

	// Strip markdown code fences if present
	if strings.HasPrefix(content, "```") {
		lines := strings.Split(content, "\n")
		if len(lines) >= 2 {
			start := 1
			end := len(lines)
			if strings.TrimSpace(lines[end-1]) == "```" {
				end = end - 1
			}
			content = strings.Join(lines[start:end], "\n")
		}
	}

	var raw rawReport
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON object: %w", err)
	}

	report := &Report{
		Summary:   strings.TrimSpace(raw.Summary),
		Risk:      normalizeRisk(raw.Risk),
		Checklist: raw.Checklist,
	}
	if report.Summary == "" {
		report.Summary = "No summary provided."
	}
	if report.Checklist == nil {
		report.Checklist = []string{}
	}

	report.Findings = make([]Finding, 0, len(raw.Findings))
	for _, f := range raw.Findings {
		report.Findings = append(report.Findings, Finding{
			Category:   normalizeCategory(f.Category),
			Severity:   normalizeSeverity(f.Severity),
			Title:      f.Title,
			Message:    f.Message,
			Suggestion: f.Suggestion,
			File:       f.File,
			Confidence: f.Confidence,
		})
	}

	return report, nil
}

func normalizeRisk(s string) Risk {
	switch Risk(strings.ToLower(strings.TrimSpace(s))) {
	case RiskLow:
		return RiskLow
	case RiskHigh:
		return RiskHigh
	default:
		return RiskMedium
	}
}

func normalizeSeverity(s string) Severity {
	switch Severity(strings.ToLower(strings.TrimSpace(s))) {
	case SeverityLow:
		return SeverityLow
	case SeverityHigh:
		return SeverityHigh
	default:
		return SeverityMedium
	}
}

func normalizeCategory(s string) Category {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryPerformance:
		return CategoryPerformance
	case CategorySecurity:
		return CategorySecurity
	case CategoryReadability:
		return CategoryReadability
	case CategoryTesting:
		return CategoryTesting
	default:
		return CategoryCorrectness
	}
}
