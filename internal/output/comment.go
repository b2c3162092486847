package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/revmob/internal/review"
)

const (
	header = "### 🤖 AI Mobile PR Review\n"
	footer = "\n---\n_This is an automated mobile-focused review. Please verify suggestions before applying._\n"
)

// categoryOrder fixes the section order in the comment.
var categoryOrder = []review.Category{
	review.CategoryCorrectness,
	review.CategorySecurity,
	review.CategoryPerformance,
	review.CategoryTesting,
	review.CategoryReadability,
}

// Comment renders the full PR comment body for a report.
func Comment(r *review.Report) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")

	fmt.Fprintf(&b, "**Risk:** %s %s | **Files reviewed:** %d | **Model:** `%s`\n\n",
		riskIcon(r.Risk), strings.ToUpper(string(r.Risk)), len(r.FilesReviewed), r.Model)

	b.WriteString(r.Summary)
	b.WriteString("\n\n")

	if len(r.Findings) == 0 {
		b.WriteString("No issues found. :white_check_mark:\n")
	} else {
		writeFindings(&b, r.Findings)
	}

	if len(r.Checklist) > 0 {
		b.WriteString("#### Checklist\n\n")
		for _, item := range r.Checklist {
			fmt.Fprintf(&b, "- [ ] %s\n", item)
		}
		b.WriteString("\n")
	}

	b.WriteString(footer)
	return b.String()
}

func writeFindings(b *strings.Builder, findings []review.Finding) {
	grouped := make(map[review.Category][]review.Finding)
	for _, f := range findings {
		grouped[f.Category] = append(grouped[f.Category], f)
	}

	for _, cat := range categoryOrder {
		group := grouped[cat]
		if len(group) == 0 {
			continue
		}

		// Most severe first, then by file path
		sort.SliceStable(group, func(i, j int) bool {
			ri, rj := review.SeverityRank(group[i].Severity), review.SeverityRank(group[j].Severity)
			if ri != rj {
				return ri > rj
			}
			return group[i].File < group[j].File
		})

		fmt.Fprintf(b, "#### %s (%d)\n\n", titleCase(string(cat)), len(group))
		for _, f := range group {
			fmt.Fprintf(b, "- %s **%s**", severityIcon(f.Severity), f.Title)
			if f.File != "" {
				fmt.Fprintf(b, " — `%s`", f.File)
			}
			b.WriteString("\n")
			if f.Message != "" {
				fmt.Fprintf(b, "  %s\n", strings.ReplaceAll(f.Message, "\n", "\n  "))
			}
			if f.Suggestion != "" {
				fmt.Fprintf(b, "  _Suggestion:_ %s\n", strings.ReplaceAll(f.Suggestion, "\n", "\n  "))
			}
		}
		b.WriteString("\n")
	}
}

// NoEligibleFilesComment is posted when filtering leaves nothing to review.
func NoEligibleFilesComment() string {
	return "🤖 **AI Mobile PR Review**: No eligible text diffs to review (binary/ignored/empty)."
}

func riskIcon(r review.Risk) string {
	switch r {
	case review.RiskHigh:
		return ":red_circle:"
	case review.RiskMedium:
		return ":orange_circle:"
	case review.RiskLow:
		return ":green_circle:"
	default:
		return ":white_circle:"
	}
}

func severityIcon(s review.Severity) string {
	switch s {
	case review.SeverityHigh:
		return ":red_circle:"
	case review.SeverityMedium:
		return ":orange_circle:"
	case review.SeverityLow:
		return ":yellow_circle:"
	default:
		return ":white_circle:"
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
