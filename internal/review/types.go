package review

// Risk is the overall release risk the model assigns to the PR.
type Risk string

const (
	RiskLow    Risk = "low"
	RiskMedium Risk = "medium"
	RiskHigh   Risk = "high"
)

// RiskRank returns a numeric rank for sorting (higher = riskier).
func RiskRank(r Risk) int {
	switch r {
	case RiskHigh:
		return 3
	case RiskMedium:
		return 2
	case RiskLow:
		return 1
	default:
		return 0
	}
}

// Severity represents the severity level of a finding.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// SeverityRank returns a numeric rank for sorting (higher = more severe).
func SeverityRank(s Severity) int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Category represents the type of finding.
type Category string

const (
	CategoryCorrectness Category = "correctness"
	CategoryPerformance Category = "performance"
	CategorySecurity    Category = "security"
	CategoryReadability Category = "readability"
	CategoryTesting     Category = "testing"
)

// Finding represents a single code review finding.
type Finding struct {
	Category   Category `json:"category"`
	Severity   Severity `json:"severity"`
	Title      string   `json:"title"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
	File       string   `json:"file,omitempty"`
	Confidence float64  `json:"confidence"`
}

// Report is the complete outcome of one review run.
type Report struct {
	Summary       string    `json:"summary"`
	Risk          Risk      `json:"risk"`
	Checklist     []string  `json:"checklist"`
	Findings      []Finding `json:"findings"`
	Provider      string    `json:"provider"`
	Model         string    `json:"model"`
	TokensUsed    int       `json:"tokensUsed"`
	FilesReviewed []string  `json:"filesReviewed"`
}
