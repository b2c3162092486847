package output

import (
	"fmt"
	"os"
)

// WriteJobSummary appends markdown to the workflow job summary file. It is a
// no-op outside GitHub Actions where GITHUB_STEP_SUMMARY is unset.
func WriteJobSummary(md string) error {
	path := os.Getenv("GITHUB_STEP_SUMMARY")
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening job summary: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(md + "\n"); err != nil {
		return fmt.Errorf("writing job summary: %w", err)
	}
	return nil
}
