package filter

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// File describes one changed file in a pull request.
type File struct {
	Path      string
	Status    string
	Additions int
	Deletions int
	Patch     string
}

// ignorePatterns drop files that are never worth an LLM's attention:
// generated output, dependency trees, lockfiles, binary assets, IDE state.
var ignorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(^|/)(dist|build|outputs|out|coverage|node_modules|Pods|vendor|\.git)/`),
	regexp.MustCompile(`(?i)(^|/)DerivedData/`),
	regexp.MustCompile(`(?i)\.(min\.js|lock|png|jpg|jpeg|gif|svg|ico|pdf|zip|gz|tgz|jar|aab|apk|mp3|mp4|mov|webm|woff2?)$`),
	regexp.MustCompile(`(?i)(^|/)(package-lock\.json|yarn\.lock|pnpm-lock\.yaml|composer\.lock)$`),
	regexp.MustCompile(`(?i)(^|/)(\.gradle/|\.idea/|\.vs/)`),
}

// Filter applies glob and ignore rules to changed files and trims patches.
type Filter struct {
	globRe        *regexp.Regexp
	maxFiles      int
	maxPatchChars int
}

// New compiles the comma-separated glob list into a Filter.
// An empty glob list is a configuration error.
func New(globs string, maxFiles, maxPatchChars int) (*Filter, error) {
	re, err := compileGlobs(globs)
	if err != nil {
		return nil, err
	}
	return &Filter{
		globRe:        re,
		maxFiles:      maxFiles,
		maxPatchChars: maxPatchChars,
	}, nil
}

// compileGlobs converts a comma-separated glob list into a single
// case-insensitive regexp anchored at the end of the path,
// e.g. "*.kt,*.swift" -> (?i)(.*\.kt|.*\.swift)$.
func compileGlobs(globs string) (*regexp.Regexp, error) {
	var parts []string
	for _, p := range strings.Split(globs, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		escaped := strings.ReplaceAll(regexp.QuoteMeta(p), `\*`, `.*`)
		parts = append(parts, escaped)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("glob list %q contains no patterns", globs)
	}
	re, err := regexp.Compile(`(?i)(` + strings.Join(parts, "|") + `)$`)
	if err != nil {
		return nil, fmt.Errorf("compiling glob list %q: %w", globs, err)
	}
	return re, nil
}

// Ignored reports whether a path should be skipped entirely.
func (f *Filter) Ignored(path string) bool {
	for _, pat := range ignorePatterns {
		if pat.MatchString(path) {
			return true
		}
	}
	return !f.globRe.MatchString(path)
}

// Apply returns the reviewable subset of files in original order, with each
// patch trimmed to the configured budget. Files whose trimmed patch is empty
// (binary, rename-only) are skipped. The result is capped at maxFiles.
// An empty result is a valid outcome: nothing to review.
func (f *Filter) Apply(files []File) []File {
	var kept []File
	for _, file := range files {
		if f.Ignored(file.Path) {
			continue
		}
		patch := TrimPatch(file.Patch, f.maxPatchChars)
		if strings.TrimSpace(patch) == "" {
			continue
		}
		file.Patch = patch
		kept = append(kept, file)
		if f.maxFiles > 0 && len(kept) >= f.maxFiles {
			break
		}
	}
	return kept
}

// TruncationMarker is appended to patches cut at the character budget.
const TruncationMarker = "\n... (patch truncated at max-patch-chars limit)"

// maxLineChars bounds individual patch lines; minified or generated lines
// past this length carry no review signal.
const maxLineChars = 2000

// TrimPatch truncates a patch to maxChars of original content, appending
// TruncationMarker when the cut happened. Overlong individual lines are
// trimmed with their own marker. Patches at or under the cap with no long
// lines are returned unchanged.
func TrimPatch(patch string, maxChars int) string {
	if patch == "" {
		return ""
	}
	truncated := false
	if maxChars > 0 && len(patch) > maxChars {
		// Never split a multi-byte rune at the cap.
		cut := maxChars
		for cut > 0 && !utf8.RuneStart(patch[cut]) {
			cut--
		}
		patch = patch[:cut]
		truncated = true
	}
	lines := strings.Split(patch, "\n")
	for i, line := range lines {
		if len(line) > maxLineChars {
			cut := maxLineChars
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}
			lines[i] = line[:cut] + " ...(line trimmed)"
		}
	}
	out := strings.Join(lines, "\n")
	if truncated {
		out += TruncationMarker
	}
	return out
}
