package enrich

import (
	"fmt"
	"sort"
	"strings"

	"github.com/repolens/repolens/internal/report"
)

const (
	narrativeSystemPrompt = "You are a senior engineer reviewing an unfamiliar repository. Be concrete and concise; plain text only, no markdown headings."
	jsonSystemPrompt      = "You are a senior engineer reviewing an unfamiliar repository. Always respond with valid JSON only."
)

const (
	// maxPromptPaths bounds the file listing included in a prompt.
	maxPromptPaths = 40

	// maxReadmeChars bounds the README excerpt in the summary prompt.
	maxReadmeChars = 2000

	// maxExcerptChars bounds per-file source excerpts.
	maxExcerptChars = 1500

	// maxPromptFindings bounds finding lists (debt, security issues).
	maxPromptFindings = 30

	// maxFunctionFiles is how many high-complexity files get source
	// excerpts in the function-level prompts.
	maxFunctionFiles = 3
)

// writeRepoHeader emits the shared facts block every prompt starts with.
func writeRepoHeader(b *strings.Builder, rep *report.Report) {
	fmt.Fprintf(b, "Repository: %s\n", rep.Snapshot.FullName)
	if rep.Snapshot.Description != "" {
		fmt.Fprintf(b, "Description: %s\n", rep.Snapshot.Description)
	}
	if rep.Snapshot.Language != "" {
		fmt.Fprintf(b, "Primary language: %s\n", rep.Snapshot.Language)
	}
	fmt.Fprintf(b, "Stars: %d  Forks: %d  Open issues: %d\n",
		rep.Snapshot.Stars, rep.Snapshot.Forks, rep.Snapshot.OpenIssues)
	fmt.Fprintf(b, "Contributors: %d  Commits sampled: %d  Files: %d\n",
		rep.Metrics.TotalContributors, rep.Metrics.TotalCommits, rep.Metrics.TotalFiles)

	if len(rep.Languages) > 0 {
		b.WriteString("Language breakdown (bytes): ")
		for i, lang := range sortedLanguages(rep.Languages) {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%s=%d", lang, rep.Languages[lang])
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

// sortedLanguages orders language names by byte count descending, then name,
// so prompts are stable across runs.
func sortedLanguages(langs map[string]int64) []string {
	names := make([]string, 0, len(langs))
	for name := range langs {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if langs[names[i]] != langs[names[j]] {
			return langs[names[i]] > langs[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

func buildSummaryPrompt(rep *report.Report) string {
	var b strings.Builder

	b.WriteString("Write an executive summary of this repository for an engineer deciding whether to adopt or contribute to it.\n\n")
	writeRepoHeader(&b, rep)

	if excerpt := readmeExcerpt(rep); excerpt != "" {
		b.WriteString("README (excerpt):\n")
		b.WriteString("--------\n")
		b.WriteString(excerpt)
		b.WriteString("\n--------\n\n")
	}

	fmt.Fprintf(&b, "Heuristic scores (0-100): quality=%d security=%d performance=%d debt=%d\n\n",
		rep.Metrics.QualityScore, rep.Metrics.SecurityScore,
		rep.Metrics.PerformanceScore, rep.Metrics.DebtScore)

	b.WriteString("Respond with 2-3 short paragraphs: what the project does, how mature it looks, and what stands out (good or bad).\n")
	return b.String()
}

func buildArchitecturePrompt(rep *report.Report) string {
	var b strings.Builder

	b.WriteString("Describe the architecture of this repository: major components, how they are layered, and how data flows between them.\n\n")
	writeRepoHeader(&b, rep)

	b.WriteString("File listing (partial):\n")
	b.WriteString("--------\n")
	count := 0
	for _, f := range rep.Files {
		if count >= maxPromptPaths {
			fmt.Fprintf(&b, "... and %d more files\n", len(rep.Files)-count)
			break
		}
		fmt.Fprintf(&b, "%s (%d bytes)\n", f.Path, f.Size)
		count++
	}
	b.WriteString("--------\n\n")

	if len(rep.Dependencies) > 0 {
		b.WriteString("Declared dependencies: ")
		for i, dep := range rep.Dependencies {
			if i >= maxPromptFindings {
				b.WriteString(", ...")
				break
			}
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(dep.Name)
		}
		b.WriteString("\n\n")
	}

	b.WriteString("Respond with 2-3 short paragraphs of plain text.\n")
	return b.String()
}

func buildSecurityPrompt(rep *report.Report) string {
	var b strings.Builder

	b.WriteString("Assess the security posture of this repository based on the scan findings below.\n\n")
	writeRepoHeader(&b, rep)

	if len(rep.Security) == 0 {
		b.WriteString("The heuristic scan found no issues.\n\n")
	} else {
		b.WriteString("Findings:\n")
		b.WriteString("--------\n")
		for i, issue := range rep.Security {
			if i >= maxPromptFindings {
				fmt.Fprintf(&b, "... and %d more findings\n", len(rep.Security)-i)
				break
			}
			fmt.Fprintf(&b, "[%s] %s at %s:%d\n", issue.Severity, issue.Rule, issue.File, issue.Line)
		}
		b.WriteString("--------\n\n")
	}

	fmt.Fprintf(&b, "Heuristic security score: %d/100.\n\n", rep.Metrics.SecurityScore)
	b.WriteString("Respond with one short paragraph: overall risk, the most urgent fix, and whether the findings look like true positives.\n")
	return b.String()
}

func buildRoadmapPrompt(rep *report.Report) string {
	var b strings.Builder

	b.WriteString("Propose a refactoring roadmap for this repository based on the findings below.\n\n")
	writeRepoHeader(&b, rep)

	if len(rep.Debt) > 0 {
		b.WriteString("Technical debt:\n")
		b.WriteString("--------\n")
		for i, item := range rep.Debt {
			if i >= maxPromptFindings {
				fmt.Fprintf(&b, "... and %d more items\n", len(rep.Debt)-i)
				break
			}
			fmt.Fprintf(&b, "[%s] %s:%d %s\n", item.Kind, item.File, item.Line, item.Description)
		}
		b.WriteString("--------\n\n")
	}

	if len(rep.Hotspots) > 0 {
		b.WriteString("Hotspots (highest-risk files):\n")
		for _, h := range rep.Hotspots {
			fmt.Fprintf(&b, "- %s (risk %d): %s\n", h.File, h.Score, h.Reason)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Scores (0-100): quality=%d security=%d debt=%d\n\n",
		rep.Metrics.QualityScore, rep.Metrics.SecurityScore, rep.Metrics.DebtScore)

	b.WriteString("Respond with ONLY a JSON object in this format (no markdown, no explanation):\n")
	b.WriteString(`{"roadmap": [{"title": "short action", "detail": "what and why", "priority": "high", "effort": "medium"}]}`)
	b.WriteString("\n\nRules:\n")
	b.WriteString("- 3 to 7 items, ordered most important first\n")
	b.WriteString("- priority is one of: high, medium, low\n")
	b.WriteString("- effort is one of: small, medium, large\n")
	return b.String()
}

// buildFunctionDocsPrompt returns false when no file has enough complexity
// to be worth explaining.
func buildFunctionDocsPrompt(rep *report.Report) (string, bool) {
	files := topComplexFiles(rep, maxFunctionFiles)
	if len(files) == 0 {
		return "", false
	}

	var b strings.Builder
	b.WriteString("Explain the key functions in the source excerpts below: what each does and why it matters to the codebase.\n\n")
	writeRepoHeader(&b, rep)
	writeFileExcerpts(&b, files)

	b.WriteString("Respond with ONLY a JSON object in this format (no markdown, no explanation):\n")
	b.WriteString(`{"functions": [{"name": "functionName", "file": "path/to/file", "explanation": "one or two sentences"}]}`)
	b.WriteString("\n\nRules:\n")
	b.WriteString("- Cover at most 3 functions per file, most important first\n")
	b.WriteString("- Use the exact file paths shown above\n")
	return b.String(), true
}

// buildComplexityPrompt returns false when no file has enough complexity to
// be worth estimating.
func buildComplexityPrompt(rep *report.Report) (string, bool) {
	files := topComplexFiles(rep, maxFunctionFiles)
	if len(files) == 0 {
		return "", false
	}

	var b strings.Builder
	b.WriteString("Estimate the algorithmic complexity of the main functions in the source excerpts below.\n\n")
	writeRepoHeader(&b, rep)
	writeFileExcerpts(&b, files)

	b.WriteString("Respond with ONLY a JSON object in this format (no markdown, no explanation):\n")
	b.WriteString(`{"estimates": [{"name": "functionName", "file": "path/to/file", "time": "O(n log n)", "space": "O(n)"}]}`)
	b.WriteString("\n\nRules:\n")
	b.WriteString("- Only include functions whose complexity you can actually infer from the excerpt\n")
	b.WriteString("- time and space use big-O notation\n")
	return b.String(), true
}

func writeFileExcerpts(b *strings.Builder, files []report.FileRecord) {
	for _, f := range files {
		fmt.Fprintf(b, "File: %s (heuristic complexity %d)\n", f.Path, f.Complexity)
		b.WriteString("--------\n")
		b.WriteString(truncateTo(f.Content, maxExcerptChars))
		b.WriteString("\n--------\n\n")
	}
}

// topComplexFiles picks up to n files with fetched content, ordered by
// complexity descending then path, skipping tests and trivial files.
func topComplexFiles(rep *report.Report, n int) []report.FileRecord {
	var candidates []report.FileRecord
	for _, f := range rep.Files {
		if f.Content == "" || f.IsTest || f.Complexity < 10 {
			continue
		}
		candidates = append(candidates, f)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Complexity != candidates[j].Complexity {
			return candidates[i].Complexity > candidates[j].Complexity
		}
		return candidates[i].Path < candidates[j].Path
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}

// readmeExcerpt returns the start of the repository README, if fetched.
func readmeExcerpt(rep *report.Report) string {
	for _, f := range rep.Files {
		if strings.EqualFold(f.Path, "README.md") && f.Content != "" {
			return truncateTo(f.Content, maxReadmeChars)
		}
	}
	return ""
}

func truncateTo(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "\n[truncated]"
}
