// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

// Package report defines the analysis report data model. The Report struct
// is the sole artifact handed to callers; everything else in the pipeline
// exists to fill it in.
package report

import "time"

// Snapshot captures repository metadata at analysis time. Produced once per
// run and treated as read-only afterwards.
type Snapshot struct {
	FullName      string     `json:"full_name"`
	Description   string     `json:"description,omitempty"`
	Language      string     `json:"language,omitempty"` // primary language per the host
	Stars         int        `json:"stars"`
	Forks         int        `json:"forks"`
	Watchers      int        `json:"watchers"`
	OpenIssues    int        `json:"open_issues"`
	DefaultBranch string     `json:"default_branch"`
	SizeKB        int        `json:"size_kb"`
	License       string     `json:"license,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	PushedAt      *time.Time `json:"pushed_at,omitempty"`
}

// Contributor is one entry in the repository's contributor list, ordered by
// contribution count descending as returned by the host.
type Contributor struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
	AvatarURL     string `json:"avatar_url,omitempty"`
	Type          string `json:"type,omitempty"` // "User" or "Bot"
}

// Commit is a single commit from the default (or requested) branch,
// most-recent-first.
type Commit struct {
	SHA     string    `json:"sha"`
	Message string    `json:"message"`
	Author  string    `json:"author,omitempty"`
	Email   string    `json:"email,omitempty"`
	Date    time.Time `json:"date"`
}

// FileRecord describes one file in the repository tree. Content is only
// populated for the bounded subset selected for deep analysis; Complexity is
// only computed when content was fetched.
type FileRecord struct {
	Path       string `json:"path"`
	Size       int64  `json:"size"`
	Language   string `json:"language,omitempty"`
	Content    string `json:"content,omitempty"`
	Complexity int    `json:"complexity,omitempty"` // 0-100 heuristic score
	IsTest     bool   `json:"is_test,omitempty"`
}

// Severity levels for security findings.
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// SecurityIssue is a heuristic security finding. It never carries the
// matched source line, which for secret findings would reproduce the
// secret in the report.
type SecurityIssue struct {
	Rule        string `json:"rule"`
	Severity    string `json:"severity"`
	File        string `json:"file"`
	Line        int    `json:"line,omitempty"`
	Description string `json:"description"`
}

// Debt kinds.
const (
	DebtComplexity  = "complexity"
	DebtSmell       = "smell"
	DebtDuplication = "duplication"
)

// DebtItem is a single technical-debt finding.
type DebtItem struct {
	Kind        string `json:"kind"`
	File        string `json:"file"`
	Line        int    `json:"line,omitempty"`
	Description string `json:"description"`
}

// APIEndpoint is a route registration detected in source text.
type APIEndpoint struct {
	Method string   `json:"method"`
	Path   string   `json:"path"`
	File   string   `json:"file"`
	Line   int      `json:"line,omitempty"`
	Params []string `json:"params,omitempty"` // :name path parameters
}

// PerfNote flags a pattern that tends to cost at runtime (nested loops,
// blocking calls inside loops). Advisory only.
type PerfNote struct {
	Kind        string `json:"kind"`
	File        string `json:"file"`
	Line        int    `json:"line,omitempty"`
	Description string `json:"description"`
}

// Hotspot marks a file that concentrates risk: large, complex, or both.
type Hotspot struct {
	File       string `json:"file"`
	Score      int    `json:"score"` // 0-100
	Complexity int    `json:"complexity"`
	Size       int64  `json:"size"`
	Reason     string `json:"reason"`
}

// Dependency is one entry from a dependency manifest found in the tree.
type Dependency struct {
	Name      string `json:"name"`
	Version   string `json:"version,omitempty"`
	Ecosystem string `json:"ecosystem"` // "go", "cargo", "npm"
	Dev       bool   `json:"dev,omitempty"`
}

// Metrics holds the aggregate numbers derived from the fetched data. All
// score fields are 0-100, higher is better.
type Metrics struct {
	TotalCommits      int `json:"total_commits"`
	TotalContributors int `json:"total_contributors"`
	TotalFiles        int `json:"total_files"`
	LinesOfCode       int `json:"lines_of_code"`
	BusFactor         int `json:"bus_factor"`
	TestCoverage      int `json:"test_coverage"` // estimated percentage
	QualityScore      int `json:"quality_score"`
	SecurityScore     int `json:"security_score"`
	PerformanceScore  int `json:"performance_score"`
	DebtScore         int `json:"debt_score"`
}

// RoadmapItem is one step of a generated refactoring roadmap.
type RoadmapItem struct {
	Title    string `json:"title"`
	Detail   string `json:"detail,omitempty"`
	Priority string `json:"priority,omitempty"` // "high", "medium", "low"
	Effort   string `json:"effort,omitempty"`
}

// FunctionDoc is a generated explanation of a notable function.
type FunctionDoc struct {
	Name        string `json:"name"`
	File        string `json:"file,omitempty"`
	Explanation string `json:"explanation"`
}

// ComplexityEstimate is a generated big-O estimate for a notable function.
type ComplexityEstimate struct {
	Name  string `json:"name"`
	File  string `json:"file,omitempty"`
	Time  string `json:"time"`
	Space string `json:"space,omitempty"`
}

// Enrichment holds generative-text additions. Every field is optional: an
// absent field means the enrichment was skipped or failed, which is never an
// error at the report level.
type Enrichment struct {
	Provider            string               `json:"provider,omitempty"`
	Model               string               `json:"model,omitempty"`
	Summary             string               `json:"summary,omitempty"`
	Architecture        string               `json:"architecture,omitempty"`
	SecurityNarrative   string               `json:"security_narrative,omitempty"`
	Roadmap             []RoadmapItem        `json:"roadmap,omitempty"`
	Functions           []FunctionDoc        `json:"functions,omitempty"`
	ComplexityEstimates []ComplexityEstimate `json:"complexity_estimates,omitempty"`
}

// Report is the complete analysis result for one repository. Constructed
// exactly once per successful run.
type Report struct {
	Ref          string           `json:"ref"` // "owner/name"
	GeneratedAt  time.Time        `json:"generated_at"`
	Snapshot     Snapshot         `json:"snapshot"`
	Languages    map[string]int64 `json:"languages,omitempty"` // bytes per language
	Contributors []Contributor    `json:"contributors"`
	Commits      []Commit         `json:"commits"`
	Files        []FileRecord     `json:"files,omitempty"`
	Dependencies []Dependency     `json:"dependencies,omitempty"`
	Security     []SecurityIssue  `json:"security,omitempty"`
	Debt         []DebtItem       `json:"debt,omitempty"`
	Endpoints    []APIEndpoint    `json:"endpoints,omitempty"`
	PerfNotes    []PerfNote       `json:"perf_notes,omitempty"`
	Hotspots     []Hotspot        `json:"hotspots,omitempty"`
	Metrics      Metrics          `json:"metrics"`
	Enrichment   *Enrichment      `json:"enrichment,omitempty"`
}
