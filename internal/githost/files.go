package githost

import (
	"path"
	"sort"
	"strings"

	"github.com/repolens/repolens/internal/report"
)

// skipDirs are tree prefixes that never contribute analysis signal:
// vendored dependencies, build output, and VCS bookkeeping.
var skipDirs = []string{
	".git/",
	"vendor/",
	"node_modules/",
	"dist/",
	"build/",
	"target/",
	".next/",
	"__pycache__/",
	".idea/",
	".vscode/",
}

// manifestNames are dependency manifests. They always rank first for content
// fetching so the dependency report can be built.
var manifestNames = map[string]bool{
	"go.mod":       true,
	"package.json": true,
	"Cargo.toml":   true,
}

// Content-fetch priority tiers, lower fetches first.
const (
	tierManifest = iota // manifests and the README
	tierCode            // source files
	tierConfig          // config and infra files
	tierDoc             // documentation
)

// codeExtensions maps source extensions to display language names. Also the
// content-fetch allow-list for tierCode.
var codeExtensions = map[string]string{
	".go":    "Go",
	".ts":    "TypeScript",
	".tsx":   "TypeScript",
	".js":    "JavaScript",
	".jsx":   "JavaScript",
	".mjs":   "JavaScript",
	".py":    "Python",
	".rb":    "Ruby",
	".rs":    "Rust",
	".java":  "Java",
	".kt":    "Kotlin",
	".c":     "C",
	".h":     "C",
	".cpp":   "C++",
	".cc":    "C++",
	".hpp":   "C++",
	".cs":    "C#",
	".php":   "PHP",
	".swift": "Swift",
	".scala": "Scala",
	".sh":    "Shell",
	".bash":  "Shell",
	".sql":   "SQL",
}

// configExtensions are fetched at tierConfig.
var configExtensions = map[string]string{
	".yaml": "YAML",
	".yml":  "YAML",
	".toml": "TOML",
	".json": "JSON",
}

// otherExtensions are listed with a language but never fetched.
var otherExtensions = map[string]string{
	".md":   "Markdown",
	".html": "HTML",
	".css":  "CSS",
	".scss": "CSS",
	".xml":  "XML",
	".txt":  "Text",
}

// languageFor returns a display language for a path, or "".
func languageFor(p string) string {
	base := path.Base(p)
	switch base {
	case "Dockerfile":
		return "Dockerfile"
	case "Makefile":
		return "Makefile"
	case "go.mod", "go.sum":
		return "Go Module"
	}

	ext := strings.ToLower(path.Ext(p))
	if lang, ok := codeExtensions[ext]; ok {
		return lang
	}
	if lang, ok := configExtensions[ext]; ok {
		return lang
	}
	if lang, ok := otherExtensions[ext]; ok {
		return lang
	}
	return ""
}

// skipPath reports whether a tree path lives under a noise directory.
func skipPath(p string) bool {
	for _, dir := range skipDirs {
		if strings.HasPrefix(p, dir) || strings.Contains(p, "/"+dir) {
			return true
		}
	}
	return false
}

// isTestPath reports whether a path looks like a test file by naming
// convention across common ecosystems.
func isTestPath(p string) bool {
	base := strings.ToLower(path.Base(p))
	if strings.Contains(base, "_test.") || strings.Contains(base, ".test.") || strings.Contains(base, ".spec.") {
		return true
	}
	lower := strings.ToLower(p)
	for _, dir := range []string{"test/", "tests/", "__tests__/", "spec/"} {
		if strings.HasPrefix(lower, dir) || strings.Contains(lower, "/"+dir) {
			return true
		}
	}
	return false
}

// contentTier returns the fetch tier for a path, or -1 when the file should
// never be fetched (unknown extension, lock files, minified bundles).
func contentTier(p string) int {
	base := path.Base(p)
	if manifestNames[base] || strings.EqualFold(base, "readme.md") {
		return tierManifest
	}
	if strings.HasSuffix(base, ".lock") || strings.Contains(base, ".min.") || base == "package-lock.json" || base == "go.sum" {
		return -1
	}

	ext := strings.ToLower(path.Ext(p))
	if _, ok := codeExtensions[ext]; ok {
		return tierCode
	}
	if _, ok := configExtensions[ext]; ok {
		return tierConfig
	}
	if ext == ".md" {
		return tierDoc
	}
	return -1
}

// selectForContent picks which files get content, returning indexes into
// files. Selection is deterministic: manifests and the README first, then
// source files largest-first (bigger files carry more of the repository's
// logic), then config, then docs, capped at maxFiles. Files over the size
// ceiling are never fetched.
func selectForContent(files []report.FileRecord, maxFiles int, maxFileSize int64) []int {
	type candidate struct {
		idx  int
		tier int
	}

	var candidates []candidate
	for i, f := range files {
		if f.Size > maxFileSize || f.Size == 0 {
			continue
		}
		tier := contentTier(f.Path)
		if tier < 0 {
			continue
		}
		candidates = append(candidates, candidate{idx: i, tier: tier})
	}

	sort.Slice(candidates, func(a, b int) bool {
		ca, cb := candidates[a], candidates[b]
		if ca.tier != cb.tier {
			return ca.tier < cb.tier
		}
		if files[ca.idx].Size != files[cb.idx].Size {
			return files[ca.idx].Size > files[cb.idx].Size
		}
		return files[ca.idx].Path < files[cb.idx].Path
	})

	if len(candidates) > maxFiles {
		candidates = candidates[:maxFiles]
	}

	out := make([]int, len(candidates))
	for i, c := range candidates {
		out[i] = c.idx
	}
	return out
}
