package heuristics

import (
	"regexp"
	"strings"

	"github.com/repolens/repolens/internal/report"
)

// loopPattern matches loop statement starts.
var loopPattern = regexp.MustCompile(`\b(?:for|while)\b`)

// sleepPattern matches blocking sleep calls across common runtimes.
var sleepPattern = regexp.MustCompile(`\b(?:time\.Sleep|sleep|Thread\.sleep|usleep)\s*\(`)

// nestedLoopWindow is how many lines below a loop line to look for a deeper
// nested loop.
const nestedLoopWindow = 10

// ScanPerformance flags loop nests and blocking sleeps inside loops.
// Advisory findings only; order follows line order.
func ScanPerformance(path, content string) []report.PerfNote {
	lines := strings.Split(content, "\n")
	var notes []report.PerfNote

	for i, line := range lines {
		if !loopPattern.MatchString(line) || commentLinePattern.MatchString(line) {
			continue
		}
		indent := leadingSpaces(line)

		for j := i + 1; j < len(lines) && j <= i+nestedLoopWindow; j++ {
			inner := lines[j]
			if strings.TrimSpace(inner) == "" || commentLinePattern.MatchString(inner) {
				continue
			}
			if leadingSpaces(inner) <= indent {
				break
			}
			if loopPattern.MatchString(inner) {
				notes = append(notes, report.PerfNote{
					Kind:        "nested-loop",
					File:        path,
					Line:        i + 1,
					Description: "nested loop; check the inner body's cost against expected input sizes",
				})
				break
			}
			if sleepPattern.MatchString(inner) {
				notes = append(notes, report.PerfNote{
					Kind:        "sleep-in-loop",
					File:        path,
					Line:        j + 1,
					Description: "blocking sleep inside a loop",
				})
				break
			}
		}
	}
	return notes
}
