package mcpserver

import (
	"testing"
)

func FuzzBuildRequest(f *testing.F) {
	f.Add("owner/name")
	f.Add("")
	f.Add("https://github.com/owner/name")
	f.Add("git@github.com:owner/name.git")
	f.Add("a/b/c")
	f.Add("owner/")
	f.Add("\x00")
	f.Add(";;;")

	f.Fuzz(func(t *testing.T, repo string) {
		req, err := buildRequest(AnalyzeInput{Repo: repo})
		if err != nil {
			return
		}
		if req.Ref != repo {
			t.Errorf("accepted reference was rewritten: got %q, want %q", req.Ref, repo)
		}
	})
}
