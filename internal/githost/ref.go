// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

package githost

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5"
)

// Ref identifies a repository on the host. Immutable once parsed.
type Ref struct {
	Owner string
	Name  string
}

func (r Ref) String() string { return r.Owner + "/" + r.Name }

// sshRemotePattern matches git@github.com:owner/repo.git SSH URLs.
var sshRemotePattern = regexp.MustCompile(`^git@github\.com:([^/]+)/([^/]+?)(?:\.git)?$`)

// refSegmentPattern matches a single owner or repo segment in shorthand form.
var refSegmentPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// ParseRef parses a repository reference in "owner/name" shorthand or as an
// HTTPS/SSH GitHub URL. It is pure: no filesystem or network access, so it
// is safe to call on untrusted input from HTTP handlers.
func ParseRef(input string) (Ref, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return Ref{}, fmt.Errorf("empty repository reference")
	}

	if m := sshRemotePattern.FindStringSubmatch(s); m != nil {
		return Ref{Owner: m[1], Name: m[2]}, nil
	}

	if strings.Contains(s, "://") || strings.HasPrefix(s, "github.com/") {
		return parseHostURL(s)
	}

	parts := strings.Split(s, "/")
	if len(parts) == 2 && refSegmentPattern.MatchString(parts[0]) && refSegmentPattern.MatchString(parts[1]) {
		return Ref{Owner: parts[0], Name: strings.TrimSuffix(parts[1], ".git")}, nil
	}

	return Ref{}, fmt.Errorf("cannot parse repository reference %q: want owner/name or a GitHub URL", input)
}

// ResolveRef is ParseRef plus a local fallback: when input does not parse as
// a reference, it is treated as a directory and the origin remote of the git
// repository there is parsed instead. CLI-only; servers use ParseRef.
func ResolveRef(input string) (Ref, error) {
	ref, err := ParseRef(input)
	if err == nil {
		return ref, nil
	}

	ref, localErr := refFromLocalRepo(input)
	if localErr != nil {
		return Ref{}, fmt.Errorf("%w (also tried as local repository: %v)", err, localErr)
	}
	return ref, nil
}

// parseHostURL parses an HTTPS GitHub URL into a Ref.
func parseHostURL(raw string) (Ref, error) {
	if strings.HasPrefix(raw, "github.com/") {
		raw = "https://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return Ref{}, fmt.Errorf("parsing URL %q: %w", raw, err)
	}
	if parsed.Host != "github.com" {
		return Ref{}, fmt.Errorf("remote %q is not a GitHub URL", raw)
	}

	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Ref{}, fmt.Errorf("cannot parse owner/name from %q", raw)
	}
	return Ref{Owner: parts[0], Name: strings.TrimSuffix(parts[1], ".git")}, nil
}

// refFromLocalRepo extracts the Ref from the origin remote of a local git
// repository. Supports HTTPS and SSH remote formats.
func refFromLocalRepo(path string) (Ref, error) {
	gitRepo, err := git.PlainOpen(path)
	if err != nil {
		return Ref{}, fmt.Errorf("opening repo: %w", err)
	}

	remotes, err := gitRepo.Remotes()
	if err != nil {
		return Ref{}, fmt.Errorf("listing remotes: %w", err)
	}

	var originURLs []string
	for _, r := range remotes {
		if r.Config().Name == "origin" {
			originURLs = r.Config().URLs
			break
		}
	}
	if len(originURLs) == 0 {
		return Ref{}, fmt.Errorf("no origin remote found")
	}

	raw := originURLs[0]
	if m := sshRemotePattern.FindStringSubmatch(raw); m != nil {
		return Ref{Owner: m[1], Name: m[2]}, nil
	}
	return parseHostURL(raw)
}
