// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

// Package manifest extracts declared dependencies from manifest files found
// among fetched repository contents. It understands go.mod, package.json,
// and Cargo.toml at the repository root.
package manifest

import (
	"encoding/json"
	"log/slog"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/modfile"

	"github.com/repolens/repolens/internal/report"
)

// Parse scans fetched files for root-level dependency manifests and returns
// the dependencies they declare, ordered by ecosystem then name. Manifests
// that fail to parse are logged and skipped; a repository without any known
// manifest yields nil.
func Parse(files []report.FileRecord) []report.Dependency {
	var deps []report.Dependency
	for _, f := range files {
		if f.Content == "" {
			continue
		}
		switch f.Path {
		case "go.mod":
			deps = append(deps, parseGoMod([]byte(f.Content))...)
		case "package.json":
			deps = append(deps, parsePackageJSON([]byte(f.Content))...)
		case "Cargo.toml":
			deps = append(deps, parseCargoTOML([]byte(f.Content))...)
		}
	}

	sort.Slice(deps, func(i, j int) bool {
		if deps[i].Ecosystem != deps[j].Ecosystem {
			return deps[i].Ecosystem < deps[j].Ecosystem
		}
		if deps[i].Name != deps[j].Name {
			return deps[i].Name < deps[j].Name
		}
		return !deps[i].Dev && deps[j].Dev
	})
	return deps
}

// parseGoMod extracts direct requirements from a go.mod file. Indirect
// requirements are transitive and not reported.
func parseGoMod(data []byte) []report.Dependency {
	f, err := modfile.Parse("go.mod", data, nil)
	if err != nil {
		slog.Warn("manifest: parsing go.mod", "error", err)
		return nil
	}

	var deps []report.Dependency
	for _, req := range f.Require {
		if req.Indirect {
			continue
		}
		deps = append(deps, report.Dependency{
			Name:      req.Mod.Path,
			Version:   req.Mod.Version,
			Ecosystem: "go",
		})
	}
	return deps
}

// npmManifest is the subset of package.json fields we need.
type npmManifest struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

func parsePackageJSON(data []byte) []report.Dependency {
	var pkg npmManifest
	if err := json.Unmarshal(data, &pkg); err != nil {
		slog.Warn("manifest: parsing package.json", "error", err)
		return nil
	}

	// A name listed in both tables counts once, as a regular dependency.
	seen := make(map[string]bool, len(pkg.Dependencies))
	deps := make([]report.Dependency, 0, len(pkg.Dependencies)+len(pkg.DevDependencies))
	for name, version := range pkg.Dependencies {
		seen[name] = true
		deps = append(deps, report.Dependency{
			Name:      name,
			Version:   strings.TrimSpace(version),
			Ecosystem: "npm",
		})
	}
	for name, version := range pkg.DevDependencies {
		if seen[name] {
			continue
		}
		deps = append(deps, report.Dependency{
			Name:      name,
			Version:   strings.TrimSpace(version),
			Ecosystem: "npm",
			Dev:       true,
		})
	}
	return deps
}

// cargoManifest is the subset of Cargo.toml tables we need.
type cargoManifest struct {
	Dependencies    map[string]any `toml:"dependencies"`
	DevDependencies map[string]any `toml:"dev-dependencies"`
}

func parseCargoTOML(data []byte) []report.Dependency {
	var m cargoManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		slog.Warn("manifest: parsing Cargo.toml", "error", err)
		return nil
	}

	deps := cargoDeps(m.Dependencies, false)
	return append(deps, cargoDeps(m.DevDependencies, true)...)
}

// cargoDeps converts one Cargo dependency table. Both string notation
// (serde = "1.0") and table notation (serde = { version = "1.0" }) are
// handled; path and git entries carry no registry version.
func cargoDeps(table map[string]any, dev bool) []report.Dependency {
	var deps []report.Dependency
	for name, val := range table {
		var version string
		switch v := val.(type) {
		case string:
			version = v
		case map[string]any:
			if ver, ok := v["version"].(string); ok {
				version = ver
			}
		}
		deps = append(deps, report.Dependency{
			Name:      name,
			Version:   version,
			Ecosystem: "cargo",
			Dev:       dev,
		})
	}
	return deps
}
