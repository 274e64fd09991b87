package main

import "github.com/repolens/repolens/internal/testable"

// cmdFS routes the file operations commands perform (report output files,
// the starter config) through a seam tests can replace with a
// testable.MockFileSystem.
var cmdFS testable.FileSystem = testable.DefaultFS
