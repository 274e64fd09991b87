// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
)

// Shared color printers for report sections.
var (
	colorRed    = color.New(color.FgRed)
	colorYellow = color.New(color.FgYellow)
	colorGreen  = color.New(color.FgGreen)
	colorBold   = color.New(color.Bold)
)

// SectionTitle renders a bold section title.
func SectionTitle(title string) string {
	return colorBold.Sprint(title)
}

// ColorSeverity colors security finding severities.
func ColorSeverity(val string) string {
	switch val {
	case "critical", "high":
		return colorRed.Sprint(val)
	case "medium":
		return colorYellow.Sprint(val)
	default:
		return val
	}
}

// ColorScore colors a 0-100 score where higher is better.
func ColorScore(val string) string {
	score, err := strconv.Atoi(val)
	if err != nil {
		return val
	}
	switch {
	case score >= 80:
		return colorGreen.Sprint(val)
	case score >= 50:
		return colorYellow.Sprint(val)
	default:
		return colorRed.Sprint(val)
	}
}

// ColorBusFactor colors a bus factor value. One is the alarm case.
func ColorBusFactor(n int) string {
	s := strconv.Itoa(n)
	switch {
	case n <= 1:
		return colorRed.Sprint(s)
	case n == 2:
		return colorYellow.Sprint(s)
	default:
		return colorGreen.Sprint(s)
	}
}

// colorHotspotScore colors hotspot scores, where higher is worse.
func colorHotspotScore(val string) string {
	score, err := strconv.Atoi(val)
	if err != nil {
		return val
	}
	switch {
	case score >= 70:
		return colorRed.Sprint(val)
	case score >= 40:
		return colorYellow.Sprint(val)
	default:
		return val
	}
}

// colorPriority colors roadmap priorities as uppercase labels.
func colorPriority(priority string) string {
	switch priority {
	case "high":
		return colorRed.Sprint("HIGH")
	case "medium":
		return colorYellow.Sprint("MEDIUM")
	case "low":
		return colorGreen.Sprint("LOW")
	default:
		return priority
	}
}

// colorCount colors a count: 0 is green, >0 is yellow.
func colorCount(n int) string {
	s := fmt.Sprintf("%d", n)
	if n == 0 {
		return colorGreen.Sprint(s)
	}
	return colorYellow.Sprint(s)
}
