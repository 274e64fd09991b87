// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

package enrich

import (
	"encoding/json"
	"fmt"

	"github.com/repolens/repolens/internal/llm"
	"github.com/repolens/repolens/internal/report"
)

// Models are asked for a wrapper object but sometimes answer with a bare
// array, so each parser accepts both and then drops items missing their
// required fields.

type roadmapWrapper struct {
	Roadmap []report.RoadmapItem `json:"roadmap"`
}

func parseRoadmap(content string) ([]report.RoadmapItem, error) {
	doc, err := llm.ExtractJSON(content)
	if err != nil {
		return nil, err
	}

	var wrapper roadmapWrapper
	if err := json.Unmarshal([]byte(doc), &wrapper); err == nil && len(wrapper.Roadmap) > 0 {
		return keepRoadmapItems(wrapper.Roadmap), nil
	}

	var items []report.RoadmapItem
	if err := json.Unmarshal([]byte(doc), &items); err == nil && len(items) > 0 {
		return keepRoadmapItems(items), nil
	}

	return nil, fmt.Errorf("enrich: response is not a roadmap: %.120s", doc)
}

func keepRoadmapItems(items []report.RoadmapItem) []report.RoadmapItem {
	var kept []report.RoadmapItem
	for _, item := range items {
		if item.Title == "" {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}

type functionDocsWrapper struct {
	Functions []report.FunctionDoc `json:"functions"`
}

func parseFunctionDocs(content string) ([]report.FunctionDoc, error) {
	doc, err := llm.ExtractJSON(content)
	if err != nil {
		return nil, err
	}

	var wrapper functionDocsWrapper
	if err := json.Unmarshal([]byte(doc), &wrapper); err == nil && len(wrapper.Functions) > 0 {
		return keepFunctionDocs(wrapper.Functions), nil
	}

	var docs []report.FunctionDoc
	if err := json.Unmarshal([]byte(doc), &docs); err == nil && len(docs) > 0 {
		return keepFunctionDocs(docs), nil
	}

	return nil, fmt.Errorf("enrich: response is not a function list: %.120s", doc)
}

func keepFunctionDocs(docs []report.FunctionDoc) []report.FunctionDoc {
	var kept []report.FunctionDoc
	for _, d := range docs {
		if d.Name == "" || d.Explanation == "" {
			continue
		}
		kept = append(kept, d)
	}
	return kept
}

type estimatesWrapper struct {
	Estimates []report.ComplexityEstimate `json:"estimates"`
}

func parseComplexityEstimates(content string) ([]report.ComplexityEstimate, error) {
	doc, err := llm.ExtractJSON(content)
	if err != nil {
		return nil, err
	}

	var wrapper estimatesWrapper
	if err := json.Unmarshal([]byte(doc), &wrapper); err == nil && len(wrapper.Estimates) > 0 {
		return keepEstimates(wrapper.Estimates), nil
	}

	var estimates []report.ComplexityEstimate
	if err := json.Unmarshal([]byte(doc), &estimates); err == nil && len(estimates) > 0 {
		return keepEstimates(estimates), nil
	}

	return nil, fmt.Errorf("enrich: response is not an estimate list: %.120s", doc)
}

func keepEstimates(estimates []report.ComplexityEstimate) []report.ComplexityEstimate {
	var kept []report.ComplexityEstimate
	for _, e := range estimates {
		if e.Name == "" || e.Time == "" {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}
