// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/repolens/repolens/internal/mcpserver"
)

// mcpCmd runs the MCP server over stdio.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol server over stdio",
	Long: `Start an MCP server on stdin/stdout, exposing the analyze_repository tool.

The server communicates using the Model Context Protocol (MCP) over stdio
transport, enabling AI agents to analyze GitHub repositories directly.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return mcpserver.Run(cmd.Context(), Version, &mcp.StdioTransport{})
	},
}
