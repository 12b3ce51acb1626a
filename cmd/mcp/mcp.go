/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package mcp provides the mcp command for rsclocate.
package mcp

import (
	"io"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"bennypowers.dev/rsclocate/cmd/common"
	"bennypowers.dev/rsclocate/internal/logger"
	"bennypowers.dev/rsclocate/mcpserver"
)

// Cmd is the mcp cobra command.
var Cmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve compiler resolution over MCP on stdio",
	Long:  `Run a Model Context Protocol server on stdin/stdout exposing the resolve_compiler tool.`,
	Args:  cobra.NoArgs,
	RunE:  run,
}

func run(cmd *cobra.Command, args []string) error {
	logger.SetOutput(io.Discard)

	ws, err := common.Open()
	if err != nil {
		return err
	}

	return mcpserver.New(ws.Session).Run(cmd.Context(), &mcp.StdioTransport{})
}
