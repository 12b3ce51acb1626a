/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package mcpserver exposes compiler resolution as a Model Context Protocol tool.
package mcpserver

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"bennypowers.dev/rsclocate/internal/version"
	"bennypowers.dev/rsclocate/session"
)

// ToolName is the name clients call.
const ToolName = "resolve_compiler"

// ResolveArgs is the tool input.
type ResolveArgs struct {
	BuildRoot string `json:"buildRoot" jsonschema:"absolute path of the project directory containing tsconfig.json"`
	PathOnly  bool   `json:"pathOnly,omitempty" jsonschema:"skip loading the compiler entry point"`
}

// ResolveResult is the tool output.
type ResolveResult struct {
	BuildRoot   string   `json:"buildRoot"`
	PackagePath string   `json:"packagePath"`
	Name        string   `json:"name,omitempty"`
	Version     string   `json:"version,omitempty"`
	EntryPoint  string   `json:"entryPoint,omitempty"`
	Exports     []string `json:"exports,omitempty"`
}

// New creates an MCP server whose tool calls share s and its cache.
func New(s *session.Session) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "rsclocate",
		Version: version.Get(),
	}, nil)

	h := &handler{session: s}
	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolName,
		Description: "Find the compiler package a TypeScript project builds with by following its tsconfig extends chain",
	}, h.resolve)

	return server
}

type handler struct {
	session *session.Session
}

func (h *handler) resolve(_ context.Context, _ *mcp.CallToolRequest, args ResolveArgs) (*mcp.CallToolResult, ResolveResult, error) {
	if args.BuildRoot == "" {
		return nil, ResolveResult{}, fmt.Errorf("buildRoot is required")
	}
	if !filepath.IsAbs(args.BuildRoot) {
		return nil, ResolveResult{}, fmt.Errorf("buildRoot must be an absolute path, got: %s", args.BuildRoot)
	}

	result := ResolveResult{BuildRoot: args.BuildRoot}
	if args.PathOnly {
		path, err := h.session.PackagePath(args.BuildRoot)
		if err != nil {
			return nil, ResolveResult{}, err
		}
		result.PackagePath = path
		return nil, result, nil
	}

	handle, err := h.session.Compiler(args.BuildRoot)
	if err != nil {
		return nil, ResolveResult{}, err
	}
	result.PackagePath = handle.PackagePath
	result.Name = handle.Name
	result.Version = handle.Version
	result.EntryPoint = handle.EntryPoint
	result.Exports = handle.Exports
	return nil, result, nil
}
