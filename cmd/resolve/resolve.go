/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolve provides the resolve command for rsclocate.
package resolve

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bennypowers.dev/rsclocate/cmd/common"
	"bennypowers.dev/rsclocate/compiler"
	"bennypowers.dev/rsclocate/session"
)

// Cmd is the resolve cobra command.
var Cmd = &cobra.Command{
	Use:   "resolve [buildRoots...]",
	Short: "Find the compiler package for each build root",
	Long: `Find the compiler package for each build root and load its entry point.

Without arguments, the projects listed in .config/rsclocate.yaml are used,
or the workspace root when none are configured.`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
	Cmd.Flags().Bool("path-only", false, "Only resolve the package path; skip loading the entry point")
}

// Result is one build root's outcome.
type Result struct {
	BuildRoot   string           `json:"buildRoot"`
	PackagePath string           `json:"packagePath,omitempty"`
	Compiler    *compiler.Handle `json:"compiler,omitempty"`
	Error       string           `json:"error,omitempty"`
}

func run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	pathOnly, _ := cmd.Flags().GetBool("path-only")

	ws, err := common.Open()
	if err != nil {
		return err
	}
	roots, err := ws.BuildRoots(args)
	if err != nil {
		return err
	}

	results := Resolve(ws.Session, roots, pathOnly)

	switch format {
	case "json":
		out, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshaling results: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
	case "text":
		WriteText(cmd.OutOrStdout(), cmd.ErrOrStderr(), results)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	failures := 0
	for _, r := range results {
		if r.Error != "" {
			failures++
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d build roots failed to resolve", failures, len(results))
	}
	return nil
}

// Resolve resolves every root against one session, so roots sharing a
// build root are only walked once.
func Resolve(s *session.Session, roots []string, pathOnly bool) []Result {
	results := make([]Result, 0, len(roots))
	for _, root := range roots {
		result := Result{BuildRoot: root}
		if pathOnly {
			path, err := s.PackagePath(root)
			result.PackagePath = path
			if err != nil {
				result.Error = err.Error()
			}
		} else {
			handle, err := s.Compiler(root)
			if err != nil {
				result.Error = err.Error()
			} else {
				result.Compiler = handle
				result.PackagePath = handle.PackagePath
			}
		}
		results = append(results, result)
	}
	return results
}

// WriteText prints one line per successful root to out, errors to errOut.
func WriteText(out, errOut io.Writer, results []Result) {
	for _, r := range results {
		switch {
		case r.Error != "":
			fmt.Fprintf(errOut, "Error resolving %s: %s\n", r.BuildRoot, r.Error)
		case r.Compiler != nil && r.Compiler.Version != "":
			fmt.Fprintf(out, "%s: %s (%s@%s)\n", r.BuildRoot, r.PackagePath, r.Compiler.Name, r.Compiler.Version)
		case r.Compiler != nil:
			fmt.Fprintf(out, "%s: %s (%s)\n", r.BuildRoot, r.PackagePath, r.Compiler.Name)
		default:
			fmt.Fprintf(out, "%s: %s\n", r.BuildRoot, r.PackagePath)
		}
	}
}
