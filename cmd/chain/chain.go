/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package chain provides the chain command for rsclocate.
package chain

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bennypowers.dev/rsclocate/chain"
	"bennypowers.dev/rsclocate/cmd/common"
)

// Cmd is the chain cobra command.
var Cmd = &cobra.Command{
	Use:   "chain [buildRoot]",
	Short: "Show each tsconfig visited on the way to the compiler package",
	Long:  `Walk the extends chain of one build root and print every config file it visits.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
}

type stepJSON struct {
	ConfigPath string `json:"configPath"`
	Package    string `json:"package,omitempty"`
	Compiler   bool   `json:"compiler,omitempty"`
	Extends    string `json:"extends,omitempty"`
	Kind       string `json:"kind,omitempty"`
	Next       string `json:"next,omitempty"`
}

type traceJSON struct {
	Steps       []stepJSON `json:"steps"`
	PackagePath string     `json:"packagePath,omitempty"`
	Error       string     `json:"error,omitempty"`
}

func run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	ws, err := common.Open()
	if err != nil {
		return err
	}

	root := ws.Root
	if len(args) == 1 {
		root = args[0]
	}

	steps, packagePath, walkErr := ws.Session.Trace(root)

	switch format {
	case "json":
		trace := traceJSON{PackagePath: packagePath}
		for _, s := range steps {
			js := stepJSON{
				ConfigPath: s.ConfigPath,
				Package:    s.Package,
				Compiler:   s.Compiler,
				Extends:    s.Extends,
				Next:       s.Next,
			}
			if s.Extends != "" {
				js.Kind = s.Kind.String()
			}
			trace.Steps = append(trace.Steps, js)
		}
		if walkErr != nil {
			trace.Error = walkErr.Error()
		}
		out, err := json.MarshalIndent(trace, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshaling chain: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
	case "text":
		WriteSteps(cmd.OutOrStdout(), steps)
		if walkErr == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "compiler package: %s\n", packagePath)
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	return walkErr
}

// WriteSteps prints a numbered line per step, with the extends reference
// indented beneath it.
func WriteSteps(w io.Writer, steps []chain.Step) {
	for i, s := range steps {
		pkg := ""
		if s.Package != "" {
			pkg = fmt.Sprintf(" [%s]", s.Package)
		}
		fmt.Fprintf(w, "%d. %s%s\n", i+1, s.ConfigPath, pkg)
		switch {
		case s.Compiler:
			fmt.Fprintf(w, "   inside compiler package %s\n", s.PackageDir)
		case s.Next != "":
			fmt.Fprintf(w, "   extends %q (%s) -> %s\n", s.Extends, s.Kind, s.Next)
		}
	}
}
