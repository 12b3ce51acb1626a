/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for rsclocate.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	chaincmd "bennypowers.dev/rsclocate/cmd/chain"
	"bennypowers.dev/rsclocate/cmd/mcp"
	"bennypowers.dev/rsclocate/cmd/resolve"
	"bennypowers.dev/rsclocate/cmd/version"
	"bennypowers.dev/rsclocate/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "rsclocate",
	Short: "Find the compiler package a TypeScript project builds with",
	Long: `rsclocate follows the "extends" field of a project's tsconfig.json, through
shared base configs and installed packages, until it reaches a config that
lives inside the compiler package. It reports that package and checks that
its entry point exports what a build needs.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(viper.GetBool("verbose"))
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "Print each step of the extends chain")
	flags.String("root", ".", "Workspace root containing .config/rsclocate.{yaml,yml,json}")
	flags.StringSlice("compiler-package", nil, "Package name that ends the chain (repeatable)")
	flags.StringSlice("require-export", nil, "Export the compiler entry point must provide (repeatable)")
	flags.String("tsconfig", "", "Project config file name in each build root (default tsconfig.json)")

	for _, name := range []string{"verbose", "root", "compiler-package", "require-export", "tsconfig"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
	viper.SetEnvPrefix("RSCLOCATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(resolve.Cmd)
	rootCmd.AddCommand(chaincmd.Cmd)
	rootCmd.AddCommand(mcp.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
