/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Command rsclocate finds the compiler package a TypeScript project builds
// with by following its tsconfig "extends" chain.
package main

import (
	"os"

	"bennypowers.dev/rsclocate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
