/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package compiler

import "errors"

var (
	// ErrMissingEntryPoint indicates a compiler package.json without "main".
	ErrMissingEntryPoint = errors.New(`compiler package does not have a "main" entry`)

	// ErrModuleLoad indicates an entry point that is missing, is not valid
	// JavaScript, or does not export what the contract requires.
	ErrModuleLoad = errors.New("failed to load compiler module")
)
