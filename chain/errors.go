/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package chain

import "errors"

// Sentinel errors for chain resolution. Returned errors wrap one of these
// and name the offending path.
var (
	// ErrConfigNotFound indicates a chain link that points to a nonexistent file.
	ErrConfigNotFound = errors.New("tsconfig file does not exist")

	// ErrConfigParse indicates a tsconfig file that is not valid JSON.
	ErrConfigParse = errors.New("error parsing tsconfig")

	// ErrMissingExtends indicates the chain ended before reaching the compiler package.
	ErrMissingExtends = errors.New("tsconfig has no extends field")

	// ErrCyclicExtends indicates a tsconfig that extends itself, directly or transitively.
	ErrCyclicExtends = errors.New("circular extends chain")

	// ErrChainTooLong indicates a chain longer than Options.MaxChainLength.
	ErrChainTooLong = errors.New("extends chain too long")
)
