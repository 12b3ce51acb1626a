/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package compiler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExports(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name: "commonjs assignments",
			source: `"use strict";
Object.defineProperty(exports, "__esModule", { value: true });
var TypescriptCompiler_1 = require("./TypescriptCompiler");
exports.TypescriptCompiler = TypescriptCompiler_1.TypescriptCompiler;
module.exports.Typescript = require("typescript");`,
			want: []string{"TypescriptCompiler", "Typescript"},
		},
		{
			name: "defineProperty getters",
			source: `Object.defineProperty(exports, "TslintRunner", { enumerable: true, get: function () { return x.TslintRunner; } });
Object.defineProperty(module.exports, 'LintRunner', { get: () => y });`,
			want: []string{"LintRunner", "TslintRunner"},
		},
		{
			name:   "module.exports object",
			source: `const ApiExtractor = 1; module.exports = { ApiExtractor, TypescriptCompiler: class {}, "ToolPaths": {} };`,
			want:   []string{"ApiExtractor", "ToolPaths", "TypescriptCompiler"},
		},
		{
			name:   "module.exports value",
			source: `module.exports = function compile() {};`,
			want:   []string{"default"},
		},
		{
			name: "es modules",
			source: `export class TypescriptCompiler {}
export function lint() {}
export const a = 1, b = 2;
const c = 3;
export { c as ToolPaths };`,
			want: []string{"ToolPaths", "TypescriptCompiler", "a", "b", "lint"},
		},
		{
			name:   "export default",
			source: `export default {};`,
			want:   []string{"default"},
		},
		{
			name:   "nothing exported",
			source: `const x = require("x"); x.run();`,
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseExports([]byte(tt.source))
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestParseExports_SyntaxError(t *testing.T) {
	_, err := ParseExports([]byte("exports.TypescriptCompiler = function( {\n"))
	require.Error(t, err)

	var syntaxErr *SyntaxError
	assert.True(t, errors.As(err, &syntaxErr), "expected *SyntaxError, got %T", err)
}

func TestParseModule_StarSources(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		exports []string
		stars   []string
	}{
		{
			name: "compiled commonjs",
			source: `"use strict";
var __exportStar = (this && this.__exportStar) || function(m, exports) {};
Object.defineProperty(exports, "__esModule", { value: true });
__exportStar(require("./TypescriptCompiler"), exports);
__exportStar(require("./TypescriptCompiler"), exports);
exports.Typescript = require("typescript");`,
			exports: []string{"Typescript"},
			stars:   []string{"./TypescriptCompiler"},
		},
		{
			name:    "tslib helper",
			source:  `const tslib_1 = require("tslib"); tslib_1.__exportStar(require("./lint"), exports);`,
			stars:   []string{"./lint"},
			exports: []string{},
		},
		{
			name:    "legacy __export",
			source:  `function __export(m) {} __export(require("./api"));`,
			stars:   []string{"./api"},
			exports: []string{},
		},
		{
			name: "es modules",
			source: `export * from "./TypescriptCompiler.js";
export * as Lint from './lint';
export { ToolPaths } from "./paths";`,
			exports: []string{"Lint", "ToolPaths"},
			stars:   []string{"./TypescriptCompiler.js"},
		},
		{
			name:    "require outside a star helper",
			source:  `const x = require("./x"); exports.y = x;`,
			exports: []string{"y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseModule([]byte(tt.source))
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.exports, m.Exports)
			assert.ElementsMatch(t, tt.stars, m.StarSources)
		})
	}
}
