/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package mcpserver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/rsclocate/chain"
	"bennypowers.dev/rsclocate/session"
	"bennypowers.dev/rsclocate/testutil"
)

func newHandler(t *testing.T) *handler {
	t.Helper()
	return &handler{session: session.New(session.Options{
		FS:               testutil.NewFixtureFS(t, "fixtures/acme", "/"),
		CompilerPackages: []string{"@acme/rush-stack-compiler"},
		Tracef:           func(string, ...any) {},
	})}
}

func TestResolve(t *testing.T) {
	h := newHandler(t)

	_, out, err := h.resolve(context.Background(), nil, ResolveArgs{BuildRoot: "/proj"})
	require.NoError(t, err)

	assert.Equal(t, "/node_modules/@acme/rush-stack-compiler", out.PackagePath)
	assert.Equal(t, "@acme/rush-stack-compiler", out.Name)
	assert.Equal(t, "3.9.2", out.Version)
	assert.Contains(t, out.Exports, "TypescriptCompiler")
}

func TestResolve_PathOnly(t *testing.T) {
	h := newHandler(t)

	_, out, err := h.resolve(context.Background(), nil, ResolveArgs{BuildRoot: "/proj", PathOnly: true})
	require.NoError(t, err)

	assert.Equal(t, "/node_modules/@acme/rush-stack-compiler", out.PackagePath)
	assert.Empty(t, out.EntryPoint)
}

func TestResolve_Errors(t *testing.T) {
	h := newHandler(t)

	_, _, err := h.resolve(context.Background(), nil, ResolveArgs{})
	assert.Error(t, err)

	_, _, err = h.resolve(context.Background(), nil, ResolveArgs{BuildRoot: "proj"})
	assert.ErrorContains(t, err, "absolute")

	_, _, err = h.resolve(context.Background(), nil, ResolveArgs{BuildRoot: "/missing"})
	assert.ErrorIs(t, err, chain.ErrConfigNotFound)
}

func TestNew(t *testing.T) {
	assert.NotNil(t, New(newHandler(t).session))
}
