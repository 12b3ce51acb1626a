/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides configuration loading for rsclocate.
package config

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"bennypowers.dev/rsclocate/session"
)

// Config represents the rsclocate configuration.
type Config struct {
	// CompilerPackages are the package names that end an extends chain.
	CompilerPackages StringList `yaml:"compilerPackages" json:"compilerPackages"`

	// RequiredExports is the contract the compiler entry point must satisfy.
	RequiredExports StringList `yaml:"requiredExports" json:"requiredExports"`

	// Tsconfig is the project config file name in each build root.
	Tsconfig string `yaml:"tsconfig" json:"tsconfig"`

	// MaxChainLength bounds each extends walk.
	MaxChainLength int `yaml:"maxChainLength" json:"maxChainLength"`

	// Projects are build roots (supports globs) resolved when no
	// arguments are given.
	Projects StringList `yaml:"projects" json:"projects"`
}

// StringList accepts either a single string or a list of strings.
type StringList []string

// UnmarshalYAML handles both scalar and sequence forms.
func (s *StringList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*s = StringList{node.Value}
		return nil
	}

	var list []string
	if err := node.Decode(&list); err != nil {
		return err
	}
	*s = list
	return nil
}

// UnmarshalJSON handles both string and array forms.
func (s *StringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*s = StringList{one}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*s = list
	return nil
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{}
}

// SessionOptions returns session.Options with configuration applied.
// Zero values are left for the session to default.
func (c *Config) SessionOptions() session.Options {
	opts := session.Options{
		CompilerPackages: c.CompilerPackages,
		Tsconfig:         c.Tsconfig,
		MaxChainLength:   c.MaxChainLength,
	}
	if c.RequiredExports != nil {
		opts.RequiredExports = c.RequiredExports
	}
	return opts
}
