/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package compiler

import (
	"fmt"
	"slices"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

// SyntaxError locates the first parse error in a module.
type SyntaxError struct {
	Row    uint
	Column uint
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d:%d", e.Row+1, e.Column+1)
}

// Module is the export surface of one JavaScript file.
type Module struct {
	// Exports are the names the file defines itself, sorted.
	Exports []string

	// StarSources are the specifiers re-exported wholesale, through
	// export * from "./x" or a compiled __exportStar(require("./x"), exports).
	StarSources []string
}

// ParseExports parses JavaScript source and returns the sorted names it
// exports, through ES module syntax or CommonJS assignments to exports.
// Names reached only through re-exported modules are not included.
func ParseExports(source []byte) ([]string, error) {
	m, err := ParseModule(source)
	if err != nil {
		return nil, err
	}
	return m.Exports, nil
}

// ParseModule parses JavaScript source into its export surface.
func ParseModule(source []byte) (*Module, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(tree_sitter.NewLanguage(tree_sitter_javascript.Language())); err != nil {
		return nil, err
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("parser returned no tree")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, firstError(root)
	}

	c := &collector{source: source, names: make(map[string]struct{})}
	c.walk(root)

	m := &Module{
		Exports:     make([]string, 0, len(c.names)),
		StarSources: c.stars,
	}
	for name := range c.names {
		m.Exports = append(m.Exports, name)
	}
	slices.Sort(m.Exports)
	return m, nil
}

type collector struct {
	source []byte
	names  map[string]struct{}
	stars  []string
}

func (c *collector) add(name string) {
	c.names[name] = struct{}{}
}

func (c *collector) addStar(spec string) {
	if !slices.Contains(c.stars, spec) {
		c.stars = append(c.stars, spec)
	}
}

func (c *collector) text(node *tree_sitter.Node) string {
	return node.Utf8Text(c.source)
}

func firstError(node *tree_sitter.Node) error {
	if node.IsError() || node.IsMissing() {
		pos := node.StartPosition()
		return &SyntaxError{Row: pos.Row, Column: pos.Column}
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.HasError() {
			return firstError(child)
		}
	}
	pos := node.StartPosition()
	return &SyntaxError{Row: pos.Row, Column: pos.Column}
}

func (c *collector) walk(node *tree_sitter.Node) {
	switch node.Kind() {
	case "export_statement":
		c.exportStatement(node)
	case "assignment_expression":
		c.assignment(node)
	case "call_expression":
		c.defineProperty(node)
		c.exportStar(node)
	}

	for i := uint(0); i < node.NamedChildCount(); i++ {
		if child := node.NamedChild(i); child != nil {
			c.walk(child)
		}
	}
}

// export class X {}, export const a = 1, export { a as b }, export default ...,
// export * from "./x", export * as ns from "./x"
func (c *collector) exportStatement(node *tree_sitter.Node) {
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil && child.Kind() == "default" {
			c.add("default")
			return
		}
	}

	if source := node.ChildByFieldName("source"); source != nil {
		for i := uint(0); i < node.ChildCount(); i++ {
			child := node.Child(i)
			if child == nil {
				continue
			}
			switch child.Kind() {
			case "namespace_export":
				if n := child.NamedChildCount(); n > 0 {
					c.add(unquote(c.text(child.NamedChild(n - 1))))
				}
				return
			case "*":
				c.addStar(unquote(c.text(source)))
				return
			}
		}
	}

	if decl := node.ChildByFieldName("declaration"); decl != nil {
		switch decl.Kind() {
		case "lexical_declaration", "variable_declaration":
			for i := uint(0); i < decl.NamedChildCount(); i++ {
				declarator := decl.NamedChild(i)
				if declarator == nil || declarator.Kind() != "variable_declarator" {
					continue
				}
				if name := declarator.ChildByFieldName("name"); name != nil && name.Kind() == "identifier" {
					c.add(c.text(name))
				}
			}
		default:
			if name := decl.ChildByFieldName("name"); name != nil {
				c.add(c.text(name))
			}
		}
		return
	}

	for i := uint(0); i < node.NamedChildCount(); i++ {
		clause := node.NamedChild(i)
		if clause == nil || clause.Kind() != "export_clause" {
			continue
		}
		for j := uint(0); j < clause.NamedChildCount(); j++ {
			spec := clause.NamedChild(j)
			if spec == nil || spec.Kind() != "export_specifier" {
				continue
			}
			name := spec.ChildByFieldName("alias")
			if name == nil {
				name = spec.ChildByFieldName("name")
			}
			if name != nil {
				c.add(unquote(c.text(name)))
			}
		}
	}
}

// exports.X = ..., module.exports.X = ..., module.exports = { X, Y: ... }
func (c *collector) assignment(node *tree_sitter.Node) {
	left := node.ChildByFieldName("left")
	if left == nil || left.Kind() != "member_expression" {
		return
	}

	object := left.ChildByFieldName("object")
	property := left.ChildByFieldName("property")
	if object == nil || property == nil {
		return
	}
	objectText := c.text(object)
	propertyText := c.text(property)

	switch {
	case objectText == "exports" || objectText == "module.exports":
		if propertyText != "__esModule" {
			c.add(propertyText)
		}
	case objectText == "module" && propertyText == "exports":
		right := node.ChildByFieldName("right")
		if right == nil || right.Kind() != "object" {
			c.add("default")
			return
		}
		for i := uint(0); i < right.NamedChildCount(); i++ {
			member := right.NamedChild(i)
			if member == nil {
				continue
			}
			switch member.Kind() {
			case "shorthand_property_identifier":
				c.add(c.text(member))
			case "pair", "method_definition":
				key := member.ChildByFieldName("key")
				if key == nil {
					key = member.ChildByFieldName("name")
				}
				if key != nil {
					c.add(unquote(c.text(key)))
				}
			}
		}
	}
}

// Object.defineProperty(exports, "X", { ... })
func (c *collector) defineProperty(node *tree_sitter.Node) {
	function := node.ChildByFieldName("function")
	if function == nil || c.text(function) != "Object.defineProperty" {
		return
	}
	args := node.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() < 2 {
		return
	}
	target := args.NamedChild(0)
	name := args.NamedChild(1)
	if target == nil || name == nil || name.Kind() != "string" {
		return
	}
	if t := c.text(target); t != "exports" && t != "module.exports" {
		return
	}
	if n := unquote(c.text(name)); n != "__esModule" {
		c.add(n)
	}
}

// __exportStar(require("./x"), exports), tslib_1.__exportStar(...), and the
// older __export(require("./x"))
func (c *collector) exportStar(node *tree_sitter.Node) {
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return
	}
	function := c.text(fn)
	if i := strings.LastIndex(function, "."); i >= 0 {
		function = function[i+1:]
	}
	if function != "__exportStar" && function != "__export" {
		return
	}
	args := node.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() < 1 {
		return
	}
	if spec, ok := c.requireSpecifier(args.NamedChild(0)); ok {
		c.addStar(spec)
	}
}

// requireSpecifier returns the string passed to require(...).
func (c *collector) requireSpecifier(node *tree_sitter.Node) (string, bool) {
	if node == nil || node.Kind() != "call_expression" {
		return "", false
	}
	if fn := node.ChildByFieldName("function"); fn == nil || c.text(fn) != "require" {
		return "", false
	}
	args := node.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() < 1 {
		return "", false
	}
	arg := args.NamedChild(0)
	if arg == nil || arg.Kind() != "string" {
		return "", false
	}
	return unquote(c.text(arg)), true
}

func unquote(s string) string {
	return strings.Trim(s, `"'`)
}
