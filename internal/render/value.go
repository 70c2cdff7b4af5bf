// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package render

import (
	"fmt"
	"strings"
)

// Kind tags a display value.
type Kind int

const (
	// KindText is plain text.
	KindText Kind = iota
	// KindStructured is a node tree.
	KindStructured
)

// Value is a cell display value: either plain text or structured content.
type Value struct {
	kind Kind
	text string
	node *Node
}

// Text returns a plain text value.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Structured returns a structured value wrapping n.
func Structured(n *Node) Value {
	if n == nil {
		return Text("")
	}
	return Value{kind: KindStructured, node: n}
}

// ValueOf converts a raw cell into a display value.
func ValueOf(raw any) Value {
	switch v := raw.(type) {
	case Value:
		return v
	case *Node:
		return Structured(v)
	case string:
		return Text(v)
	case nil:
		return Text("")
	default:
		return Text(fmt.Sprint(v))
	}
}

// AsValue converts the result of a display-mode render into a Value.
func AsValue(out any) Value {
	return ValueOf(out)
}

// Kind returns the value tag.
func (v Value) Kind() Kind {
	return v.kind
}

// IsStructured returns true if the value holds a node.
func (v Value) IsStructured() bool {
	return v.kind == KindStructured
}

// Node returns the structured node or nil for plain text.
func (v Value) Node() *Node {
	return v.node
}

// String returns the visible plain text of the value.
func (v Value) String() string {
	switch v.kind {
	case KindStructured:
		return v.node.TextContent()
	default:
		return v.text
	}
}

// Node is a minimal element tree produced by decorators. Surfaces decide how
// classes translate into styling.
type Node struct {
	Tag      string
	Classes  []string
	Title    string
	Text     string
	Data     map[string]string
	Children []*Node
}

// NewNode returns a node with the given tag and classes.
func NewNode(tag string, classes ...string) *Node {
	return &Node{Tag: tag, Classes: classes}
}

// Append adds children and returns the node.
func (n *Node) Append(cc ...*Node) *Node {
	n.Children = append(n.Children, cc...)
	return n
}

// HasClass checks for a class name.
func (n *Node) HasClass(c string) bool {
	for _, cl := range n.Classes {
		if cl == c {
			return true
		}
	}
	return false
}

// ClassWithPrefix returns the suffix of the first class starting with prefix.
func (n *Node) ClassWithPrefix(prefix string) (string, bool) {
	for _, cl := range n.Classes {
		if strings.HasPrefix(cl, prefix) {
			return strings.TrimPrefix(cl, prefix), true
		}
	}
	return "", false
}

// TextContent returns the node text followed by its children's text.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	if len(n.Children) == 0 {
		return n.Text
	}
	var b strings.Builder
	b.WriteString(n.Text)
	for _, c := range n.Children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}
