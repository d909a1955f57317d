// Package xmltree converts XML documents into a generic tree value, driven by
// the token stream rather than per-type unmarshalling, so callers can walk
// responses whose shape is only known at runtime.
package xmltree

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Node is one element of a decoded document: its tag name, accumulated
// character data, and child elements in document order.
//
// Accessors tolerate a nil receiver so lookups chain:
//
//	root.Get("Owner").Get("ID").Text()
type Node struct {
	Name     string
	Content  string
	Children []*Node
}

// Decode consumes the reader as an XML token stream and returns the document
// root. Comments, directives, and processing instructions are skipped.
// Returns an error only when the underlying stream is not well-formed XML.
func Decode(r io.Reader) (*Node, error) {
	decoder := xml.NewDecoder(r)
	root := &Node{}
	stack := []*Node{root}

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode xml: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			child := &Node{Name: t.Name.Local}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, child)
			stack = append(stack, child)
		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			stack[len(stack)-1].Content += string(t)
		}
	}

	if len(root.Children) == 1 {
		return root.Children[0], nil
	}
	return root, nil
}

// Get returns the first child element named name, or nil.
func (n *Node) Get(name string) *Node {
	if n == nil {
		return nil
	}
	for _, child := range n.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// All returns every child element named name, in document order.
func (n *Node) All(name string) []*Node {
	if n == nil {
		return nil
	}
	var nodes []*Node
	for _, child := range n.Children {
		if child.Name == name {
			nodes = append(nodes, child)
		}
	}
	return nodes
}

// Text returns the node's character data with surrounding whitespace
// trimmed, or "" for nil nodes.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.Content)
}
