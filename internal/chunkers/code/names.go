package code

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// identifierTypes are node types that commonly hold a declared name.
var identifierTypes = []string{
	"identifier",
	"type_identifier",
	"field_identifier",
	"property_identifier",
	"simple_identifier",
	"constant",
	"name",
}

// FieldText returns the trimmed text of the named field child, or "".
func FieldText(node *sitter.Node, source []byte, field string) string {
	if node == nil {
		return ""
	}
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Content(source))
}

// ChildOfType returns the first direct child whose type is listed.
func ChildOfType(node *sitter.Node, types ...string) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}
		for _, t := range types {
			if child.Type() == t {
				return child
			}
		}
	}
	return nil
}

// ChildText returns the text of the first direct child whose type is listed.
func ChildText(node *sitter.Node, source []byte, types ...string) string {
	child := ChildOfType(node, types...)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Content(source))
}

// FindDescendant searches breadth-first, at most depth levels below node,
// for the first named node whose type is listed.
func FindDescendant(node *sitter.Node, depth int, types ...string) *sitter.Node {
	if node == nil {
		return nil
	}
	level := []*sitter.Node{node}
	for d := 0; d < depth && len(level) > 0; d++ {
		var next []*sitter.Node
		for _, n := range level {
			for i := 0; i < int(n.NamedChildCount()); i++ {
				child := n.NamedChild(i)
				if child == nil {
					continue
				}
				for _, t := range types {
					if child.Type() == t {
						return child
					}
				}
				next = append(next, child)
			}
		}
		level = next
	}
	return nil
}

// DefaultName resolves a name from the "name" field, falling back to the
// first identifier-like child.
func DefaultName(node *sitter.Node, source []byte) string {
	if name := FieldText(node, source, "name"); name != "" {
		return name
	}
	return ChildText(node, source, identifierTypes...)
}

// DeclaratorName follows a chain of "declarator" fields, as used by C-family
// grammars, down to the innermost identifier.
func DeclaratorName(node *sitter.Node, source []byte) string {
	current := node
	for range 8 {
		if current == nil {
			return ""
		}
		switch current.Type() {
		case "identifier", "field_identifier", "type_identifier",
			"qualified_identifier", "destructor_name", "operator_name":
			return strings.TrimSpace(current.Content(source))
		}
		next := current.ChildByFieldName("declarator")
		if next == nil {
			next = current.ChildByFieldName("name")
		}
		current = next
	}
	return ""
}
