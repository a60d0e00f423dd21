// Package document is the parsed query tree handed to the node traversal.
//
// It holds definitions, fields, fragments and the arguments
// of fields. Argument values are reduced to the three cases the traversal
// distinguishes: string literals, variable references and everything else.
package document

type NodeKind uint8

const (
	NodeKindOperationDefinition NodeKind = iota + 1
	NodeKindFragmentDefinition
	NodeKindField
	NodeKindInlineFragment
	NodeKindFragmentSpread
)

func (k NodeKind) String() string {
	switch k {
	case NodeKindOperationDefinition:
		return "OperationDefinition"
	case NodeKindFragmentDefinition:
		return "FragmentDefinition"
	case NodeKindField:
		return "Field"
	case NodeKindInlineFragment:
		return "InlineFragment"
	case NodeKindFragmentSpread:
		return "FragmentSpread"
	default:
		return "Unknown"
	}
}

type ValueKind uint8

const (
	// ValueKindOther covers every literal that is neither a string nor a variable.
	ValueKindOther ValueKind = iota
	ValueKindString
	ValueKindVariable
)

// Value is an argument value. Raw holds the string content for
// ValueKindString and the variable name (without '$') for ValueKindVariable.
type Value struct {
	Kind ValueKind
	Raw  string
}

type Argument struct {
	Name  string
	Value Value
}

type Position struct {
	Line   int
	Column int
}

// Node is a definition or selection. Name is the operation, fragment or field
// name, or the type condition of an inline fragment.
type Node struct {
	Kind      NodeKind
	Name      string
	Alias     string
	Arguments []Argument
	Children  []*Node
	Position  Position
}

// Argument returns the first argument with the given name.
func (n *Node) Argument(name string) (Argument, bool) {
	for i := range n.Arguments {
		if n.Arguments[i].Name == name {
			return n.Arguments[i], true
		}
	}
	return Argument{}, false
}

// ResponseKey is the alias if set, otherwise the name.
func (n *Node) ResponseKey() string {
	if n.Alias != "" {
		return n.Alias
	}
	return n.Name
}

// Document holds the top level definitions in source order.
// A Document is never mutated after parsing and may be shared.
type Document struct {
	Definitions []*Node
}

// Root returns the first top level definition.
func (d *Document) Root() (*Node, bool) {
	if d == nil || len(d.Definitions) == 0 {
		return nil, false
	}
	return d.Definitions[0], true
}
