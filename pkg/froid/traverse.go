package froid

import (
	"encoding/json"
	"errors"

	"github.com/TykTechnologies/graphql-froid/pkg/document"
)

const (
	nodeFieldName  = "node"
	idArgumentName = "id"
)

// NodeReference is a node(id:) field found in the query.
type NodeReference struct {
	ResponseKey string
	IDValue     string
	Position    document.Position
}

// FindNodeReferences walks the tree below root depth-first in document order
// and collects every node field with a usable id argument.
//
// The walk continues below a matched node field, so node fields nested inside
// a node selection are collected as well.
func FindNodeReferences(root *document.Node, variables json.RawMessage) ([]NodeReference, error) {
	if root == nil {
		return nil, nil
	}

	var references []NodeReference
	stack := []*document.Node{root}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if current.Kind == document.NodeKindField && current.Name == nodeFieldName {
			idValue, ok, err := findIDValue(current, variables)
			if err != nil {
				kind := ErrorKindInternal
				if errors.Is(err, ErrMissingVariable) {
					kind = ErrorKindMissingVariable
				}
				return nil, newError(kind, err, current.Position)
			}
			if ok {
				references = append(references, NodeReference{
					ResponseKey: current.ResponseKey(),
					IDValue:     idValue,
					Position:    current.Position,
				})
			}
		}

		for i := len(current.Children) - 1; i >= 0; i-- {
			stack = append(stack, current.Children[i])
		}
	}

	return references, nil
}

func findIDValue(field *document.Node, variables json.RawMessage) (string, bool, error) {
	argument, ok := field.Argument(idArgumentName)
	if !ok {
		return "", false, nil
	}

	switch argument.Value.Kind {
	case document.ValueKindString:
		return argument.Value.Raw, true, nil
	case document.ValueKindVariable:
		text, err := variableText(variables, argument.Value.Raw)
		if err != nil {
			return "", false, err
		}
		return text, true, nil
	case document.ValueKindOther:
		return "", false, nil
	default:
		return "", false, nil
	}
}
