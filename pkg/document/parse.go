package document

import (
	"errors"
	"sort"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"
)

// ParseFunc turns query text into a Document.
type ParseFunc func(query string) (*Document, error)

// ParseError is returned when the query text is not a valid GraphQL document.
type ParseError struct {
	Err       error
	Locations []Position
}

func (e *ParseError) Error() string {
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse parses an executable GraphQL document with gqlparser.
func Parse(query string) (*Document, error) {
	queryDocument, err := parser.ParseQuery(&ast.Source{Input: query})
	if err != nil {
		return nil, newParseError(err)
	}
	return FromQueryDocument(queryDocument), nil
}

func newParseError(err error) *ParseError {
	parseErr := &ParseError{Err: err}

	var list gqlerror.List
	if errors.As(err, &list) {
		for _, item := range list {
			parseErr.Locations = appendLocations(parseErr.Locations, item)
		}
		return parseErr
	}

	var gqlErr *gqlerror.Error
	if errors.As(err, &gqlErr) {
		parseErr.Locations = appendLocations(parseErr.Locations, gqlErr)
	}
	return parseErr
}

func appendLocations(locations []Position, gqlErr *gqlerror.Error) []Position {
	if gqlErr == nil {
		return locations
	}
	for _, location := range gqlErr.Locations {
		locations = append(locations, Position{Line: location.Line, Column: location.Column})
	}
	return locations
}

// FromQueryDocument converts a gqlparser query document. Operations and
// fragment definitions are merged back into source order.
func FromQueryDocument(queryDocument *ast.QueryDocument) *Document {
	type definition struct {
		start int
		node  *Node
	}

	definitions := make([]definition, 0, len(queryDocument.Operations)+len(queryDocument.Fragments))
	for _, operation := range queryDocument.Operations {
		definitions = append(definitions, definition{
			start: start(operation.Position),
			node: &Node{
				Kind:     NodeKindOperationDefinition,
				Name:     operation.Name,
				Children: convertSelectionSet(operation.SelectionSet),
				Position: position(operation.Position),
			},
		})
	}
	for _, fragment := range queryDocument.Fragments {
		definitions = append(definitions, definition{
			start: start(fragment.Position),
			node: &Node{
				Kind:     NodeKindFragmentDefinition,
				Name:     fragment.Name,
				Children: convertSelectionSet(fragment.SelectionSet),
				Position: position(fragment.Position),
			},
		})
	}

	sort.SliceStable(definitions, func(i, j int) bool {
		return definitions[i].start < definitions[j].start
	})

	doc := &Document{
		Definitions: make([]*Node, len(definitions)),
	}
	for i := range definitions {
		doc.Definitions[i] = definitions[i].node
	}
	return doc
}

func convertSelectionSet(selectionSet ast.SelectionSet) []*Node {
	if len(selectionSet) == 0 {
		return nil
	}

	nodes := make([]*Node, 0, len(selectionSet))
	for _, selection := range selectionSet {
		switch s := selection.(type) {
		case *ast.Field:
			nodes = append(nodes, &Node{
				Kind:      NodeKindField,
				Name:      s.Name,
				Alias:     alias(s),
				Arguments: convertArguments(s.Arguments),
				Children:  convertSelectionSet(s.SelectionSet),
				Position:  position(s.Position),
			})
		case *ast.InlineFragment:
			nodes = append(nodes, &Node{
				Kind:     NodeKindInlineFragment,
				Name:     s.TypeCondition,
				Children: convertSelectionSet(s.SelectionSet),
				Position: position(s.Position),
			})
		case *ast.FragmentSpread:
			nodes = append(nodes, &Node{
				Kind:     NodeKindFragmentSpread,
				Name:     s.Name,
				Position: position(s.Position),
			})
		}
	}
	return nodes
}

// gqlparser sets Alias to Name when no alias is given.
func alias(field *ast.Field) string {
	if field.Alias == field.Name {
		return ""
	}
	return field.Alias
}

func convertArguments(arguments ast.ArgumentList) []Argument {
	if len(arguments) == 0 {
		return nil
	}

	out := make([]Argument, 0, len(arguments))
	for _, argument := range arguments {
		out = append(out, Argument{
			Name:  argument.Name,
			Value: convertValue(argument.Value),
		})
	}
	return out
}

func convertValue(value *ast.Value) Value {
	if value == nil {
		return Value{Kind: ValueKindOther}
	}
	switch value.Kind {
	case ast.StringValue, ast.BlockValue:
		return Value{Kind: ValueKindString, Raw: value.Raw}
	case ast.Variable:
		return Value{Kind: ValueKindVariable, Raw: value.Raw}
	default:
		return Value{Kind: ValueKindOther, Raw: value.Raw}
	}
}

func start(pos *ast.Position) int {
	if pos == nil {
		return 0
	}
	return pos.Start
}

func position(pos *ast.Position) Position {
	if pos == nil {
		return Position{}
	}
	return Position{Line: pos.Line, Column: pos.Column}
}
