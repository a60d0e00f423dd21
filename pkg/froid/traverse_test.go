package froid

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TykTechnologies/graphql-froid/pkg/document"
	"github.com/TykTechnologies/graphql-froid/pkg/graphqlerrors"
)

func mustRoot(t *testing.T, query string) *document.Node {
	t.Helper()

	doc, err := document.Parse(query)
	require.NoError(t, err)
	root, ok := doc.Root()
	require.True(t, ok)
	return root
}

func TestFindNodeReferences(t *testing.T) {
	t.Run("aliases, literals and variables in document order", func(t *testing.T) {
		root := mustRoot(t, `query ($a: ID!, $b: ID!) {
	first: node(id: $a) { id }
	node(id: "literal") { id }
	last: node(id: $b) { id }
}`)

		references, err := FindNodeReferences(root, json.RawMessage(`{"a":"A","b":"B"}`))
		require.NoError(t, err)
		require.Len(t, references, 3)

		assert.Equal(t, NodeReference{ResponseKey: "first", IDValue: "A", Position: document.Position{Line: 2, Column: 2}}, references[0])
		assert.Equal(t, NodeReference{ResponseKey: "node", IDValue: "literal", Position: document.Position{Line: 3, Column: 2}}, references[1])
		assert.Equal(t, NodeReference{ResponseKey: "last", IDValue: "B", Position: document.Position{Line: 4, Column: 2}}, references[2])
	})

	t.Run("node fields without usable id are skipped", func(t *testing.T) {
		root := mustRoot(t, `{
	a: node { id }
	b: node(id: 4) { id }
	c: node(id: SOME_ENUM) { id }
	d: node(id: {key: "value"}) { id }
	e: node(other: "x") { id }
	f: node(id: "kept") { id }
}`)

		references, err := FindNodeReferences(root, nil)
		require.NoError(t, err)
		require.Len(t, references, 1)
		assert.Equal(t, "f", references[0].ResponseKey)
		assert.Equal(t, "kept", references[0].IDValue)
	})

	t.Run("fields with other names are ignored", func(t *testing.T) {
		root := mustRoot(t, `{ nodes(id: "x") { id } user(id: "y") { id } }`)

		references, err := FindNodeReferences(root, nil)
		require.NoError(t, err)
		assert.Empty(t, references)
	})

	t.Run("node fields below other fields and inline fragments", func(t *testing.T) {
		root := mustRoot(t, `{
	viewer {
		... on User {
			inner: node(id: "deep") { id }
		}
	}
	outer: node(id: "shallow") { id }
}`)

		references, err := FindNodeReferences(root, nil)
		require.NoError(t, err)
		require.Len(t, references, 2)
		assert.Equal(t, "inner", references[0].ResponseKey)
		assert.Equal(t, "deep", references[0].IDValue)
		assert.Equal(t, "outer", references[1].ResponseKey)
	})

	t.Run("node fields inside a node selection are collected", func(t *testing.T) {
		root := mustRoot(t, `{
	parent: node(id: "p") {
		... on Book {
			child: node(id: "c") { id }
		}
	}
}`)

		references, err := FindNodeReferences(root, nil)
		require.NoError(t, err)
		require.Len(t, references, 2)
		assert.Equal(t, "parent", references[0].ResponseKey)
		assert.Equal(t, "child", references[1].ResponseKey)
	})

	t.Run("fragment spreads are not followed", func(t *testing.T) {
		root := mustRoot(t, `query { ...F }
fragment F on Query { node(id: "x") { id } }`)

		references, err := FindNodeReferences(root, nil)
		require.NoError(t, err)
		assert.Empty(t, references)
	})

	t.Run("non string variables are used as literal text", func(t *testing.T) {
		root := mustRoot(t, `query ($n: ID!, $s: ID!) { a: node(id: $n) { id } b: node(id: $s) { id } }`)

		references, err := FindNodeReferences(root, json.RawMessage(`{"n":42,"s":"escaped\"quote"}`))
		require.NoError(t, err)
		require.Len(t, references, 2)
		assert.Equal(t, "42", references[0].IDValue)
		assert.Equal(t, `escaped"quote`, references[1].IDValue)
	})

	t.Run("missing variable", func(t *testing.T) {
		root := mustRoot(t, `query ($id: ID!) {
  node(id: $id) { id }
}`)

		for _, variables := range []json.RawMessage{nil, json.RawMessage(`{}`), json.RawMessage(`{"id":null}`), json.RawMessage(`{"other":"x"}`)} {
			references, err := FindNodeReferences(root, variables)
			assert.Nil(t, references)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMissingVariable))

			var froidErr *Error
			require.True(t, errors.As(err, &froidErr))
			assert.Equal(t, ErrorKindMissingVariable, froidErr.Kind)
			assert.Equal(t, []graphqlerrors.Location{{Line: 2, Column: 3}}, froidErr.Locations)
		}
	})

	t.Run("nil root", func(t *testing.T) {
		references, err := FindNodeReferences(nil, nil)
		assert.NoError(t, err)
		assert.Nil(t, references)
	})

	t.Run("deep trees do not grow the call stack", func(t *testing.T) {
		const depth = 100000

		root := &document.Node{Kind: document.NodeKindOperationDefinition}
		current := root
		for i := 0; i < depth; i++ {
			child := &document.Node{Kind: document.NodeKindField, Name: "wrapper"}
			current.Children = []*document.Node{child}
			current = child
		}
		current.Children = []*document.Node{{
			Kind:      document.NodeKindField,
			Name:      "node",
			Arguments: []document.Argument{{Name: "id", Value: document.Value{Kind: document.ValueKindString, Raw: "bottom"}}},
		}}

		references, err := FindNodeReferences(root, nil)
		require.NoError(t, err)
		require.Len(t, references, 1)
		assert.Equal(t, "bottom", references[0].IDValue)
	})
}
