package froid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TykTechnologies/graphql-froid/pkg/document"
	"github.com/TykTechnologies/graphql-froid/pkg/globalid"
	"github.com/TykTechnologies/graphql-froid/pkg/graphqlerrors"
	"github.com/TykTechnologies/graphql-froid/pkg/jsonvalue"
	"github.com/TykTechnologies/graphql-froid/pkg/transform"
)

func TestService_ResolveNodes(t *testing.T) {
	service := NewService(Config{})

	t.Run("known vectors", func(t *testing.T) {
		resolved, err := service.ResolveNodes([]NodeReference{
			{ResponseKey: "a", IDValue: demoAuthor4},
			{ResponseKey: "b", IDValue: demoAuthor1},
			{ResponseKey: "c", IDValue: demoBook2},
		})
		require.NoError(t, err)
		require.Len(t, resolved, 3)

		assert.Equal(t, "DemoAuthor", resolved["a"].TypeName)
		assert.Equal(t, jsonvalue.StringValue("DemoAuthor"), resolved["a"].Fields["__typename"])
		assert.Equal(t, jsonvalue.NumberValue("4"), resolved["a"].Fields["authorId"])
		assert.Equal(t, jsonvalue.NumberValue("1"), resolved["b"].Fields["authorId"])
		assert.Equal(t, "DemoBook", resolved["c"].TypeName)
		assert.Equal(t, jsonvalue.NumberValue("2"), resolved["c"].Fields["bookId"])
		assert.NotContains(t, resolved["c"].Fields, "id")
	})

	t.Run("id is added on request", func(t *testing.T) {
		withID := NewService(Config{IncludeID: true})

		resolved, err := withID.ResolveNodes([]NodeReference{{ResponseKey: "node", IDValue: demoBook1}})
		require.NoError(t, err)
		assert.Equal(t, jsonvalue.StringValue(demoBook1), resolved["node"].Fields["id"])
	})

	t.Run("later references win on duplicate response keys", func(t *testing.T) {
		resolved, err := service.ResolveNodes([]NodeReference{
			{ResponseKey: "node", IDValue: demoBook1},
			{ResponseKey: "node", IDValue: demoAuthor4},
		})
		require.NoError(t, err)
		require.Len(t, resolved, 1)
		assert.Equal(t, "DemoAuthor", resolved["node"].TypeName)
	})

	t.Run("no references", func(t *testing.T) {
		resolved, err := service.ResolveNodes(nil)
		require.NoError(t, err)
		assert.NotNil(t, resolved)
		assert.Empty(t, resolved)
	})

	t.Run("round trip with nested fields", func(t *testing.T) {
		fields := map[string]jsonvalue.Value{
			"isbn":    jsonvalue.StringValue("978-3-16"),
			"edition": jsonvalue.ObjectValue(map[string]jsonvalue.Value{"year": jsonvalue.IntValue(2001), "tags": jsonvalue.ArrayValue(jsonvalue.StringValue("a"), jsonvalue.NullValue())}),
			"rare":    jsonvalue.BoolValue(true),
		}
		entity, err := service.EncodeRepresentation(Representation{TypeName: "Book", Fields: fields})
		require.NoError(t, err)

		resolved, err := service.ResolveNodes([]NodeReference{{ResponseKey: "node", IDValue: entity.ID}})
		require.NoError(t, err)

		expected, err := jsonvalue.Canonical.Marshal(jsonvalue.ObjectValue(map[string]jsonvalue.Value{
			"__typename": jsonvalue.StringValue("Book"),
			"isbn":       fields["isbn"],
			"edition":    fields["edition"],
			"rare":       fields["rare"],
		}))
		require.NoError(t, err)
		actual, err := resolved["node"].MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, string(expected), string(actual))
	})

	t.Run("brotli round trip", func(t *testing.T) {
		compressed := NewService(Config{Transform: transform.Brotli(5, 0)})

		entity, err := compressed.EncodeRepresentation(Representation{
			TypeName: "DemoBook",
			Fields:   map[string]jsonvalue.Value{"bookId": jsonvalue.IntValue(1)},
		})
		require.NoError(t, err)
		assert.NotEqual(t, demoBook1, entity.ID)

		resolved, err := compressed.ResolveNodes([]NodeReference{{ResponseKey: "node", IDValue: entity.ID}})
		require.NoError(t, err)
		assert.Equal(t, jsonvalue.NumberValue("1"), resolved["node"].Fields["bookId"])

		_, err = service.ResolveNodes([]NodeReference{{ResponseKey: "node", IDValue: entity.ID}})
		assert.Error(t, err)
	})

	failures := []struct {
		name string
		id   string
		kind ErrorKind
	}{
		{name: "outer layer is not base64", id: "not base64!", kind: ErrorKindMalformedGlobalID},
		{name: "no separator", id: globalid.Encode("DemoBook", nil)[:8], kind: ErrorKindMalformedGlobalID},
		{name: "payload is not base64", id: "RGVtb0F1dGhvcjp7ImF1dGhvcklkIjasdfo0fQ==", kind: ErrorKindMalformedGlobalID},
		{name: "payload is not json", id: "Qm9vazpibTkwSUdwemIyND0=", kind: ErrorKindPayloadDeserialization},
		{name: "payload is not an object", id: "Qm9vazpXekVzTWwwPQ==", kind: ErrorKindPayloadDeserialization},
	}
	for _, failure := range failures {
		failure := failure
		t.Run(failure.name, func(t *testing.T) {
			position := document.Position{Line: 3, Column: 5}

			resolved, err := service.ResolveNodes([]NodeReference{
				{ResponseKey: "ok", IDValue: demoBook1},
				{ResponseKey: "broken", IDValue: failure.id, Position: position},
			})
			assert.Nil(t, resolved)

			var froidErr *Error
			require.True(t, errors.As(err, &froidErr), "got %v", err)
			assert.Equal(t, failure.kind, froidErr.Kind)
			assert.Equal(t, []graphqlerrors.Location{{Line: 3, Column: 5}}, froidErr.Locations)
		})
	}
}
