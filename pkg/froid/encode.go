package froid

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/buger/jsonparser"

	"github.com/TykTechnologies/graphql-froid/pkg/globalid"
	"github.com/TykTechnologies/graphql-froid/pkg/jsonvalue"
)

// Representation is one entry of the federation representations variable.
// Fields never contains __typename.
type Representation struct {
	TypeName string
	Fields   map[string]jsonvalue.Value
}

// NewRepresentation splits the __typename discriminator off fields.
func NewRepresentation(fields map[string]jsonvalue.Value) (Representation, error) {
	typeNameValue, ok := fields[typeNameField]
	if !ok {
		return Representation{}, fmt.Errorf("%w: missing %s", ErrInvalidRepresentation, typeNameField)
	}
	typeName, err := typeNameValue.AsString()
	if err != nil {
		return Representation{}, fmt.Errorf("%w: %s: %v", ErrInvalidRepresentation, typeNameField, err)
	}
	if err = validateTypeName(typeName); err != nil {
		return Representation{}, err
	}

	rest := make(map[string]jsonvalue.Value, len(fields))
	for key, value := range fields {
		if key == typeNameField {
			continue
		}
		rest[key] = value
	}

	return Representation{
		TypeName: typeName,
		Fields:   rest,
	}, nil
}

// EncodeRepresentations turns representations into entity stubs, keeping
// their order.
func (s *Service) EncodeRepresentations(representations []Representation) ([]Entity, error) {
	entities := make([]Entity, 0, len(representations))
	for _, representation := range representations {
		entity, err := s.EncodeRepresentation(representation)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

// EncodeRepresentation builds the global ID of a single representation:
//
//	Base64(typeName + ":" + Base64(transform(canonicalJSON(fields))))
//
// Canonical JSON sorts keys, so equal fields always give the same ID.
func (s *Service) EncodeRepresentation(representation Representation) (Entity, error) {
	if err := validateTypeName(representation.TypeName); err != nil {
		return Entity{}, newError(ErrorKindInvalidRepresentation, err)
	}

	fields := representation.Fields
	if _, ok := fields[typeNameField]; ok {
		fields = make(map[string]jsonvalue.Value, len(representation.Fields))
		for key, value := range representation.Fields {
			if key != typeNameField {
				fields[key] = value
			}
		}
	}

	payload, err := s.codec.Marshal(jsonvalue.ObjectValue(fields))
	if err != nil {
		return Entity{}, newError(ErrorKindInternal, fmt.Errorf("marshal %s representation: %w", representation.TypeName, err))
	}

	payload, err = s.transform.ApplyEncode(payload)
	if err != nil {
		return Entity{}, newError(ErrorKindInternal, fmt.Errorf("payload transform: %w", err))
	}

	inner := base64.StdEncoding.EncodeToString(payload)

	return Entity{
		TypeName: representation.TypeName,
		ID:       globalid.Encode(representation.TypeName, []byte(inner)),
	}, nil
}

// validateTypeName rejects type names that would not survive a decode, which
// splits the global ID on its first colon.
func validateTypeName(typeName string) error {
	if strings.ContainsRune(typeName, ':') {
		return fmt.Errorf("%w: %s %q must not contain ':'", ErrInvalidRepresentation, typeNameField, typeName)
	}
	return nil
}

// parseRepresentations reads the raw representations variable, which must be
// an array of objects.
func (s *Service) parseRepresentations(raw variable) ([]Representation, error) {
	if raw.dataType != jsonparser.Array {
		return nil, fmt.Errorf("%w: %s must be a list, got %s", ErrInvalidRepresentation, representationsVariable, raw.dataType)
	}

	var (
		representations []Representation
		parseErr        error
	)

	_, err := jsonparser.ArrayEach(raw.raw, func(value []byte, dataType jsonparser.ValueType, _ int, err error) {
		if parseErr != nil {
			return
		}
		if err != nil {
			parseErr = err
			return
		}
		if dataType != jsonparser.Object {
			parseErr = fmt.Errorf("%w: representation %d must be an object, got %s", ErrInvalidRepresentation, len(representations), dataType)
			return
		}

		decoded, err := s.codec.Unmarshal(value)
		if err != nil {
			parseErr = fmt.Errorf("%w: representation %d: %v", ErrInvalidRepresentation, len(representations), err)
			return
		}
		fields, err := decoded.AsObject()
		if err != nil {
			parseErr = fmt.Errorf("%w: representation %d: %v", ErrInvalidRepresentation, len(representations), err)
			return
		}
		representation, err := NewRepresentation(fields)
		if err != nil {
			parseErr = fmt.Errorf("representation %d: %w", len(representations), err)
			return
		}
		representations = append(representations, representation)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRepresentation, err)
	}
	if parseErr != nil {
		return nil, parseErr
	}

	return representations, nil
}
