package froid

import (
	"fmt"

	"github.com/TykTechnologies/graphql-froid/pkg/globalid"
	"github.com/TykTechnologies/graphql-froid/pkg/jsonvalue"
)

const (
	typeNameField = "__typename"
	idField       = "id"
)

// ResolveNodes decodes every reference into the entity it identifies, keyed by
// response key. A single failure aborts the whole call.
func (s *Service) ResolveNodes(references []NodeReference) (map[string]ResolvedEntity, error) {
	resolved := make(map[string]ResolvedEntity, len(references))
	for _, reference := range references {
		entity, err := s.resolveNode(reference)
		if err != nil {
			return nil, err
		}
		resolved[reference.ResponseKey] = entity
	}
	return resolved, nil
}

func (s *Service) resolveNode(reference NodeReference) (ResolvedEntity, error) {
	id, err := globalid.Decode(reference.IDValue)
	if err != nil {
		return ResolvedEntity{}, newError(ErrorKindMalformedGlobalID, err, reference.Position)
	}

	payload, err := globalid.DecodeBase64(string(id.OpaqueID))
	if err != nil {
		return ResolvedEntity{}, newError(ErrorKindMalformedGlobalID,
			fmt.Errorf("%w: payload of %s is not base64: %v", globalid.ErrMalformed, reference.IDValue, err),
			reference.Position,
		)
	}

	payload, err = s.transform.ApplyDecode(payload)
	if err != nil {
		return ResolvedEntity{}, newError(ErrorKindInternal, fmt.Errorf("payload transform: %w", err), reference.Position)
	}

	value, err := s.codec.Unmarshal(payload)
	if err != nil {
		return ResolvedEntity{}, newError(ErrorKindPayloadDeserialization, err, reference.Position)
	}

	decoded, err := value.AsObject()
	if err != nil {
		return ResolvedEntity{}, newError(ErrorKindPayloadDeserialization, err, reference.Position)
	}

	fields := make(map[string]jsonvalue.Value, len(decoded)+2)
	for key, field := range decoded {
		fields[key] = field
	}
	fields[typeNameField] = jsonvalue.StringValue(id.TypeName)
	if s.includeID {
		fields[idField] = jsonvalue.StringValue(reference.IDValue)
	}

	return ResolvedEntity{
		TypeName: id.TypeName,
		Fields:   fields,
	}, nil
}
