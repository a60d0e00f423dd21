package froid

import (
	"encoding/json"
	"io"

	"github.com/TykTechnologies/graphql-froid/pkg/jsonvalue"
)

type Request struct {
	Query         string          `json:"query"`
	Variables     json.RawMessage `json:"variables,omitempty"`
	OperationName string          `json:"operationName,omitempty"`
}

// UnmarshalRequest decodes a GraphQL-over-HTTP request body.
func UnmarshalRequest(reader io.Reader) (*Request, error) {
	request := &Request{}
	if err := jsonvalue.CanonicalConfig.NewDecoder(reader).Decode(request); err != nil {
		return nil, err
	}
	return request, nil
}

// IsEntitiesRequest reports whether the request carries federation
// representations and therefore takes the encode path.
func (r *Request) IsEntitiesRequest() bool {
	_, ok := lookupVariable(r.Variables, representationsVariable)
	return ok
}
