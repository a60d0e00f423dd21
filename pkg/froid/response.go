package froid

import (
	"io"

	"github.com/TykTechnologies/graphql-froid/pkg/graphqlerrors"
	"github.com/TykTechnologies/graphql-froid/pkg/jsonvalue"
)

// Response is either an *EntitiesResponse or an *EntityObjectResponse.
// Failed requests are always answered with an *EntitiesResponse without data.
type Response interface {
	HasErrors() bool
	Marshal() ([]byte, error)
	WriteResponse(writer io.Writer) (n int, err error)
}

// Entity is the federation stub returned for one representation.
type Entity struct {
	TypeName string `json:"__typename"`
	ID       string `json:"id"`
}

type EntityList struct {
	Entities []Entity `json:"_entities"`
}

type EntitiesResponse struct {
	Data   *EntityList                 `json:"data,omitempty"`
	Errors graphqlerrors.RequestErrors `json:"errors,omitempty"`
}

func (r *EntitiesResponse) HasErrors() bool {
	return len(r.Errors) > 0
}

func (r *EntitiesResponse) Marshal() ([]byte, error) {
	return jsonvalue.CanonicalConfig.Marshal(r)
}

func (r *EntitiesResponse) WriteResponse(writer io.Writer) (n int, err error) {
	return writeResponse(writer, r)
}

// ResolvedEntity is the object decoded from a global ID. Fields always
// contains __typename.
type ResolvedEntity struct {
	TypeName string
	Fields   map[string]jsonvalue.Value
}

func (e ResolvedEntity) MarshalJSON() ([]byte, error) {
	return jsonvalue.Canonical.Marshal(jsonvalue.ObjectValue(e.Fields))
}

type EntityObjectResponse struct {
	Data       map[string]ResolvedEntity   `json:"data"`
	Errors     graphqlerrors.RequestErrors `json:"errors,omitempty"`
	Extensions map[string]interface{}      `json:"extensions,omitempty"`
}

func (r *EntityObjectResponse) HasErrors() bool {
	return len(r.Errors) > 0
}

func (r *EntityObjectResponse) Marshal() ([]byte, error) {
	return jsonvalue.CanonicalConfig.Marshal(r)
}

func (r *EntityObjectResponse) WriteResponse(writer io.Writer) (n int, err error) {
	return writeResponse(writer, r)
}

func writeResponse(writer io.Writer, response Response) (int, error) {
	out, err := response.Marshal()
	if err != nil {
		return 0, err
	}
	return writer.Write(out)
}

func newEntitiesResponse(entities []Entity) *EntitiesResponse {
	return &EntitiesResponse{
		Data: &EntityList{
			Entities: entities,
		},
	}
}

func newEntityObjectResponse(entities map[string]ResolvedEntity) *EntityObjectResponse {
	return &EntityObjectResponse{
		Data: entities,
	}
}

// newErrorResponse discards any partial data and reports err as one record.
func newErrorResponse(err *Error) *EntitiesResponse {
	return &EntitiesResponse{
		Errors: graphqlerrors.RequestErrors{err.RequestError()},
	}
}
