// Package froid translates between Relay global object identification and
// Apollo Federation entity representations.
//
// A request whose variables carry "representations" is answered with
// federation entity stubs whose ids are global IDs built from the
// representation fields. Any other request is searched for node(id:) fields
// and every id is decoded back into the entity fields it was built from.
//
//	service := froid.NewService(froid.Config{})
//	response := service.Handle(&froid.Request{Query: query, Variables: variables})
//
// Handle never fails: errors are reported inside the response.
package froid

import (
	"fmt"

	"github.com/jensneuse/abstractlogger"

	"github.com/TykTechnologies/graphql-froid/pkg/document"
	"github.com/TykTechnologies/graphql-froid/pkg/jsonvalue"
	"github.com/TykTechnologies/graphql-froid/pkg/transform"
)

type Config struct {
	// Transform is applied to the opaque payload. Defaults to identity.
	Transform transform.Transform
	// Codec serializes the payload. Defaults to jsonvalue.Canonical.
	Codec jsonvalue.Codec
	// Parse defaults to document.Parse.
	Parse document.ParseFunc
	// DocumentProvider defaults to document.Direct, i.e. no caching.
	DocumentProvider document.Provider
	// Logger defaults to abstractlogger.NoopLogger.
	Logger abstractlogger.Logger
	// IncludeID adds the requested global ID as "id" to resolved entities.
	IncludeID bool
}

// Service is immutable and safe for concurrent use.
type Service struct {
	transform transform.Transform
	codec     jsonvalue.Codec
	parse     document.ParseFunc
	provider  document.Provider
	log       abstractlogger.Logger
	includeID bool
}

func NewService(config Config) *Service {
	if config.Codec == nil {
		config.Codec = jsonvalue.Canonical
	}
	if config.Parse == nil {
		config.Parse = document.Parse
	}
	if config.DocumentProvider == nil {
		config.DocumentProvider = document.Direct
	}
	if config.Logger == nil {
		config.Logger = abstractlogger.NoopLogger
	}

	return &Service{
		transform: config.Transform,
		codec:     config.Codec,
		parse:     config.Parse,
		provider:  config.DocumentProvider,
		log:       config.Logger,
		includeID: config.IncludeID,
	}
}

// Handle routes the request to the encode or decode path and always returns a
// valid response. On failure the response is an *EntitiesResponse holding a
// single error and no data.
func (s *Service) Handle(request *Request) (response Response) {
	defer func() {
		if recovered := recover(); recovered != nil {
			response = s.failed(request, newError(ErrorKindInternal, fmt.Errorf("panic: %v", recovered)))
		}
	}()

	if request == nil {
		return s.failed(request, newError(ErrorKindInternal, fmt.Errorf("request is nil")))
	}

	doc, err := s.provider(request.Query, s.parse)
	if err != nil {
		return s.failed(request, classify(err))
	}

	if raw, ok := lookupVariable(request.Variables, representationsVariable); ok {
		entities, err := s.handleEntities(raw)
		if err != nil {
			return s.failed(request, classify(err))
		}
		s.log.Debug("froid.Service.Handle",
			abstractlogger.String("operationName", request.OperationName),
			abstractlogger.String("path", "entities"),
			abstractlogger.Int("entities", len(entities)),
		)
		return newEntitiesResponse(entities)
	}

	resolved, err := s.handleNodes(doc, request)
	if err != nil {
		return s.failed(request, classify(err))
	}
	s.log.Debug("froid.Service.Handle",
		abstractlogger.String("operationName", request.OperationName),
		abstractlogger.String("path", "node"),
		abstractlogger.Int("entities", len(resolved)),
	)
	return newEntityObjectResponse(resolved)
}

func (s *Service) handleEntities(raw variable) ([]Entity, error) {
	representations, err := s.parseRepresentations(raw)
	if err != nil {
		return nil, err
	}
	return s.EncodeRepresentations(representations)
}

func (s *Service) handleNodes(doc *document.Document, request *Request) (map[string]ResolvedEntity, error) {
	root, ok := doc.Root()
	if !ok {
		return nil, ErrNoRootSelection
	}

	references, err := FindNodeReferences(root, request.Variables)
	if err != nil {
		return nil, err
	}

	return s.ResolveNodes(references)
}

func (s *Service) failed(request *Request, err *Error) Response {
	operationName := ""
	if request != nil {
		operationName = request.OperationName
	}
	s.log.Error("froid.Service.Handle",
		abstractlogger.String("operationName", operationName),
		abstractlogger.String("kind", err.Kind.String()),
		abstractlogger.Error(err.Err),
	)
	return newErrorResponse(err)
}
