// Package http serves the froid service over GraphQL HTTP POST requests.
package http

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	log "github.com/jensneuse/abstractlogger"

	"github.com/TykTechnologies/graphql-froid/pkg/froid"
	"github.com/TykTechnologies/graphql-froid/pkg/graphqlerrors"
	"github.com/TykTechnologies/graphql-froid/pkg/pool"
)

const (
	httpHeaderContentType string = "Content-Type"
	httpHeaderRequestID   string = "X-Request-Id"

	httpContentTypeApplicationJson string = "application/json"
)

func (g *GraphQLHTTPRequestHandler) handleHTTP(w http.ResponseWriter, r *http.Request, requestID string) {
	body := pool.BytesBuffer.Get()
	defer pool.BytesBuffer.Put(body)

	if _, err := body.ReadFrom(http.MaxBytesReader(w, r.Body, g.maxRequestBodySize)); err != nil {
		status := http.StatusBadRequest
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			status = http.StatusRequestEntityTooLarge
		}
		g.log.Error("GraphQLHTTPRequestHandler.handleHTTP",
			log.String("requestID", requestID),
			log.Error(err),
		)
		writeErrors(w, status, fmt.Errorf("reading request body: %w", err))
		return
	}

	request, err := froid.UnmarshalRequest(bytes.NewReader(body.Bytes()))
	if err != nil {
		g.log.Error("GraphQLHTTPRequestHandler.handleHTTP",
			log.String("requestID", requestID),
			log.Error(err),
		)
		writeErrors(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	response := g.service.Handle(request)

	buf := pool.BytesBuffer.Get()
	defer pool.BytesBuffer.Put(buf)

	if _, err = response.WriteResponse(buf); err != nil {
		g.log.Error("GraphQLHTTPRequestHandler.handleHTTP",
			log.String("requestID", requestID),
			log.Error(err),
		)
		writeErrors(w, http.StatusInternalServerError, err)
		return
	}

	g.log.Debug("GraphQLHTTPRequestHandler.handleHTTP",
		log.String("requestID", requestID),
		log.String("operationName", request.OperationName),
		log.Any("entities", request.IsEntitiesRequest()),
		log.Any("hasErrors", response.HasErrors()),
	)

	w.Header().Add(httpHeaderContentType, httpContentTypeApplicationJson)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func writeErrors(w http.ResponseWriter, status int, err error) {
	w.Header().Add(httpHeaderContentType, httpContentTypeApplicationJson)
	w.WriteHeader(status)
	_, _ = graphqlerrors.RequestErrorsFromError(err).WriteResponse(w)
}
