package http

import (
	"net/http"

	"github.com/google/uuid"
	log "github.com/jensneuse/abstractlogger"

	"github.com/TykTechnologies/graphql-froid/pkg/froid"
)

// DefaultMaxRequestBodySize is used when no positive limit is given.
const DefaultMaxRequestBodySize int64 = 1 << 20

// NewGraphQLHTTPRequestHandler serves service. Request bodies larger than
// maxRequestBodySize bytes are rejected with 413.
func NewGraphQLHTTPRequestHandler(service *froid.Service, logger log.Logger, maxRequestBodySize int64) http.Handler {
	if logger == nil {
		logger = log.NoopLogger
	}
	if maxRequestBodySize <= 0 {
		maxRequestBodySize = DefaultMaxRequestBodySize
	}
	return &GraphQLHTTPRequestHandler{
		log:                logger,
		service:            service,
		maxRequestBodySize: maxRequestBodySize,
	}
}

type GraphQLHTTPRequestHandler struct {
	log                log.Logger
	service            *froid.Service
	maxRequestBodySize int64
}

func (g *GraphQLHTTPRequestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get(httpHeaderRequestID)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set(httpHeaderRequestID, requestID)

	if r.Method != http.MethodPost {
		g.log.Debug("GraphQLHTTPRequestHandler.ServeHTTP",
			log.String("requestID", requestID),
			log.String("method", r.Method),
		)
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	g.handleHTTP(w, r, requestID)
}
