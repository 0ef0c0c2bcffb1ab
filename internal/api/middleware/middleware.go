// Package middleware holds the container-wide filters and the error
// response shape shared by every route.
package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog/log"

	"github.com/chiheb08/vespa-vectorstore/internal/faults"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// Logger logs one line per request with method, path, status and duration.
func Logger(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	start := time.Now()

	chain.ProcessFilter(req, resp)

	log.Info().
		Str("method", req.Request.Method).
		Str("path", req.Request.URL.Path).
		Int("status", resp.StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("request handled")
}

// RecoverPanic turns handler panics into a 500 instead of killing the server.
func RecoverPanic(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Str("path", req.Request.URL.Path).
				Msg("handler panicked")
			HandleError(resp, nil, http.StatusInternalServerError)
		}
	}()

	chain.ProcessFilter(req, resp)
}

// HandleError writes the error response with an explicit status.
func HandleError(resp *restful.Response, err error, status int) {
	body := ErrorResponse{Error: http.StatusText(status)}
	if err != nil {
		body.Error = err.Error()
		var fault *faults.Fault
		if errors.As(err, &fault) {
			body.Kind = string(fault.Kind)
		}
	}
	_ = resp.WriteHeaderAndEntity(status, body)
}

// HandleFault writes the error response with the status derived from the
// error's kind.
func HandleFault(resp *restful.Response, err error) {
	HandleError(resp, err, StatusFor(faults.KindOf(err)))
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind faults.Kind) int {
	switch kind {
	case faults.KindValidation, faults.KindDecryptionFailure:
		return http.StatusBadRequest
	case faults.KindModelNotFound:
		return http.StatusNotFound
	case faults.KindProviderUnavailable, faults.KindFeedRejected, faults.KindQueryRejected:
		return http.StatusBadGateway
	case faults.KindDimensionMismatch:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
