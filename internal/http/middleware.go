package http

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"hostprobe/internal/shared/loggers"
	"hostprobe/internal/shared/svcerrors"
	"hostprobe/internal/shared/ulid"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// setupMiddleware installs the chain in front of every route. The recoverer sits
// inside instrumentation so a recovered panic is observed as a 500.
func setupMiddleware(router *chi.Mux, httpLogger loggers.Logger, instrument func(http.Handler) http.Handler) {
	router.Use(mwRequestID(httpLogger))
	router.Use(mwAppResponseWriter)
	if instrument != nil {
		router.Use(instrument)
	}
	router.Use(mwRecoverer)
	router.Use(middleware.GetHead)
}

// mwAppResponseWriter initializes the appResponseWriter once and passes it through the middleware chain.
func mwAppResponseWriter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		appWriter := newAppResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(appWriter, r)
	})
}

// mwRequestID extracts or generates a request ID and attaches a request-scoped logger to context.
// The request headers are left untouched so /info echoes exactly what the caller sent.
func mwRequestID(httpLogger loggers.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := incomingRequestID(r)
			if id == "" {
				id = ulid.NewRequestID()
			}
			w.Header().Set(headerRequestID, id)

			ctxWithReqLogger := httpLogger.With().
				Str(loggers.FieldRequestID, id).
				Logger().WithContext(r.Context())

			next.ServeHTTP(w, withRequestID(r.WithContext(ctxWithReqLogger), id))
		})
	}
}

// mwRecoverer provides panic recovery middleware.
func mwRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}

				loggers.Ctx(r.Context()).Error().
					Bytes(loggers.FieldErrorStack, debug.Stack()).
					Msgf("http panic recovered: %v", p)

				// Convert panic value to error
				var panicErr error
				if err, ok := p.(error); ok {
					panicErr = err
				} else {
					panicErr = fmt.Errorf("%v", p)
				}

				svcErr := svcerrors.NewInternalErrorPanic(panicErr)
				writeErrorResponse(w, r, svcErr)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
