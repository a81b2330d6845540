package http

import "net/http"

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

// AppHttpHandlerFunc adapts a function to AppHttpHandler.
type AppHttpHandlerFunc func(w http.ResponseWriter, r *http.Request) error

func (f AppHttpHandlerFunc) Handle(w http.ResponseWriter, r *http.Request) error {
	return f(w, r)
}
