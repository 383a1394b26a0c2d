package middleware

import "net/http"

// Middleware wraps an http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Chain wraps h so the given middleware run in the order listed:
//
//	handler := Chain(mux,
//	    RequestLogging,       // runs first
//	    CORS(origin),         // runs second
//	    AuthMiddleware(auth), // runs third
//	)
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
