package http

import "net/http"

// NotFoundHandler answers unknown routes with the API's JSON error
// shape instead of the mux default plain-text 404.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	})
}
