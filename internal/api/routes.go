package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/signalytics/pokedex/internal/server"
)

// RegisterRoutes wires every route onto the router. Each resource route is a
// {gate, schema, operation} binding invoked in the fixed order: authenticate,
// validate, operate, normalize. The health endpoint is the only public
// route.
func RegisterRoutes(r *mux.Router, srv server.Server) {
	notFound := notFoundHandler(srv)
	r.NotFoundHandler = notFound
	r.MethodNotAllowedHandler = notFound

	r.Handle("/health", HealthHandler(srv)).Methods("GET")

	registerPokemonRoutes(r, srv)
}

// notFoundHandler answers any unmatched path or verb with the fixed generic
// 404 body.
func notFoundHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(srv, w, http.StatusNotFound, errorBody{
			Error:   true,
			Message: "404 not found",
		})
	})
}
