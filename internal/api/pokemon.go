package api

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gorilla/mux"

	"github.com/signalytics/pokedex/internal/server"
	"github.com/signalytics/pokedex/pkg/models"
	"github.com/signalytics/pokedex/pkg/schema"
	"github.com/signalytics/pokedex/pkg/store"
)

// pokemonFields declares the pokemon payload shape once; the create and
// update schemas are both derived from it.
func pokemonFields() []schema.Field {
	return []schema.Field{
		{
			Name:     "name",
			Required: true,
			Rules:    []validation.Rule{validation.Length(1, 128)},
		},
		{
			Name:     "type",
			Required: true,
			Rules:    []validation.Rule{validation.Length(1, 64)},
		},
	}
}

// registerPokemonRoutes binds the pokemon resource under /pokemons. The
// operation set is the shared generic implementation, specialized here only
// by configuration.
func registerPokemonRoutes(r *mux.Router, srv server.Server) {
	cfg := store.Config{
		Collection:   "pokemons",
		OwnerScoped:  true,
		FilterFields: []string{"type"},
		SearchFields: []string{"name"},
		AdminRoles:   srv.Config.Auth.AdminRoles,
	}
	ops := store.New[models.Pokemon](cfg, srv.Logger.Named("pokemons"))
	res := NewResource(srv, ops, pokemonFields())

	roles := srv.Config.Auth.Roles
	gated := func(h http.Handler) http.Handler { return Gate(srv, roles, h) }

	r.Handle("/pokemons", gated(res.CreateHandler())).Methods("POST")

	p := r.PathPrefix("/pokemons").Subrouter()
	p.Handle("/page", gated(res.ListHandler())).Methods("POST")
	p.Handle("/filter", gated(res.FilterHandler())).Methods("POST")
	p.Handle("/search", gated(res.SearchHandler())).Methods("POST")
	p.Handle("/{id}", gated(res.ReadHandler())).Methods("GET")
	p.Handle("/{id}", gated(res.UpdateHandler())).Methods("PUT")
	p.Handle("/{id}", gated(res.DeleteHandler())).Methods("DELETE")
}
