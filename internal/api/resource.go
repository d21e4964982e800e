package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/signalytics/pokedex/internal/auth"
	"github.com/signalytics/pokedex/internal/server"
	"github.com/signalytics/pokedex/pkg/schema"
	"github.com/signalytics/pokedex/pkg/store"
)

// defaultPageSize applies when a pagination request omits pageSize.
const defaultPageSize = 25

// Resource is the HTTP glue for one resource type: it translates validated
// requests into operation calls and operation results into envelopes. The
// pipeline order is fixed: the gate has already run by the time any handler
// here executes, and validation always precedes the operation.
type Resource[T any, P interface {
	*T
	store.Document
}] struct {
	srv server.Server
	ops *store.Resource[T, P]

	createSchema schema.Schema
	updateSchema schema.Schema
	idSchema     schema.Schema
	pageSchema   schema.Schema
	filterSchema schema.Schema
	searchSchema schema.Schema
}

// NewResource builds the handler set for a resource. The payload schemas are
// derived from the resource's entity fields and store configuration.
func NewResource[T any, P interface {
	*T
	store.Document
}](
	srv server.Server,
	ops *store.Resource[T, P],
	entityFields []schema.Field,
) *Resource[T, P] {
	cfg := ops.Config()
	return &Resource[T, P]{
		srv:          srv,
		ops:          ops,
		createSchema: schema.EntityCreate(entityFields),
		updateSchema: schema.EntityUpdate(entityFields),
		idSchema:     schema.IdentifierOnly(),
		pageSchema:   schema.PaginationRequest(srv.Config.Server.MaxPageSize),
		filterSchema: schema.FilterRequest(cfg.FilterFields),
		searchSchema: schema.SearchRequest(cfg.SearchFields),
	}
}

// caller resolves the identity the gate stashed in the request context.
func (rs *Resource[T, P]) caller(r *http.Request) (store.Caller, bool) {
	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		return store.Caller{}, false
	}
	return store.Caller{UserID: ident.UserID, Role: ident.Role}, true
}

// pathID validates and parses the {id} path segment.
func (rs *Resource[T, P]) pathID(r *http.Request) (uuid.UUID, error) {
	raw := map[string]any{"id": mux.Vars(r)["id"]}
	validated, err := rs.idSchema.Validate(raw)
	if err != nil {
		return uuid.Nil, err
	}
	id, ok := validated["id"].(string)
	if !ok {
		return uuid.Nil, errors.New("identifier must be a string")
	}
	return uuid.Parse(id)
}

// CreateHandler handles POST / for the resource.
func (rs *Resource[T, P]) CreateHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, ok := rs.caller(r)
		if !ok {
			respondUnauthorized(rs.srv, w)
			return
		}

		raw, err := decodeBody(r)
		if err != nil {
			respondError(rs.srv, w, http.StatusBadRequest,
				codeValidation, "malformed request body")
			return
		}
		validated, err := rs.createSchema.Validate(raw)
		if err != nil {
			respondValidation(rs.srv, w, err)
			return
		}

		var doc T
		if err := schema.Decode(validated, &doc); err != nil {
			respondError(rs.srv, w, http.StatusBadRequest,
				codeValidation, "invalid request payload")
			return
		}

		if err := rs.ops.Create(r.Context(), rs.srv.DB, ident, P(&doc)); err != nil {
			respondOpError(rs.srv, w, err)
			return
		}
		respondJSON(rs.srv, w, http.StatusOK, &doc)
	})
}

// ReadHandler handles GET /{id}.
func (rs *Resource[T, P]) ReadHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, ok := rs.caller(r)
		if !ok {
			respondUnauthorized(rs.srv, w)
			return
		}

		id, err := rs.pathID(r)
		if err != nil {
			respondValidation(rs.srv, w, err)
			return
		}

		doc, err := rs.ops.ReadOne(r.Context(), rs.srv.DB, ident, id)
		if err != nil {
			respondOpError(rs.srv, w, err)
			return
		}
		respondJSON(rs.srv, w, http.StatusOK, doc)
	})
}

// UpdateHandler handles PUT /{id}. Fields omitted from the payload keep
// their prior values.
func (rs *Resource[T, P]) UpdateHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, ok := rs.caller(r)
		if !ok {
			respondUnauthorized(rs.srv, w)
			return
		}

		id, err := rs.pathID(r)
		if err != nil {
			respondValidation(rs.srv, w, err)
			return
		}

		raw, err := decodeBody(r)
		if err != nil {
			respondError(rs.srv, w, http.StatusBadRequest,
				codeValidation, "malformed request body")
			return
		}
		validated, err := rs.updateSchema.Validate(raw)
		if err != nil {
			respondValidation(rs.srv, w, err)
			return
		}
		// The identifier is taken from the path and is immutable.
		delete(validated, "id")

		doc, err := rs.ops.Update(r.Context(), rs.srv.DB, ident, id, validated)
		if err != nil {
			respondOpError(rs.srv, w, err)
			return
		}
		respondJSON(rs.srv, w, http.StatusOK, doc)
	})
}

// DeleteHandler handles DELETE /{id}.
func (rs *Resource[T, P]) DeleteHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, ok := rs.caller(r)
		if !ok {
			respondUnauthorized(rs.srv, w)
			return
		}

		id, err := rs.pathID(r)
		if err != nil {
			respondValidation(rs.srv, w, err)
			return
		}

		if err := rs.ops.Delete(r.Context(), rs.srv.DB, ident, id); err != nil {
			respondOpError(rs.srv, w, err)
			return
		}
		respondJSON(rs.srv, w, http.StatusOK, deletedBody{Success: true})
	})
}

// ListHandler handles POST /page.
func (rs *Resource[T, P]) ListHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, ok := rs.caller(r)
		if !ok {
			respondUnauthorized(rs.srv, w)
			return
		}

		raw, err := decodeBody(r)
		if err != nil {
			respondError(rs.srv, w, http.StatusBadRequest,
				codeValidation, "malformed request body")
			return
		}
		validated, err := rs.pageSchema.Validate(raw)
		if err != nil {
			respondValidation(rs.srv, w, err)
			return
		}

		var req struct {
			Page     int `json:"page"`
			PageSize int `json:"pageSize"`
		}
		if err := schema.Decode(validated, &req); err != nil {
			respondError(rs.srv, w, http.StatusBadRequest,
				codeValidation, "invalid request payload")
			return
		}
		if req.PageSize == 0 {
			req.PageSize = defaultPageSize
		}

		items, total, err := rs.ops.ListPaginated(
			r.Context(), rs.srv.DB, ident, req.Page, req.PageSize)
		if err != nil {
			respondOpError(rs.srv, w, err)
			return
		}
		respondJSON(rs.srv, w, http.StatusOK, pageBody{
			Items:    items,
			Page:     req.Page,
			PageSize: req.PageSize,
			Total:    total,
		})
	})
}

// FilterHandler handles POST /filter.
func (rs *Resource[T, P]) FilterHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, ok := rs.caller(r)
		if !ok {
			respondUnauthorized(rs.srv, w)
			return
		}

		raw, err := decodeBody(r)
		if err != nil {
			respondError(rs.srv, w, http.StatusBadRequest,
				codeValidation, "malformed request body")
			return
		}
		validated, err := rs.filterSchema.Validate(raw)
		if err != nil {
			respondValidation(rs.srv, w, err)
			return
		}

		var req struct {
			Filters []store.Pair `json:"filters"`
		}
		if err := schema.Decode(validated, &req); err != nil {
			respondError(rs.srv, w, http.StatusBadRequest,
				codeValidation, "invalid request payload")
			return
		}

		items, err := rs.ops.Filter(r.Context(), rs.srv.DB, ident, req.Filters)
		if err != nil {
			respondOpError(rs.srv, w, err)
			return
		}
		respondJSON(rs.srv, w, http.StatusOK, items)
	})
}

// SearchHandler handles POST /search.
func (rs *Resource[T, P]) SearchHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, ok := rs.caller(r)
		if !ok {
			respondUnauthorized(rs.srv, w)
			return
		}

		raw, err := decodeBody(r)
		if err != nil {
			respondError(rs.srv, w, http.StatusBadRequest,
				codeValidation, "malformed request body")
			return
		}
		validated, err := rs.searchSchema.Validate(raw)
		if err != nil {
			respondValidation(rs.srv, w, err)
			return
		}

		var req struct {
			Key   string `json:"key"`
			Value string `json:"value"`
		}
		if err := schema.Decode(validated, &req); err != nil {
			respondError(rs.srv, w, http.StatusBadRequest,
				codeValidation, "invalid request payload")
			return
		}

		items, err := rs.ops.Search(
			r.Context(), rs.srv.DB, ident, req.Key, req.Value)
		if err != nil {
			respondOpError(rs.srv, w, err)
			return
		}
		respondJSON(rs.srv, w, http.StatusOK, items)
	})
}
