package schema

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// The resource-access pipeline uses a small, fixed set of payload shapes.
// Each constructor below builds one of them from resource configuration.

// EntityCreate is the payload shape for creating a document: the resource's
// declared fields, required flags intact.
func EntityCreate(fields []Field) Schema {
	return New(fields...)
}

// EntityUpdate is the payload shape for a partial update: every entity field
// becomes optional, plus an optional identifier. Fields omitted from the
// payload are left untouched by the operation.
func EntityUpdate(fields []Field) Schema {
	out := make([]Field, 0, len(fields)+1)
	for _, f := range fields {
		f.Required = false
		out = append(out, f)
	}
	out = append(out, Field{
		Name:  "id",
		Rules: []validation.Rule{is.UUID},
	})
	return New(out...)
}

// IdentifierOnly is the shape for read-one and delete: a single required
// document identifier.
func IdentifierOnly() Schema {
	return New(Field{
		Name:     "id",
		Required: true,
		Rules:    []validation.Rule{is.UUID},
	})
}

// PaginationRequest is the shape for list-paginated requests. Page numbering
// is 1-based; pageSize is capped at maxPageSize.
func PaginationRequest(maxPageSize int) Schema {
	return New(
		Field{
			Name:     "page",
			Required: true,
			Rules:    []validation.Rule{PositiveInt()},
		},
		Field{
			Name:  "pageSize",
			Rules: []validation.Rule{PositiveInt(), MaxInt(maxPageSize)},
		},
	)
}

// FilterRequest is the shape for exact-match filtering: an ordered,
// non-empty list of {key, value} pairs whose keys are restricted to the
// resource's filterable fields.
func FilterRequest(allowedKeys []string) Schema {
	return New(Field{
		Name:     "filters",
		Required: true,
		Rules: []validation.Rule{
			validation.Each(validation.Map(
				validation.Key("key",
					validation.Required, validation.In(anySlice(allowedKeys)...)),
				validation.Key("value", validation.Required),
			)),
		},
	})
}

// SearchRequest is the shape for free-text search: one allow-listed key and
// a non-empty search value.
func SearchRequest(allowedKeys []string) Schema {
	return New(
		Field{
			Name:     "key",
			Required: true,
			Rules:    []validation.Rule{validation.In(anySlice(allowedKeys)...)},
		},
		Field{
			Name:     "value",
			Required: true,
			Rules:    []validation.Rule{validation.Length(1, 0)},
		},
	)
}

func anySlice(in []string) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
