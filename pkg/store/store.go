// Package store implements the resource operation set: a fixed vocabulary of
// operations (create, read-one, update, delete, list-paginated, filter,
// search) over persisted documents. The set is implemented once and
// instantiated per resource from a Config, so adding a resource means adding
// configuration, not another operation implementation.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/iancoleman/strcase"
	"gorm.io/gorm"
)

// Document is the behavior a persisted resource document must expose to the
// operation set.
type Document interface {
	DocumentID() uuid.UUID
	SetOwner(userID string)
	Owner() string
}

// Config specializes the operation set for one resource.
type Config struct {
	// Collection names the underlying document collection, for logging.
	Collection string

	// OwnerScoped restricts default read access to documents owned by the
	// caller.
	OwnerScoped bool

	// FilterFields are the payload keys allowed in exact-match filters.
	FilterFields []string

	// SearchFields are the payload keys allowed in free-text search.
	SearchFields []string

	// AdminRoles grant unrestricted access to owner-scoped documents.
	AdminRoles []string
}

// Caller identifies the requester for an operation: a user identifier and
// the role resolved from their credential.
type Caller struct {
	UserID string
	Role   string
}

// Pair is one exact-match filter condition.
type Pair struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// Resource is the operation set for one resource type. It holds no mutable
// state shared across requests: every operation is a function of the caller
// identity, the validated input, and the store handle.
type Resource[T any, P interface {
	*T
	Document
}] struct {
	cfg    Config
	logger hclog.Logger
}

// New builds the operation set for a resource.
func New[T any, P interface {
	*T
	Document
}](cfg Config, logger hclog.Logger) *Resource[T, P] {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Resource[T, P]{cfg: cfg, logger: logger}
}

// Config returns the resource configuration.
func (r *Resource[T, P]) Config() Config { return r.cfg }

func (r *Resource[T, P]) unrestricted(ident Caller) bool {
	return slices.Contains(r.cfg.AdminRoles, ident.Role)
}

// scoped applies the owner-scoping invariant shared by every read operation.
func (r *Resource[T, P]) scoped(q *gorm.DB, ident Caller) *gorm.DB {
	if r.cfg.OwnerScoped && !r.unrestricted(ident) {
		q = q.Where("owner_id = ?", ident.UserID)
	}
	return q
}

// Create inserts a new document with the caller as owner and store-assigned
// identifier and timestamps.
func (r *Resource[T, P]) Create(
	ctx context.Context, db *gorm.DB, ident Caller, doc P,
) error {
	if r.cfg.OwnerScoped {
		doc.SetOwner(ident.UserID)
	}
	if err := db.WithContext(ctx).Create(doc).Error; err != nil {
		r.logger.Error("error creating document",
			"collection", r.cfg.Collection, "error", err)
		return fmt.Errorf("%w: %s", ErrNotPersisted, r.cfg.Collection)
	}
	return nil
}

// ReadOne returns the document matching id, within the caller's scope.
func (r *Resource[T, P]) ReadOne(
	ctx context.Context, db *gorm.DB, ident Caller, id uuid.UUID,
) (P, error) {
	var doc T
	err := r.scoped(db.WithContext(ctx), ident).
		First(&doc, "id = ?", id).
		Error
	if err != nil {
		return nil, r.readErr(err)
	}
	return P(&doc), nil
}

// Update applies only the provided fields to an existing document and
// refreshes its modification timestamp. Omitted fields are left untouched.
func (r *Resource[T, P]) Update(
	ctx context.Context,
	db *gorm.DB,
	ident Caller,
	id uuid.UUID,
	fields map[string]any,
) (P, error) {
	var doc T
	err := r.scoped(db.WithContext(ctx), ident).
		First(&doc, "id = ?", id).
		Error
	if err != nil {
		return nil, r.readErr(err)
	}

	if len(fields) > 0 {
		updates := make(map[string]any, len(fields))
		for k, v := range fields {
			updates[strcase.ToSnake(k)] = v
		}
		if err := db.WithContext(ctx).
			Model(P(&doc)).
			Updates(updates).
			Error; err != nil {
			r.logger.Error("error updating document",
				"collection", r.cfg.Collection, "id", id, "error", err)
			return nil, fmt.Errorf("%w: %s", ErrNotPersisted, r.cfg.Collection)
		}
	}

	// Re-read so the caller sees store-assigned timestamps.
	if err := db.WithContext(ctx).First(&doc, "id = ?", id).Error; err != nil {
		return nil, r.readErr(err)
	}
	return P(&doc), nil
}

// Delete removes the document matching id, within the caller's scope.
func (r *Resource[T, P]) Delete(
	ctx context.Context, db *gorm.DB, ident Caller, id uuid.UUID,
) error {
	res := r.scoped(db.WithContext(ctx), ident).Delete(new(T), "id = ?", id)
	if res.Error != nil {
		r.logger.Error("error deleting document",
			"collection", r.cfg.Collection, "id", id, "error", res.Error)
		return fmt.Errorf("%w: %s", ErrNotPersisted, r.cfg.Collection)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPaginated returns one stable-ordered page of documents plus the total
// count within the caller's scope. Ordering is descending by creation time
// with the identifier as tie-break, so pages are deterministic. Page
// numbering is 1-based; a page beyond the last returns an empty page.
func (r *Resource[T, P]) ListPaginated(
	ctx context.Context, db *gorm.DB, ident Caller, page, pageSize int,
) ([]T, int64, error) {
	base := func() *gorm.DB {
		return r.scoped(db.WithContext(ctx).Model(new(T)), ident)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, r.readErr(err)
	}

	docs := []T{}
	err := base().
		Order("created_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&docs).
		Error
	if err != nil {
		return nil, 0, r.readErr(err)
	}
	return docs, total, nil
}

// Filter returns all documents matching every {key, value} pair exactly.
// An empty pair list is rejected: filtering requires at least one
// discriminating condition.
func (r *Resource[T, P]) Filter(
	ctx context.Context, db *gorm.DB, ident Caller, pairs []Pair,
) ([]T, error) {
	if len(pairs) == 0 {
		return nil, ErrEmptyFilter
	}

	q := r.scoped(db.WithContext(ctx), ident)
	for _, p := range pairs {
		col, err := column(p.Key, r.cfg.FilterFields)
		if err != nil {
			return nil, err
		}
		q = q.Where(fmt.Sprintf("%s = ?", col), p.Value)
	}

	docs := []T{}
	if err := q.Order("created_at DESC, id DESC").Find(&docs).Error; err != nil {
		return nil, r.readErr(err)
	}
	return docs, nil
}

// Search returns documents whose key field contains value as a
// case-insensitive substring. Unlike Filter this is a partial match, and is
// restricted to fields marked searchable.
func (r *Resource[T, P]) Search(
	ctx context.Context, db *gorm.DB, ident Caller, key, value string,
) ([]T, error) {
	col, err := column(key, r.cfg.SearchFields)
	if err != nil {
		return nil, err
	}

	docs := []T{}
	err = r.scoped(db.WithContext(ctx), ident).
		Where(fmt.Sprintf("LOWER(%s) LIKE ?", col),
			"%"+strings.ToLower(value)+"%").
		Order("created_at DESC, id DESC").
		Find(&docs).
		Error
	if err != nil {
		return nil, r.readErr(err)
	}
	return docs, nil
}

// column maps an allow-listed payload key to its store column. Keys outside
// the allow-list never reach SQL.
func column(key string, allowed []string) (string, error) {
	if !slices.Contains(allowed, key) {
		return "", fmt.Errorf("%w: %q", ErrFieldNotAllowed, key)
	}
	return strcase.ToSnake(key), nil
}

func (r *Resource[T, P]) readErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	r.logger.Error("store read failed",
		"collection", r.cfg.Collection, "error", err)
	return fmt.Errorf("%w: %s", ErrStore, r.cfg.Collection)
}
