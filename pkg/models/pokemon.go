package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pokemon is a persisted pokemon document. Documents are owner-scoped: reads
// by non-administrative callers are restricted to documents they own.
type Pokemon struct {
	// ID is the unique document identifier, assigned by the store and
	// immutable afterwards.
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	// CreatedAt is when the document was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is when the document was last modified.
	UpdatedAt time.Time `json:"updatedAt"`

	// DeletedAt implements soft deletes.
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Name is the pokemon's display name.
	Name string `gorm:"type:varchar(128);not null" json:"name"`

	// Type is the pokemon's elemental type (e.g. "electric").
	Type string `gorm:"type:varchar(64);not null" json:"type"`

	// OwnerID references the user owning this document.
	OwnerID string `gorm:"type:varchar(64);index" json:"ownerId"`
}

// BeforeCreate hook to generate the document ID if not set.
func (p *Pokemon) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName specifies the table name for GORM.
func (Pokemon) TableName() string {
	return "pokemons"
}

// DocumentID returns the document's identifier.
func (p *Pokemon) DocumentID() uuid.UUID { return p.ID }

// SetOwner records the owning user reference.
func (p *Pokemon) SetOwner(userID string) { p.OwnerID = userID }

// Owner returns the owning user reference.
func (p *Pokemon) Owner() string { return p.OwnerID }
