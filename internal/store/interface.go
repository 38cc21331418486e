package store

import (
	"context"

	"github.com/kintree/kintree/internal/core/model"
)

// RelationshipFilter narrows ListRelationships. A zero filter matches all rows.
type RelationshipFilter struct {
	// PersonID matches rows where the person appears on either side.
	PersonID string
}

// EntityStore is the persistence boundary. The engine reads whole snapshots
// and writes single records; all duplicate detection beyond the engine's own
// pre-checks is delegated to the store's uniqueness constraint, which must be
// surfaced as model.ErrConflict.
type EntityStore interface {
	ListPersons(ctx context.Context) ([]model.Person, error)
	GetPerson(ctx context.Context, id string) (*model.Person, error)
	SavePerson(ctx context.Context, p *model.Person) error
	DeletePerson(ctx context.Context, id string) error

	ListRelationships(ctx context.Context, filter RelationshipFilter) ([]model.Relationship, error)
	GetRelationship(ctx context.Context, id string) (*model.Relationship, error)
	SaveRelationship(ctx context.Context, r *model.Relationship) error
	DeleteRelationship(ctx context.Context, id string) error

	Close(ctx context.Context) error
}
