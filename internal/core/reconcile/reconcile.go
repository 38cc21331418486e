// Package reconcile keeps the directional relationship rows consistent with
// the symmetric relations they represent. It is the single owner of the
// pairing logic: callers never construct only one side of a relationship.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kintree/kintree/internal/core/model"
	"github.com/kintree/kintree/internal/store"
)

type Reconciler struct {
	Store store.EntityStore
}

func NewReconciler(s store.EntityStore) *Reconciler {
	return &Reconciler{Store: s}
}

// Pairing is the result of a create: the requested row plus the mirrored row,
// when a reverse type is defined and the mirror did not already exist.
type Pairing struct {
	Primary model.Relationship  `json:"primary"`
	Reverse *model.Relationship `json:"reverse,omitempty"`
}

// Create inserts the (fromID, toID, typ) row and, when the type defines a
// reverse, the (toID, fromID, reverse) row. A store-level uniqueness trip is
// treated exactly like a pre-checked duplicate: racing creators of a mutual
// pair both resolve to ErrConflict rather than a third row.
func (r *Reconciler) Create(ctx context.Context, typ model.RelationshipType, fromID, toID string) (*Pairing, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("unknown relationship type %q: %w", typ, model.ErrInvalidInput)
	}
	if fromID == toID {
		return nil, fmt.Errorf("relationship from %s to itself: %w", fromID, model.ErrInvalidInput)
	}

	existing, err := r.Store.ListRelationships(ctx, store.RelationshipFilter{PersonID: fromID})
	if err != nil {
		return nil, err
	}
	if findTriple(existing, fromID, toID, typ) != nil {
		return nil, fmt.Errorf("%s %s->%s: %w", typ, fromID, toID, model.ErrConflict)
	}

	primary := model.Relationship{
		ID:        uuid.New().String(),
		Type:      typ,
		FromID:    fromID,
		ToID:      toID,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.Store.SaveRelationship(ctx, &primary); err != nil {
		return nil, err
	}

	pairing := &Pairing{Primary: primary}

	reverseType, ok := typ.Reverse()
	if !ok {
		return pairing, nil
	}
	if findTriple(existing, toID, fromID, reverseType) != nil {
		return pairing, nil
	}

	reverse := model.Relationship{
		ID:        uuid.New().String(),
		Type:      reverseType,
		FromID:    toID,
		ToID:      fromID,
		CreatedAt: primary.CreatedAt,
	}
	if err := r.Store.SaveRelationship(ctx, &reverse); err != nil {
		// A concurrent writer may have inserted the mirror between the check
		// and the insert; the pair is complete either way.
		if errors.Is(err, model.ErrConflict) {
			return pairing, nil
		}
		return nil, err
	}
	pairing.Reverse = &reverse

	return pairing, nil
}

// Delete removes the row and best-effort removes its mirror. Absence of the
// mirror is not an error: a direct store edit may have already removed it.
func (r *Reconciler) Delete(ctx context.Context, id string) error {
	rel, err := r.Store.GetRelationship(ctx, id)
	if err != nil {
		return err
	}

	if err := r.Store.DeleteRelationship(ctx, id); err != nil {
		return err
	}

	reverseType, ok := rel.Type.Reverse()
	if !ok {
		return nil
	}

	remaining, err := r.Store.ListRelationships(ctx, store.RelationshipFilter{PersonID: rel.ToID})
	if err != nil {
		return nil
	}
	if mirror := findTriple(remaining, rel.ToID, rel.FromID, reverseType); mirror != nil {
		if err := r.Store.DeleteRelationship(ctx, mirror.ID); err != nil && !errors.Is(err, model.ErrNotFound) {
			return err
		}
	}
	return nil
}

func findTriple(rels []model.Relationship, fromID, toID string, typ model.RelationshipType) *model.Relationship {
	for i := range rels {
		if rels[i].FromID == fromID && rels[i].ToID == toID && rels[i].Type == typ {
			return &rels[i]
		}
	}
	return nil
}
