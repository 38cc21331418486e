package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kintree/kintree/internal/core/family"
	"github.com/kintree/kintree/internal/core/layout"
	"github.com/kintree/kintree/internal/core/model"
	"github.com/kintree/kintree/internal/core/reconcile"
	"github.com/kintree/kintree/internal/store"
)

// Kintree ties the engine together: it snapshots the entity store and feeds
// the reconciler, resolver and layout engine. The algorithms themselves never
// touch storage; they run over the snapshot taken here.
type Kintree struct {
	Store      store.EntityStore
	Reconciler *reconcile.Reconciler
}

func New(s store.EntityStore) *Kintree {
	return &Kintree{
		Store:      s,
		Reconciler: reconcile.NewReconciler(s),
	}
}

// SavePerson validates and upserts a person. Relation ids must reference
// existing persons and must not point at the person itself.
func (k *Kintree) SavePerson(ctx context.Context, p *model.Person) (*model.Person, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Gender == "" {
		p.Gender = model.GenderUnknown
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	relations := map[string]string{
		"father": p.FatherID,
		"mother": p.MotherID,
		"spouse": p.SpouseID,
	}
	for role, id := range relations {
		if id == "" {
			continue
		}
		if id == p.ID {
			return nil, fmt.Errorf("person %s cannot be their own %s: %w", p.ID, role, model.ErrInvalidInput)
		}
		if _, err := k.Store.GetPerson(ctx, id); err != nil {
			return nil, fmt.Errorf("%s %s does not exist: %w", role, id, model.ErrInvalidInput)
		}
	}

	if err := k.Store.SavePerson(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (k *Kintree) GetPerson(ctx context.Context, id string) (*model.Person, error) {
	return k.Store.GetPerson(ctx, id)
}

func (k *Kintree) ListPersons(ctx context.Context) ([]model.Person, error) {
	return k.Store.ListPersons(ctx)
}

// DeletePerson removes a person after cascading: dependents' father/mother/
// spouse references to the person are cleared, and the person's relationship
// rows are dropped, so no dangling reference survives the delete.
func (k *Kintree) DeletePerson(ctx context.Context, id string) error {
	if _, err := k.Store.GetPerson(ctx, id); err != nil {
		return err
	}

	persons, err := k.Store.ListPersons(ctx)
	if err != nil {
		return err
	}
	for i := range persons {
		dep := persons[i]
		changed := false
		if dep.FatherID == id {
			dep.FatherID = ""
			changed = true
		}
		if dep.MotherID == id {
			dep.MotherID = ""
			changed = true
		}
		if dep.SpouseID == id {
			dep.SpouseID = ""
			changed = true
		}
		if changed {
			if err := k.Store.SavePerson(ctx, &dep); err != nil {
				return err
			}
		}
	}

	rels, err := k.Store.ListRelationships(ctx, store.RelationshipFilter{PersonID: id})
	if err != nil {
		return err
	}
	for _, rel := range rels {
		if err := k.Store.DeleteRelationship(ctx, rel.ID); err != nil {
			return err
		}
	}

	return k.Store.DeletePerson(ctx, id)
}

// CreateRelationship pairs the directional rows via the reconciler after
// checking both endpoints exist.
func (k *Kintree) CreateRelationship(ctx context.Context, typ model.RelationshipType, fromID, toID string) (*reconcile.Pairing, error) {
	for _, id := range []string{fromID, toID} {
		if _, err := k.Store.GetPerson(ctx, id); err != nil {
			return nil, err
		}
	}
	return k.Reconciler.Create(ctx, typ, fromID, toID)
}

func (k *Kintree) DeleteRelationship(ctx context.Context, id string) error {
	return k.Reconciler.Delete(ctx, id)
}

func (k *Kintree) ListRelationships(ctx context.Context, personID string) ([]model.Relationship, error) {
	return k.Store.ListRelationships(ctx, store.RelationshipFilter{PersonID: personID})
}

// ResolveFamily snapshots the store and computes the family set around
// focusID.
func (k *Kintree) ResolveFamily(ctx context.Context, focusID string, opts family.Options) (*family.Set, error) {
	persons, err := k.Store.ListPersons(ctx)
	if err != nil {
		return nil, err
	}
	return family.Resolve(persons, focusID, opts), nil
}

// BuildLayout snapshots the store and lays out the tree. When a focus person
// is set, the working set is first narrowed through the family resolver, so
// the layout sees only the people in scope.
func (k *Kintree) BuildLayout(ctx context.Context, famOpts family.Options, layOpts layout.Options) (*layout.Tree, error) {
	persons, err := k.Store.ListPersons(ctx)
	if err != nil {
		return nil, err
	}

	if layOpts.FocusID != "" {
		set := family.Resolve(persons, layOpts.FocusID, famOpts)
		if len(set.Members) > 0 {
			persons = set.Persons()
		}
	}

	return layout.Build(persons, layOpts), nil
}
