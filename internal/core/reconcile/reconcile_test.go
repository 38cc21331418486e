package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kintree/kintree/internal/core/model"
	"github.com/kintree/kintree/internal/store"
)

func listAll(t *testing.T, s store.EntityStore) []model.Relationship {
	t.Helper()
	rels, err := s.ListRelationships(context.Background(), store.RelationshipFilter{})
	require.NoError(t, err)
	return rels
}

func TestCreate_MutualTypeWritesBothRows(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	r := NewReconciler(s)

	pairing, err := r.Create(ctx, model.TypeSibling, "A", "B")
	require.NoError(t, err)
	require.NotNil(t, pairing.Reverse)

	assert.Equal(t, model.TypeSibling, pairing.Primary.Type)
	assert.Equal(t, "A", pairing.Primary.FromID)
	assert.Equal(t, "B", pairing.Primary.ToID)

	assert.Equal(t, model.TypeSibling, pairing.Reverse.Type)
	assert.Equal(t, "B", pairing.Reverse.FromID)
	assert.Equal(t, "A", pairing.Reverse.ToID)

	assert.Len(t, listAll(t, s), 2)
}

func TestCreate_AsymmetricTypeWritesReverseType(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	r := NewReconciler(s)

	pairing, err := r.Create(ctx, model.TypeGrandparent, "A", "B")
	require.NoError(t, err)
	require.NotNil(t, pairing.Reverse)

	assert.Equal(t, model.TypeGrandchild, pairing.Reverse.Type)
	assert.Equal(t, "B", pairing.Reverse.FromID)
	assert.Equal(t, "A", pairing.Reverse.ToID)
}

func TestCreate_SelfRelationshipRejected(t *testing.T) {
	ctx := context.Background()
	r := NewReconciler(store.NewMemoryStore())

	_, err := r.Create(ctx, model.TypeSibling, "A", "A")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestCreate_UnknownTypeRejected(t *testing.T) {
	ctx := context.Background()
	r := NewReconciler(store.NewMemoryStore())

	_, err := r.Create(ctx, model.RelationshipType("FRENEMY"), "A", "B")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestCreate_DuplicateTripleConflicts(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	r := NewReconciler(s)

	_, err := r.Create(ctx, model.TypeSibling, "A", "B")
	require.NoError(t, err)

	_, err = r.Create(ctx, model.TypeSibling, "A", "B")
	assert.ErrorIs(t, err, model.ErrConflict)
	assert.Len(t, listAll(t, s), 2)
}

func TestCreate_ReverseDirectionOfMutualConflicts(t *testing.T) {
	// Creating B->A after A->B for a mutual type hits the mirror row that the
	// first create already wrote.
	ctx := context.Background()
	s := store.NewMemoryStore()
	r := NewReconciler(s)

	_, err := r.Create(ctx, model.TypeSibling, "A", "B")
	require.NoError(t, err)

	_, err = r.Create(ctx, model.TypeSibling, "B", "A")
	assert.ErrorIs(t, err, model.ErrConflict)
	assert.Len(t, listAll(t, s), 2)
}

func TestCreate_ExistingMirrorNotDuplicated(t *testing.T) {
	// Mirror already present (GRANDCHILD B->A): creating GRANDPARENT A->B adds
	// only the primary row.
	ctx := context.Background()
	s := store.NewMemoryStore()
	r := NewReconciler(s)

	require.NoError(t, s.SaveRelationship(ctx, &model.Relationship{
		ID: "pre", Type: model.TypeGrandchild, FromID: "B", ToID: "A",
	}))

	pairing, err := r.Create(ctx, model.TypeGrandparent, "A", "B")
	require.NoError(t, err)
	assert.Nil(t, pairing.Reverse)
	assert.Len(t, listAll(t, s), 2)
}

func TestDelete_RemovesBothSides(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	r := NewReconciler(s)

	pairing, err := r.Create(ctx, model.TypeSibling, "A", "B")
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, pairing.Primary.ID))
	assert.Empty(t, listAll(t, s))
}

func TestDelete_FromEitherSide(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	r := NewReconciler(s)

	pairing, err := r.Create(ctx, model.TypeGrandparent, "A", "B")
	require.NoError(t, err)
	require.NotNil(t, pairing.Reverse)

	require.NoError(t, r.Delete(ctx, pairing.Reverse.ID))
	assert.Empty(t, listAll(t, s))
}

func TestDelete_MissingMirrorTolerated(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	r := NewReconciler(s)

	require.NoError(t, s.SaveRelationship(ctx, &model.Relationship{
		ID: "lonely", Type: model.TypeSibling, FromID: "A", ToID: "B",
	}))

	require.NoError(t, r.Delete(ctx, "lonely"))
	assert.Empty(t, listAll(t, s))
}

func TestDelete_UnknownIDNotFound(t *testing.T) {
	ctx := context.Background()
	r := NewReconciler(store.NewMemoryStore())

	assert.ErrorIs(t, r.Delete(ctx, "nope"), model.ErrNotFound)
}
