package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kintree/kintree/internal/core/model"
)

func TestMemoryStore_PersonRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	p := &model.Person{ID: "p1", FirstName: "Ada", Gender: model.GenderFemale}
	require.NoError(t, s.SavePerson(ctx, p))

	got, err := s.GetPerson(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.FirstName)

	_, err = s.GetPerson(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, s.DeletePerson(ctx, "p1"))
	assert.ErrorIs(t, s.DeletePerson(ctx, "p1"), model.ErrNotFound)
}

func TestMemoryStore_ListPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, s.SavePerson(ctx, &model.Person{ID: id}))
	}

	persons, err := s.ListPersons(ctx)
	require.NoError(t, err)
	require.Len(t, persons, 3)
	assert.Equal(t, "c", persons[0].ID)
	assert.Equal(t, "a", persons[1].ID)
	assert.Equal(t, "b", persons[2].ID)

	// Updating in place must not change position.
	require.NoError(t, s.SavePerson(ctx, &model.Person{ID: "c", FirstName: "Carl"}))
	persons, err = s.ListPersons(ctx)
	require.NoError(t, err)
	assert.Equal(t, "c", persons[0].ID)
	assert.Equal(t, "Carl", persons[0].FirstName)
}

func TestMemoryStore_RelationshipTripleUniqueness(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	first := &model.Relationship{ID: "r1", Type: model.TypeSibling, FromID: "a", ToID: "b"}
	require.NoError(t, s.SaveRelationship(ctx, first))

	dup := &model.Relationship{ID: "r2", Type: model.TypeSibling, FromID: "a", ToID: "b"}
	assert.ErrorIs(t, s.SaveRelationship(ctx, dup), model.ErrConflict)

	// Reverse direction and other types are distinct triples.
	require.NoError(t, s.SaveRelationship(ctx, &model.Relationship{ID: "r3", Type: model.TypeSibling, FromID: "b", ToID: "a"}))
	require.NoError(t, s.SaveRelationship(ctx, &model.Relationship{ID: "r4", Type: model.TypeCloseFriend, FromID: "a", ToID: "b"}))

	rels, err := s.ListRelationships(ctx, RelationshipFilter{})
	require.NoError(t, err)
	assert.Len(t, rels, 3)
}

func TestMemoryStore_ListRelationshipsFilter(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.SaveRelationship(ctx, &model.Relationship{ID: "r1", Type: model.TypeSibling, FromID: "a", ToID: "b"}))
	require.NoError(t, s.SaveRelationship(ctx, &model.Relationship{ID: "r2", Type: model.TypeCousin, FromID: "c", ToID: "d"}))
	require.NoError(t, s.SaveRelationship(ctx, &model.Relationship{ID: "r3", Type: model.TypeGrandparent, FromID: "b", ToID: "c"}))

	rels, err := s.ListRelationships(ctx, RelationshipFilter{PersonID: "b"})
	require.NoError(t, err)
	require.Len(t, rels, 2)
	assert.Equal(t, "r1", rels[0].ID)
	assert.Equal(t, "r3", rels[1].ID)
}
