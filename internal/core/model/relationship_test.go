package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReverseTable_Symmetric(t *testing.T) {
	// Every asymmetric pair must mirror back to itself: reverse(reverse(t)) == t.
	for typ := range relationshipTypes {
		rev, ok := typ.Reverse()
		assert.True(t, ok, "type %s has no reverse defined", typ)

		back, ok := rev.Reverse()
		assert.True(t, ok)
		assert.Equal(t, typ, back, "reverse of %s does not mirror back", typ)
	}
}

func TestReverseTable_MutualTypes(t *testing.T) {
	for _, typ := range []RelationshipType{TypeSibling, TypeSpouse, TypeCousin, TypeCloseFriend, TypeTwin} {
		assert.True(t, typ.IsMutual())
		rev, ok := typ.Reverse()
		assert.True(t, ok)
		assert.Equal(t, typ, rev)
	}
}

func TestReverseTable_AsymmetricPairs(t *testing.T) {
	cases := map[RelationshipType]RelationshipType{
		TypeGrandparent:    TypeGrandchild,
		TypeParentInLaw:    TypeChildInLaw,
		TypeStepParent:     TypeStepChild,
		TypeAdoptiveParent: TypeAdoptedChild,
		TypeGodparent:      TypeGodchild,
		TypeGuardian:       TypeWard,
	}
	for typ, want := range cases {
		assert.False(t, typ.IsMutual())
		rev, ok := typ.Reverse()
		assert.True(t, ok)
		assert.Equal(t, want, rev)
	}
}

func TestRelationshipType_Valid(t *testing.T) {
	assert.True(t, TypeSibling.Valid())
	assert.False(t, RelationshipType("BEST_ENEMY").Valid())
}

func TestGender_AvatarColor(t *testing.T) {
	assert.Equal(t, GenderMale.AvatarColor(), GenderMale.AvatarColor())
	assert.NotEqual(t, GenderMale.AvatarColor(), GenderFemale.AvatarColor())
	assert.Equal(t, GenderUnknown.AvatarColor(), Gender("").AvatarColor())
}

func TestPerson_FullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", Person{FirstName: "Ada", LastName: "Lovelace"}.FullName())
	assert.Equal(t, "Ada", Person{FirstName: "Ada"}.FullName())
	assert.Equal(t, "Lovelace", Person{LastName: "Lovelace"}.FullName())
}
