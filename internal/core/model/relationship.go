package model

import "time"

// RelationshipType is one of the categorical relationship kinds. Relationships
// are stored as directional rows even for symmetric concepts, so every type
// carries static metadata describing how its reverse row looks.
type RelationshipType string

const (
	TypeParent         RelationshipType = "PARENT"
	TypeChild          RelationshipType = "CHILD"
	TypeSibling        RelationshipType = "SIBLING"
	TypeHalfSibling    RelationshipType = "HALF_SIBLING"
	TypeTwin           RelationshipType = "TWIN"
	TypeSpouse         RelationshipType = "SPOUSE"
	TypeGrandparent    RelationshipType = "GRANDPARENT"
	TypeGrandchild     RelationshipType = "GRANDCHILD"
	TypeAuntUncle      RelationshipType = "AUNT_UNCLE"
	TypeNieceNephew    RelationshipType = "NIECE_NEPHEW"
	TypeCousin         RelationshipType = "COUSIN"
	TypeParentInLaw    RelationshipType = "PARENT_IN_LAW"
	TypeChildInLaw     RelationshipType = "CHILD_IN_LAW"
	TypeSiblingInLaw   RelationshipType = "SIBLING_IN_LAW"
	TypeStepParent     RelationshipType = "STEP_PARENT"
	TypeStepChild      RelationshipType = "STEP_CHILD"
	TypeStepSibling    RelationshipType = "STEP_SIBLING"
	TypeAdoptiveParent RelationshipType = "ADOPTIVE_PARENT"
	TypeAdoptedChild   RelationshipType = "ADOPTED_CHILD"
	TypeFosterParent   RelationshipType = "FOSTER_PARENT"
	TypeFosterChild    RelationshipType = "FOSTER_CHILD"
	TypeGodparent      RelationshipType = "GODPARENT"
	TypeGodchild       RelationshipType = "GODCHILD"
	TypeGuardian       RelationshipType = "GUARDIAN"
	TypeWard           RelationshipType = "WARD"
	TypeCloseFriend    RelationshipType = "CLOSE_FRIEND"
)

// Category groups relationship types for display and filtering.
type Category string

const (
	CategoryImmediate Category = "immediate"
	CategoryExtended  Category = "extended"
	CategoryStep      Category = "step"
	CategoryAdoptive  Category = "adoptive"
	CategoryInLaw     Category = "in-law"
	CategoryFriend    Category = "friend"
)

type typeInfo struct {
	category Category
	mutual   bool
	reverse  RelationshipType // unset when mutual (reverse = same type)
}

var relationshipTypes = map[RelationshipType]typeInfo{
	TypeParent:         {category: CategoryImmediate, reverse: TypeChild},
	TypeChild:          {category: CategoryImmediate, reverse: TypeParent},
	TypeSibling:        {category: CategoryImmediate, mutual: true},
	TypeHalfSibling:    {category: CategoryImmediate, mutual: true},
	TypeTwin:           {category: CategoryImmediate, mutual: true},
	TypeSpouse:         {category: CategoryImmediate, mutual: true},
	TypeGrandparent:    {category: CategoryExtended, reverse: TypeGrandchild},
	TypeGrandchild:     {category: CategoryExtended, reverse: TypeGrandparent},
	TypeAuntUncle:      {category: CategoryExtended, reverse: TypeNieceNephew},
	TypeNieceNephew:    {category: CategoryExtended, reverse: TypeAuntUncle},
	TypeCousin:         {category: CategoryExtended, mutual: true},
	TypeParentInLaw:    {category: CategoryInLaw, reverse: TypeChildInLaw},
	TypeChildInLaw:     {category: CategoryInLaw, reverse: TypeParentInLaw},
	TypeSiblingInLaw:   {category: CategoryInLaw, mutual: true},
	TypeStepParent:     {category: CategoryStep, reverse: TypeStepChild},
	TypeStepChild:      {category: CategoryStep, reverse: TypeStepParent},
	TypeStepSibling:    {category: CategoryStep, mutual: true},
	TypeAdoptiveParent: {category: CategoryAdoptive, reverse: TypeAdoptedChild},
	TypeAdoptedChild:   {category: CategoryAdoptive, reverse: TypeAdoptiveParent},
	TypeFosterParent:   {category: CategoryAdoptive, reverse: TypeFosterChild},
	TypeFosterChild:    {category: CategoryAdoptive, reverse: TypeFosterParent},
	TypeGodparent:      {category: CategoryExtended, reverse: TypeGodchild},
	TypeGodchild:       {category: CategoryExtended, reverse: TypeGodparent},
	TypeGuardian:       {category: CategoryImmediate, reverse: TypeWard},
	TypeWard:           {category: CategoryImmediate, reverse: TypeGuardian},
	TypeCloseFriend:    {category: CategoryFriend, mutual: true},
}

// Valid reports whether t is a known relationship type.
func (t RelationshipType) Valid() bool {
	_, ok := relationshipTypes[t]
	return ok
}

// IsMutual reports whether both parties hold the same type (SIBLING<->SIBLING).
func (t RelationshipType) IsMutual() bool {
	return relationshipTypes[t].mutual
}

// Reverse returns the type the mirrored row must carry, and whether one is
// defined. Mutual types reverse to themselves.
func (t RelationshipType) Reverse() (RelationshipType, bool) {
	info, ok := relationshipTypes[t]
	if !ok {
		return "", false
	}
	if info.mutual {
		return t, true
	}
	return info.reverse, info.reverse != ""
}

func (t RelationshipType) Category() Category {
	return relationshipTypes[t].category
}

// Relationship is a directional row between two persons. One logical relation
// is represented by up to two rows, paired by the reconciler.
type Relationship struct {
	ID        string           `json:"id" gorm:"primaryKey;size:36"`
	Type      RelationshipType `json:"type" gorm:"size:32;uniqueIndex:idx_relationship_triple"`
	FromID    string           `json:"person_from_id" gorm:"column:person_from_id;size:36;uniqueIndex:idx_relationship_triple;index"`
	ToID      string           `json:"person_to_id" gorm:"column:person_to_id;size:36;uniqueIndex:idx_relationship_triple;index"`
	CreatedAt time.Time        `json:"created_at"`
}
