package family

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kintree/kintree/internal/core/model"
)

func person(id string, g model.Gender, fatherID, motherID, spouseID string) model.Person {
	return model.Person{ID: id, FirstName: id, Gender: g, FatherID: fatherID, MotherID: motherID, SpouseID: spouseID}
}

// fiveGenerations builds focus F with parents, grandparents, a child and a
// grandchild.
func fiveGenerations() []model.Person {
	return []model.Person{
		person("ggf", model.GenderMale, "", "", ""),
		person("gf", model.GenderMale, "ggf", "", "ggm"),
		person("ggm", model.GenderFemale, "", "", "gf"),
		person("dad", model.GenderMale, "gf", "ggm", "mom"),
		person("mom", model.GenderFemale, "", "", "dad"),
		person("F", model.GenderMale, "dad", "mom", "wife"),
		person("wife", model.GenderFemale, "", "", "F"),
		person("kid", model.GenderFemale, "F", "wife", ""),
		person("grandkid", model.GenderMale, "", "kid", ""),
	}
}

func relationOf(t *testing.T, s *Set, id string) (string, int) {
	t.Helper()
	for _, m := range s.Members {
		if m.Person.ID == id {
			return m.Relation, m.Generation
		}
	}
	t.Fatalf("person %s not in set", id)
	return "", 0
}

func ids(s *Set) []string {
	out := make([]string, len(s.Members))
	for i, m := range s.Members {
		out[i] = m.Person.ID
	}
	return out
}

func TestResolve_ParentsOnly(t *testing.T) {
	// generationsUp=1, everything else off: exactly focus + parents.
	opts := Options{GenerationsUp: 1}
	set := Resolve(fiveGenerations(), "F", opts)

	assert.ElementsMatch(t, []string{"F", "dad", "mom"}, ids(set))

	rel, gen := relationOf(t, set, "dad")
	assert.Equal(t, "Father", rel)
	assert.Equal(t, -1, gen)

	rel, gen = relationOf(t, set, "mom")
	assert.Equal(t, "Mother", rel)
	assert.Equal(t, -1, gen)
}

func TestResolve_AncestorLabels(t *testing.T) {
	set := Resolve(fiveGenerations(), "F", DefaultOptions())

	rel, gen := relationOf(t, set, "gf")
	assert.Equal(t, "Grandfather", rel)
	assert.Equal(t, -2, gen)

	rel, gen = relationOf(t, set, "ggm")
	assert.Equal(t, "Grandmother", rel)
	assert.Equal(t, -2, gen)

	rel, gen = relationOf(t, set, "ggf")
	assert.Equal(t, "Great-Grandfather", rel)
	assert.Equal(t, -3, gen)
}

func TestResolve_DescendantLabels(t *testing.T) {
	set := Resolve(fiveGenerations(), "F", DefaultOptions())

	rel, gen := relationOf(t, set, "kid")
	assert.Equal(t, "Child", rel)
	assert.Equal(t, 1, gen)

	rel, gen = relationOf(t, set, "grandkid")
	assert.Equal(t, "Grandchild", rel)
	assert.Equal(t, 2, gen)
}

func TestResolve_GenerationLimitsRespected(t *testing.T) {
	opts := DefaultOptions()
	opts.GenerationsUp = 2
	opts.GenerationsDown = 1
	set := Resolve(fiveGenerations(), "F", opts)

	for _, absent := range []string{"ggf", "grandkid"} {
		for _, m := range set.Members {
			assert.NotEqual(t, absent, m.Person.ID)
		}
	}
}

func TestResolve_SpouseAndChildSpouse(t *testing.T) {
	persons := fiveGenerations()
	persons = append(persons,
		person("soninlaw", model.GenderMale, "", "", "kid"),
	)
	persons[7].SpouseID = "soninlaw" // kid

	set := Resolve(persons, "F", DefaultOptions())

	rel, gen := relationOf(t, set, "wife")
	assert.Equal(t, "Spouse", rel)
	assert.Equal(t, 0, gen)

	rel, _ = relationOf(t, set, "soninlaw")
	assert.Equal(t, "Child's Spouse", rel)
	_ = gen

	assert.GreaterOrEqual(t, set.Stats.Spouses, 2)
}

func TestResolve_StepParentDistinctFromCoParent(t *testing.T) {
	// Dad remarried: his spouse is not F's mother.
	persons := []model.Person{
		person("dad", model.GenderMale, "", "", "stepmom"),
		person("mom", model.GenderFemale, "", "", ""),
		person("stepmom", model.GenderFemale, "", "", "dad"),
		person("F", model.GenderMale, "dad", "mom", ""),
	}
	set := Resolve(persons, "F", DefaultOptions())

	rel, gen := relationOf(t, set, "stepmom")
	assert.Equal(t, "Step-mother", rel)
	assert.Equal(t, -1, gen)

	// The known co-parent keeps her direct label.
	rel, _ = relationOf(t, set, "mom")
	assert.Equal(t, "Mother", rel)
}

func TestResolve_SiblingsAndHalfSiblings(t *testing.T) {
	persons := []model.Person{
		person("dad", model.GenderMale, "", "", "mom"),
		person("mom", model.GenderFemale, "", "", "dad"),
		person("F", model.GenderMale, "dad", "mom", ""),
		person("bro", model.GenderMale, "dad", "mom", ""),
		person("half", model.GenderFemale, "dad", "", ""),
	}
	set := Resolve(persons, "F", DefaultOptions())

	rel, gen := relationOf(t, set, "bro")
	assert.Equal(t, "Sibling", rel)
	assert.Equal(t, 0, gen)

	rel, _ = relationOf(t, set, "half")
	assert.Equal(t, "Half-Sibling", rel)
}

func TestResolve_ExtendedFamily(t *testing.T) {
	persons := []model.Person{
		person("gf", model.GenderMale, "", "", "gm"),
		person("gm", model.GenderFemale, "", "", "gf"),
		person("dad", model.GenderMale, "gf", "gm", ""),
		person("uncle", model.GenderMale, "gf", "gm", ""),
		person("aunt", model.GenderFemale, "gf", "gm", ""),
		person("F", model.GenderMale, "dad", "", ""),
		person("cousin", model.GenderFemale, "uncle", "", ""),
		person("sis", model.GenderFemale, "dad", "", ""),
		person("niece", model.GenderFemale, "", "sis", ""),
	}
	opts := DefaultOptions()
	opts.IncludeExtendedFamily = true
	set := Resolve(persons, "F", opts)

	rel, gen := relationOf(t, set, "uncle")
	assert.Equal(t, "Uncle", rel)
	assert.Equal(t, -1, gen)

	rel, _ = relationOf(t, set, "aunt")
	assert.Equal(t, "Aunt", rel)

	rel, gen = relationOf(t, set, "cousin")
	assert.Equal(t, "Cousin", rel)
	assert.Equal(t, 0, gen)

	rel, gen = relationOf(t, set, "niece")
	assert.Equal(t, "Niece", rel)
	assert.Equal(t, 1, gen)
}

func TestResolve_FirstAssignmentWins(t *testing.T) {
	// Mom is also dad's half-sister (overlapping paths): the direct-line
	// "Mother" label was assigned during ascent and must not be overwritten
	// by the sibling pass over dad's relatives.
	persons := []model.Person{
		person("gf", model.GenderMale, "", "", ""),
		person("dad", model.GenderMale, "gf", "", "mom"),
		person("mom", model.GenderFemale, "gf", "", "dad"),
		person("F", model.GenderMale, "dad", "mom", ""),
	}
	opts := DefaultOptions()
	opts.IncludeExtendedFamily = true
	set := Resolve(persons, "F", opts)

	rel, _ := relationOf(t, set, "mom")
	assert.Equal(t, "Mother", rel)
	assert.Equal(t, 1, set.Stats.ByRelation["Mother"])
}

func TestResolve_MissingFocusYieldsEmptySet(t *testing.T) {
	set := Resolve(fiveGenerations(), "stranger", DefaultOptions())
	assert.Empty(t, set.Members)
	assert.Equal(t, 0, set.Stats.Total)
}

func TestResolve_DanglingReferencesTreatedAsAbsent(t *testing.T) {
	persons := []model.Person{
		person("F", model.GenderMale, "ghost-father", "", "ghost-spouse"),
	}
	set := Resolve(persons, "F", DefaultOptions())
	assert.Equal(t, []string{"F"}, ids(set))
}

func TestResolve_Stats(t *testing.T) {
	set := Resolve(fiveGenerations(), "F", DefaultOptions())

	assert.Equal(t, len(set.Members), set.Stats.Total)
	assert.Equal(t, 1, set.Stats.ByRelation["Self"])
	assert.Equal(t, 1, set.Stats.ByRelation["Father"])
	assert.Equal(t, 1, set.Stats.ByRelation["Spouse"])
}

func TestPreferredParent(t *testing.T) {
	y1950, y1955 := 1950, 1955
	older := model.Person{ID: "older", BirthYear: &y1950}
	younger := model.Person{ID: "younger", BirthYear: &y1955}
	unknown := model.Person{ID: "unknown"}

	assert.Equal(t, "older", PreferredParent(&older, &younger).ID)
	assert.Equal(t, "older", PreferredParent(&younger, &older).ID)
	assert.Equal(t, "older", PreferredParent(&older, &unknown).ID)
	assert.Equal(t, "older", PreferredParent(&unknown, &older).ID)

	// No birth years at all: father wins.
	father := model.Person{ID: "father"}
	assert.Equal(t, "father", PreferredParent(&father, &unknown).ID)
	assert.Equal(t, "father", PreferredParent(&father, nil).ID)
	assert.Equal(t, "unknown", PreferredParent(nil, &unknown).ID)
}
