// Package family computes the set of people in scope around a focus person,
// with a human-readable relation label and relative generation for each. It
// operates on an in-memory working set and never touches storage.
package family

import (
	"strings"

	"github.com/kintree/kintree/internal/core/model"
)

// Options controls traversal. The zero value is not useful; start from
// DefaultOptions.
type Options struct {
	IncludeSpouses        bool `json:"include_spouses"`
	GenerationsUp         int  `json:"generations_up"`
	GenerationsDown       int  `json:"generations_down"`
	IncludeSiblings       bool `json:"include_siblings"`
	IncludeExtendedFamily bool `json:"include_extended_family"`
}

func DefaultOptions() Options {
	return Options{
		IncludeSpouses:  true,
		GenerationsUp:   3,
		GenerationsDown: 3,
		IncludeSiblings: true,
	}
}

// Member is a person in scope. Generation is relative to the focus person:
// 0 for the focus and their spouse, negative for ancestors, positive for
// descendants.
type Member struct {
	Person     model.Person `json:"person"`
	Relation   string       `json:"relation"`
	Generation int          `json:"generation"`
}

type Stats struct {
	Total      int            `json:"total"`
	ByRelation map[string]int `json:"by_relation"`
	Spouses    int            `json:"spouses"`
}

type Set struct {
	Members []Member `json:"members"`
	Stats   Stats    `json:"stats"`
}

// Persons returns just the in-scope person records, in membership order. This
// is the layout engine's input filter.
func (s *Set) Persons() []model.Person {
	out := make([]model.Person, len(s.Members))
	for i, m := range s.Members {
		out[i] = m.Person
	}
	return out
}

// Resolve computes the family set around focusID. Dangling references and a
// missing focus person are treated as absent rather than errors; the worst
// case is an empty set. The input slice is never mutated.
//
// Insertion order is ancestors, descendants, siblings, extended family, and a
// person is never re-added or re-labeled: when paths overlap, the direct-line
// label wins.
func Resolve(persons []model.Person, focusID string, opts Options) *Set {
	r := newResolver(persons)

	focus, ok := r.byID[focusID]
	if !ok {
		return r.finish()
	}

	r.add(focus, "Self", 0)
	if opts.IncludeSpouses {
		r.addSpouse(focus, "Spouse", 0)
	}

	r.ascend(focus, 1, opts)
	r.descend(focus, 1, opts)

	if opts.IncludeSiblings {
		r.siblings(focus, opts)
	}
	if opts.IncludeExtendedFamily {
		r.extended(focus)
	}

	return r.finish()
}

type resolver struct {
	working []model.Person
	byID    map[string]model.Person
	seen    map[string]bool
	members []Member
}

func newResolver(persons []model.Person) *resolver {
	byID := make(map[string]model.Person, len(persons))
	for _, p := range persons {
		byID[p.ID] = p
	}
	return &resolver{
		working: persons,
		byID:    byID,
		seen:    make(map[string]bool),
	}
}

// add appends a member unless the person is already in scope: first
// assignment wins.
func (r *resolver) add(p model.Person, relation string, generation int) bool {
	if r.seen[p.ID] {
		return false
	}
	r.seen[p.ID] = true
	r.members = append(r.members, Member{Person: p, Relation: relation, Generation: generation})
	return true
}

func (r *resolver) addSpouse(p model.Person, relation string, generation int) {
	if sp, ok := r.byID[p.SpouseID]; ok {
		r.add(sp, relation, generation)
	}
}

func (r *resolver) ascend(child model.Person, depth int, opts Options) {
	if depth > opts.GenerationsUp {
		return
	}

	if father, ok := r.byID[child.FatherID]; ok {
		r.add(father, ancestorLabel(depth, true), -depth)
		r.addStepParent(father, child.MotherID, "Step-mother", depth, opts)
		r.ascend(father, depth+1, opts)
	}
	if mother, ok := r.byID[child.MotherID]; ok {
		r.add(mother, ancestorLabel(depth, false), -depth)
		r.addStepParent(mother, child.FatherID, "Step-father", depth, opts)
		r.ascend(mother, depth+1, opts)
	}
}

// addStepParent adds an ancestor's spouse when it is not the already-known
// co-parent of the child the ascent came through.
func (r *resolver) addStepParent(ancestor model.Person, coParentID, label string, depth int, opts Options) {
	if !opts.IncludeSpouses {
		return
	}
	sp, ok := r.byID[ancestor.SpouseID]
	if !ok || sp.ID == coParentID {
		return
	}
	r.add(sp, label, -depth)
}

func (r *resolver) descend(parent model.Person, depth int, opts Options) {
	if depth > opts.GenerationsDown {
		return
	}

	label := descendantLabel(depth)
	for _, child := range r.working {
		if child.FatherID != parent.ID && child.MotherID != parent.ID {
			continue
		}
		r.add(child, label, depth)
		if opts.IncludeSpouses {
			r.addSpouse(child, label+"'s Spouse", depth)
		}
		r.descend(child, depth+1, opts)
	}
}

func (r *resolver) siblings(focus model.Person, opts Options) {
	for _, p := range r.working {
		if p.ID == focus.ID || !sharesParent(p, focus) {
			continue
		}

		label := "Half-Sibling"
		if fullSiblings(p, focus) {
			label = "Sibling"
		}
		r.add(p, label, 0)

		if opts.IncludeSpouses {
			r.addSpouse(p, label+"'s Spouse", 0)
		}
		if opts.IncludeExtendedFamily {
			for _, child := range r.working {
				if child.FatherID == p.ID || child.MotherID == p.ID {
					r.add(child, genderedLabel(child.Gender, "Nephew", "Niece", "Niece/Nephew"), 1)
				}
			}
		}
	}
}

func (r *resolver) extended(focus model.Person) {
	for _, parentID := range []string{focus.FatherID, focus.MotherID} {
		parent, ok := r.byID[parentID]
		if !ok {
			continue
		}
		for _, p := range r.working {
			if p.ID == parent.ID || !sharesParent(p, parent) {
				continue
			}
			r.add(p, genderedLabel(p.Gender, "Uncle", "Aunt", "Aunt/Uncle"), -1)
			for _, child := range r.working {
				if child.FatherID == p.ID || child.MotherID == p.ID {
					r.add(child, "Cousin", 0)
				}
			}
		}
	}
}

func (r *resolver) finish() *Set {
	stats := Stats{
		Total:      len(r.members),
		ByRelation: make(map[string]int),
	}
	for _, m := range r.members {
		stats.ByRelation[m.Relation]++
		if m.Relation == "Spouse" || strings.HasSuffix(m.Relation, "'s Spouse") {
			stats.Spouses++
		}
	}
	return &Set{Members: r.members, Stats: stats}
}

// sharesParent reports whether a and b have a father or mother in common.
func sharesParent(a, b model.Person) bool {
	if a.FatherID != "" && a.FatherID == b.FatherID {
		return true
	}
	return a.MotherID != "" && a.MotherID == b.MotherID
}

// fullSiblings reports whether both parents match and are known.
func fullSiblings(a, b model.Person) bool {
	return a.FatherID != "" && a.MotherID != "" &&
		a.FatherID == b.FatherID && a.MotherID == b.MotherID
}

// PreferredParent picks which of two lineages to treat as primary: the parent
// with the earlier known birth year, then the one with a birth year at all,
// then the father.
func PreferredParent(father, mother *model.Person) *model.Person {
	switch {
	case father == nil:
		return mother
	case mother == nil:
		return father
	case father.BirthYear != nil && mother.BirthYear != nil:
		if *mother.BirthYear < *father.BirthYear {
			return mother
		}
		return father
	case father.BirthYear != nil:
		return father
	case mother.BirthYear != nil:
		return mother
	default:
		return father
	}
}

func ancestorLabel(depth int, paternal bool) string {
	base := "Mother"
	if paternal {
		base = "Father"
	}
	switch depth {
	case 1:
		return base
	case 2:
		return "Grand" + strings.ToLower(base)
	default:
		return strings.Repeat("Great-", depth-2) + "Grand" + strings.ToLower(base)
	}
}

func descendantLabel(depth int) string {
	switch depth {
	case 1:
		return "Child"
	case 2:
		return "Grandchild"
	default:
		return strings.Repeat("Great-", depth-2) + "Grandchild"
	}
}

func genderedLabel(g model.Gender, male, female, unknown string) string {
	switch g {
	case model.GenderMale:
		return male
	case model.GenderFemale:
		return female
	default:
		return unknown
	}
}
