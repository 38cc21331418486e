// Package layout turns a working set of persons into positioned, renderable
// trees. The build is a pure function of its inputs: identical arguments
// produce structurally identical output, and the input slice is never
// mutated.
package layout

import (
	"github.com/kintree/kintree/internal/core/family"
	"github.com/kintree/kintree/internal/core/model"
)

// Mode selects between laying out every family and a single focused lineage.
type Mode string

const (
	ModeAllFamilies Mode = "all_families"
	ModeFocused     Mode = "focused"
)

// Default spacing, in render units.
const (
	DefaultHorizontalSpacing = 180.0
	DefaultVerticalSpacing   = 120.0
	DefaultSpouseSpacing     = 140.0
	DefaultRootSpacing       = 600.0
)

type Options struct {
	// FocusID switches to FOCUSED mode when it names a member of the working
	// set; otherwise the build falls back to ALL_FAMILIES.
	FocusID string

	HorizontalSpacing float64
	VerticalSpacing   float64
	SpouseSpacing     float64
	RootSpacing       float64
}

func DefaultOptions() Options {
	return Options{
		HorizontalSpacing: DefaultHorizontalSpacing,
		VerticalSpacing:   DefaultVerticalSpacing,
		SpouseSpacing:     DefaultSpouseSpacing,
		RootSpacing:       DefaultRootSpacing,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.HorizontalSpacing <= 0 {
		o.HorizontalSpacing = d.HorizontalSpacing
	}
	if o.VerticalSpacing <= 0 {
		o.VerticalSpacing = d.VerticalSpacing
	}
	if o.SpouseSpacing <= 0 {
		o.SpouseSpacing = d.SpouseSpacing
	}
	if o.RootSpacing <= 0 {
		o.RootSpacing = d.RootSpacing
	}
	return o
}

// Node is a positioned person. Derived per build, never persisted, and a
// person reachable through several relation paths appears once per path.
type Node struct {
	PersonID     string       `json:"person_id"`
	Name         string       `json:"name"`
	Gender       model.Gender `json:"gender"`
	AvatarColor  string       `json:"avatar_color"`
	Photo        string       `json:"photo,omitempty"`
	BirthYear    *int         `json:"birth_year,omitempty"`
	DeathYear    *int         `json:"death_year,omitempty"`
	X            float64      `json:"x"`
	Y            float64      `json:"y"`
	Level        int          `json:"level"`
	SubtreeWidth float64      `json:"subtree_width"`
	Children     []*Node      `json:"children,omitempty"`
	Spouse       *Node        `json:"spouse,omitempty"`
}

type Stats struct {
	TotalNodes  int    `json:"total_nodes"`
	MaxDepth    int    `json:"max_depth"`
	Generations int    `json:"generations"`
	Families    int    `json:"families"`
	FocusedOn   string `json:"focused_on,omitempty"`
}

type Tree struct {
	Mode  Mode    `json:"mode"`
	Roots []*Node `json:"roots"`
	Stats Stats   `json:"stats"`
}

// Build lays out the working set. In ALL_FAMILIES mode every parentless
// person roots an independent subtree; in FOCUSED mode (focus id present in
// the set) a single subtree is rooted at the focus person's top ancestor.
// Malformed or dangling references are treated as absent, never as errors.
func Build(persons []model.Person, opts Options) *Tree {
	opts = opts.withDefaults()
	b := newBuilder(persons, opts)

	if focus, ok := b.byID[opts.FocusID]; ok {
		return b.buildFocused(focus)
	}
	return b.buildAllFamilies()
}

type builder struct {
	opts       Options
	working    []model.Person
	byID       map[string]model.Person
	childrenOf map[string][]model.Person
}

// subtreeStats is the fold state carried up the recursion.
type subtreeStats struct {
	nodes    int
	maxDepth int
}

func (s subtreeStats) merge(other subtreeStats) subtreeStats {
	s.nodes += other.nodes
	if other.maxDepth > s.maxDepth {
		s.maxDepth = other.maxDepth
	}
	return s
}

func newBuilder(persons []model.Person, opts Options) *builder {
	b := &builder{
		opts:       opts,
		working:    persons,
		byID:       make(map[string]model.Person, len(persons)),
		childrenOf: make(map[string][]model.Person),
	}
	for _, p := range persons {
		b.byID[p.ID] = p
	}
	// Child lists follow encounter order in the working set, not a sort.
	for _, p := range persons {
		if _, ok := b.byID[p.FatherID]; ok {
			b.childrenOf[p.FatherID] = append(b.childrenOf[p.FatherID], p)
		}
		if _, ok := b.byID[p.MotherID]; ok && p.MotherID != p.FatherID {
			b.childrenOf[p.MotherID] = append(b.childrenOf[p.MotherID], p)
		}
	}
	return b
}

func (b *builder) buildAllFamilies() *Tree {
	roots := b.rootSet()

	tree := &Tree{Mode: ModeAllFamilies}
	var total subtreeStats
	for i, root := range roots {
		centerX := float64(i) * b.opts.RootSpacing
		node, stats := b.subtree(root, 0, centerX, nil)
		tree.Roots = append(tree.Roots, node)
		total = total.merge(stats)
	}

	tree.Stats = finalStats(total, len(tree.Roots), "")
	return tree
}

func (b *builder) buildFocused(focus model.Person) *Tree {
	top := b.topAncestor(focus)

	node, stats := b.subtree(top, 0, 0, nil)
	return &Tree{
		Mode:  ModeFocused,
		Roots: []*Node{node},
		Stats: finalStats(stats, 1, focus.FullName()),
	}
}

// rootSet returns every person with no in-set parent. When everyone has an
// in-set parent (a relation cycle, or a filtered slice of a larger tree) it
// falls back to the single person with the earliest known birth year, ties
// broken by encounter order, then to the first person.
func (b *builder) rootSet() []model.Person {
	var roots []model.Person
	for _, p := range b.working {
		if !b.hasParentInSet(p) {
			roots = append(roots, p)
		}
	}
	if len(roots) > 0 || len(b.working) == 0 {
		return roots
	}

	fallback := b.working[0]
	for _, p := range b.working[1:] {
		if p.BirthYear == nil {
			continue
		}
		if fallback.BirthYear == nil || *p.BirthYear < *fallback.BirthYear {
			fallback = p
		}
	}
	return []model.Person{fallback}
}

func (b *builder) hasParentInSet(p model.Person) bool {
	if _, ok := b.byID[p.FatherID]; ok {
		return true
	}
	_, ok := b.byID[p.MotherID]
	return ok
}

// topAncestor climbs father/mother links restricted to the working set,
// picking a primary lineage at each step. A parent outside the set is
// treated as absent.
func (b *builder) topAncestor(p model.Person) model.Person {
	visited := map[string]bool{p.ID: true}
	for {
		var father, mother *model.Person
		if f, ok := b.byID[p.FatherID]; ok && !visited[f.ID] {
			father = &f
		}
		if m, ok := b.byID[p.MotherID]; ok && !visited[m.ID] {
			mother = &m
		}

		next := family.PreferredParent(father, mother)
		if next == nil {
			return p
		}
		visited[next.ID] = true
		p = *next
	}
}

// subtree lays out person p at the given level, horizontally centered on x,
// and folds the node-count/depth statistics up the recursion. path holds the
// ids on the current ancestor chain: a person already on it marks a relation
// cycle and is not descended into again, though separate paths to the same
// person still produce separate nodes.
func (b *builder) subtree(p model.Person, level int, x float64, path map[string]bool) (*Node, subtreeStats) {
	node := &Node{
		PersonID:    p.ID,
		Name:        p.FullName(),
		Gender:      p.Gender,
		AvatarColor: p.AvatarColor(),
		Photo:       p.ProfilePhoto,
		BirthYear:   p.BirthYear,
		DeathYear:   p.DeathYear,
		X:           x,
		Y:           float64(level) * b.opts.VerticalSpacing,
		Level:       level,
	}
	stats := subtreeStats{nodes: 1, maxDepth: level}

	if spouse, ok := b.byID[p.SpouseID]; ok {
		node.Spouse = &Node{
			PersonID:    spouse.ID,
			Name:        spouse.FullName(),
			Gender:      spouse.Gender,
			AvatarColor: spouse.AvatarColor(),
			Photo:       spouse.ProfilePhoto,
			BirthYear:   spouse.BirthYear,
			DeathYear:   spouse.DeathYear,
			X:           x + b.opts.SpouseSpacing,
			Y:           node.Y,
			Level:       level,
		}
		stats.nodes++
	}

	children := b.childrenOf[p.ID]
	if len(children) == 0 {
		node.SubtreeWidth = b.opts.HorizontalSpacing
		return node, stats
	}

	if path == nil {
		path = make(map[string]bool)
	}
	path[p.ID] = true
	defer delete(path, p.ID)

	initialWidth := float64(len(children)) * b.opts.HorizontalSpacing
	node.SubtreeWidth = initialWidth

	// Children spread evenly under the parent: one horizontal-spacing unit
	// apart, starting half a unit in from the left edge of the footprint.
	childX := x - initialWidth/2 + b.opts.HorizontalSpacing/2
	childWidths := 0.0
	for _, child := range children {
		if path[child.ID] {
			continue
		}
		childNode, childStats := b.subtree(child, level+1, childX, path)
		node.Children = append(node.Children, childNode)
		stats = stats.merge(childStats)
		childWidths += childNode.SubtreeWidth
		childX += b.opts.HorizontalSpacing
	}

	// A node's footprint must at least fit all descendants.
	if childWidths > node.SubtreeWidth {
		node.SubtreeWidth = childWidths
	}
	return node, stats
}

func finalStats(s subtreeStats, families int, focusedOn string) Stats {
	out := Stats{
		TotalNodes: s.nodes,
		MaxDepth:   s.maxDepth,
		Families:   families,
		FocusedOn:  focusedOn,
	}
	if s.nodes > 0 {
		out.Generations = s.maxDepth + 1
	}
	return out
}
