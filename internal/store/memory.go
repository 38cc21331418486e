package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/kintree/kintree/internal/core/model"
)

// MemoryStore keeps persons and relationships in process. Listings preserve
// insertion order, which the resolver and layout engine rely on as encounter
// order. Safe for concurrent use.
type MemoryStore struct {
	mu            sync.RWMutex
	persons       map[string]model.Person
	personOrder   []string
	relationships map[string]model.Relationship
	relOrder      []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		persons:       make(map[string]model.Person),
		relationships: make(map[string]model.Relationship),
	}
}

func (s *MemoryStore) ListPersons(ctx context.Context) ([]model.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Person, 0, len(s.personOrder))
	for _, id := range s.personOrder {
		out = append(out, s.persons[id])
	}
	return out, nil
}

func (s *MemoryStore) GetPerson(ctx context.Context, id string) (*model.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.persons[id]
	if !ok {
		return nil, fmt.Errorf("person %s: %w", id, model.ErrNotFound)
	}
	return &p, nil
}

func (s *MemoryStore) SavePerson(ctx context.Context, p *model.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.persons[p.ID]; !exists {
		s.personOrder = append(s.personOrder, p.ID)
	}
	s.persons[p.ID] = *p
	return nil
}

func (s *MemoryStore) DeletePerson(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.persons[id]; !ok {
		return fmt.Errorf("person %s: %w", id, model.ErrNotFound)
	}
	delete(s.persons, id)
	s.personOrder = removeID(s.personOrder, id)
	return nil
}

func (s *MemoryStore) ListRelationships(ctx context.Context, filter RelationshipFilter) ([]model.Relationship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Relationship
	for _, id := range s.relOrder {
		r := s.relationships[id]
		if filter.PersonID != "" && r.FromID != filter.PersonID && r.ToID != filter.PersonID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *MemoryStore) GetRelationship(ctx context.Context, id string) (*model.Relationship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.relationships[id]
	if !ok {
		return nil, fmt.Errorf("relationship %s: %w", id, model.ErrNotFound)
	}
	return &r, nil
}

func (s *MemoryStore) SaveRelationship(ctx context.Context, r *model.Relationship) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The triple (from, to, type) is the uniqueness constraint the reconciler
	// relies on as the final arbiter of duplicate detection.
	for _, id := range s.relOrder {
		existing := s.relationships[id]
		if existing.ID != r.ID && existing.FromID == r.FromID && existing.ToID == r.ToID && existing.Type == r.Type {
			return fmt.Errorf("%s %s->%s: %w", r.Type, r.FromID, r.ToID, model.ErrConflict)
		}
	}

	if _, exists := s.relationships[r.ID]; !exists {
		s.relOrder = append(s.relOrder, r.ID)
	}
	s.relationships[r.ID] = *r
	return nil
}

func (s *MemoryStore) DeleteRelationship(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.relationships[id]; !ok {
		return fmt.Errorf("relationship %s: %w", id, model.ErrNotFound)
	}
	delete(s.relationships, id)
	s.relOrder = removeID(s.relOrder, id)
	return nil
}

func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
