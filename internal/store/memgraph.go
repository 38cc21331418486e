package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/kintree/kintree/internal/core/model"
)

// MemgraphStore is the graph-database EntityStore backend. Persons are
// (:Person) nodes; relationship rows are [:RELATED] edges carrying their own
// id and type. Memgraph has no uniqueness constraint on edge properties, so
// the triple check here is a pre-insert count; racing writers fall back to
// the reconciler's own duplicate handling.
type MemgraphStore struct {
	driver neo4j.DriverWithContext
}

func NewMemgraphStore(uri, username, password string) (*MemgraphStore, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}

	if err := driver.VerifyConnectivity(context.Background()); err != nil {
		return nil, err
	}

	log.Println("Connected to Memgraph")
	return &MemgraphStore{driver: driver}, nil
}

func (s *MemgraphStore) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// EnsureIndices creates the lookup indices. Failures are logged and skipped,
// as the index may already exist.
func (s *MemgraphStore) EnsureIndices(ctx context.Context) error {
	queries := []string{
		"CREATE INDEX ON :Person(id);",
		"CREATE INDEX ON :Person(father_id);",
		"CREATE INDEX ON :Person(mother_id);",
	}

	for _, q := range queries {
		if _, err := s.run(ctx, q, nil); err != nil {
			log.Printf("Warning: failed to create index '%s': %v", q, err)
		}
	}
	return nil
}

func (s *MemgraphStore) run(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, s.driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute query: %w", err)
	}
	return *result, nil
}

func (s *MemgraphStore) ListPersons(ctx context.Context) ([]model.Person, error) {
	result, err := s.run(ctx, listPersonsQuery, nil)
	if err != nil {
		return nil, err
	}

	var persons []model.Person
	for _, rec := range result.Records {
		value, _ := rec.Get("p")
		node, ok := value.(neo4j.Node)
		if !ok {
			continue
		}
		persons = append(persons, personFromProps(node.Props))
	}
	return persons, nil
}

func (s *MemgraphStore) GetPerson(ctx context.Context, id string) (*model.Person, error) {
	result, err := s.run(ctx, getPersonQuery, map[string]interface{}{"id": id})
	if err != nil {
		return nil, err
	}
	if len(result.Records) == 0 {
		return nil, fmt.Errorf("person %s: %w", id, model.ErrNotFound)
	}

	value, _ := result.Records[0].Get("p")
	node, ok := value.(neo4j.Node)
	if !ok {
		return nil, fmt.Errorf("person %s: unexpected record shape", id)
	}
	p := personFromProps(node.Props)
	return &p, nil
}

func (s *MemgraphStore) SavePerson(ctx context.Context, p *model.Person) error {
	_, err := s.run(ctx, savePersonQuery, map[string]interface{}{
		"id":            p.ID,
		"first_name":    p.FirstName,
		"last_name":     p.LastName,
		"gender":        string(p.Gender),
		"birth_year":    intPtrParam(p.BirthYear),
		"death_year":    intPtrParam(p.DeathYear),
		"date_of_birth": timePtrParam(p.DateOfBirth),
		"date_of_death": timePtrParam(p.DateOfDeath),
		"location":      p.Location,
		"profile_photo": p.ProfilePhoto,
		"father_id":     p.FatherID,
		"mother_id":     p.MotherID,
		"spouse_id":     p.SpouseID,
		"created_at":    p.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	return err
}

func (s *MemgraphStore) DeletePerson(ctx context.Context, id string) error {
	if _, err := s.GetPerson(ctx, id); err != nil {
		return err
	}
	_, err := s.run(ctx, deletePersonQuery, map[string]interface{}{"id": id})
	return err
}

func (s *MemgraphStore) ListRelationships(ctx context.Context, filter RelationshipFilter) ([]model.Relationship, error) {
	query := listRelationshipsQuery
	params := map[string]interface{}{}
	if filter.PersonID != "" {
		query = listRelationshipsForPersonQuery
		params["person_id"] = filter.PersonID
	}

	result, err := s.run(ctx, query, params)
	if err != nil {
		return nil, err
	}

	var rels []model.Relationship
	for _, rec := range result.Records {
		rels = append(rels, relationshipFromRecord(rec))
	}
	return rels, nil
}

func (s *MemgraphStore) GetRelationship(ctx context.Context, id string) (*model.Relationship, error) {
	result, err := s.run(ctx, getRelationshipQuery, map[string]interface{}{"id": id})
	if err != nil {
		return nil, err
	}
	if len(result.Records) == 0 {
		return nil, fmt.Errorf("relationship %s: %w", id, model.ErrNotFound)
	}
	r := relationshipFromRecord(result.Records[0])
	return &r, nil
}

func (s *MemgraphStore) SaveRelationship(ctx context.Context, r *model.Relationship) error {
	count, err := s.run(ctx, countRelationshipTripleQuery, map[string]interface{}{
		"from_id": r.FromID,
		"to_id":   r.ToID,
		"type":    string(r.Type),
	})
	if err != nil {
		return err
	}
	if len(count.Records) > 0 {
		if total, ok := count.Records[0].Get("total"); ok {
			if n, ok := total.(int64); ok && n > 0 {
				return fmt.Errorf("%s %s->%s: %w", r.Type, r.FromID, r.ToID, model.ErrConflict)
			}
		}
	}

	result, err := s.run(ctx, saveRelationshipQuery, map[string]interface{}{
		"id":         r.ID,
		"type":       string(r.Type),
		"from_id":    r.FromID,
		"to_id":      r.ToID,
		"created_at": r.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	if len(result.Records) == 0 {
		return fmt.Errorf("relationship %s->%s: endpoint %w", r.FromID, r.ToID, model.ErrNotFound)
	}
	return nil
}

func (s *MemgraphStore) DeleteRelationship(ctx context.Context, id string) error {
	if _, err := s.GetRelationship(ctx, id); err != nil {
		return err
	}
	_, err := s.run(ctx, deleteRelationshipQuery, map[string]interface{}{"id": id})
	return err
}

func personFromProps(props map[string]interface{}) model.Person {
	return model.Person{
		ID:           asString(props["id"]),
		FirstName:    asString(props["first_name"]),
		LastName:     asString(props["last_name"]),
		Gender:       model.Gender(asString(props["gender"])),
		BirthYear:    asIntPtr(props["birth_year"]),
		DeathYear:    asIntPtr(props["death_year"]),
		DateOfBirth:  asTimePtr(props["date_of_birth"]),
		DateOfDeath:  asTimePtr(props["date_of_death"]),
		Location:     asString(props["location"]),
		ProfilePhoto: asString(props["profile_photo"]),
		FatherID:     asString(props["father_id"]),
		MotherID:     asString(props["mother_id"]),
		SpouseID:     asString(props["spouse_id"]),
		CreatedAt:    asTime(props["created_at"]),
	}
}

func relationshipFromRecord(rec *neo4j.Record) model.Relationship {
	id, _ := rec.Get("id")
	typ, _ := rec.Get("type")
	fromID, _ := rec.Get("from_id")
	toID, _ := rec.Get("to_id")
	createdAt, _ := rec.Get("created_at")

	return model.Relationship{
		ID:        asString(id),
		Type:      model.RelationshipType(asString(typ)),
		FromID:    asString(fromID),
		ToID:      asString(toID),
		CreatedAt: asTime(createdAt),
	}
}

func intPtrParam(v *int) interface{} {
	if v == nil {
		return nil
	}
	return int64(*v)
}

func timePtrParam(v *time.Time) interface{} {
	if v == nil {
		return nil
	}
	return v.UTC().Format(time.RFC3339Nano)
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asIntPtr(v interface{}) *int {
	if n, ok := v.(int64); ok {
		i := int(n)
		return &i
	}
	return nil
}

func asTime(v interface{}) time.Time {
	if s, ok := v.(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func asTimePtr(v interface{}) *time.Time {
	if s, ok := v.(string); ok && s != "" {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return &t
		}
	}
	return nil
}
