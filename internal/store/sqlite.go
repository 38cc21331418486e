package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kintree/kintree/internal/core/model"
)

// SQLiteStore is the relational EntityStore backend. The unique index on
// (person_from_id, person_to_id, type) is the store-side arbiter of duplicate
// relationships; gorm's error translation turns a constraint trip into
// model.ErrConflict for the reconciler.
type SQLiteStore struct {
	db *gorm.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite store at %s: %w", path, err)
	}

	if err := db.AutoMigrate(&model.Person{}, &model.Relationship{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) ListPersons(ctx context.Context) ([]model.Person, error) {
	var persons []model.Person
	if err := s.db.WithContext(ctx).Order("created_at, id").Find(&persons).Error; err != nil {
		return nil, err
	}
	return persons, nil
}

func (s *SQLiteStore) GetPerson(ctx context.Context, id string) (*model.Person, error) {
	var p model.Person
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translate("person "+id, err)
	}
	return &p, nil
}

func (s *SQLiteStore) SavePerson(ctx context.Context, p *model.Person) error {
	return s.db.WithContext(ctx).Save(p).Error
}

func (s *SQLiteStore) DeletePerson(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&model.Person{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("person %s: %w", id, model.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) ListRelationships(ctx context.Context, filter RelationshipFilter) ([]model.Relationship, error) {
	q := s.db.WithContext(ctx).Order("created_at, id")
	if filter.PersonID != "" {
		q = q.Where("person_from_id = ? OR person_to_id = ?", filter.PersonID, filter.PersonID)
	}

	var rels []model.Relationship
	if err := q.Find(&rels).Error; err != nil {
		return nil, err
	}
	return rels, nil
}

func (s *SQLiteStore) GetRelationship(ctx context.Context, id string) (*model.Relationship, error) {
	var r model.Relationship
	if err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		return nil, translate("relationship "+id, err)
	}
	return &r, nil
}

func (s *SQLiteStore) SaveRelationship(ctx context.Context, r *model.Relationship) error {
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return translate(fmt.Sprintf("%s %s->%s", r.Type, r.FromID, r.ToID), err)
	}
	return nil
}

func (s *SQLiteStore) DeleteRelationship(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&model.Relationship{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("relationship %s: %w", id, model.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func translate(subject string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", subject, model.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", subject, model.ErrConflict)
	default:
		return err
	}
}
