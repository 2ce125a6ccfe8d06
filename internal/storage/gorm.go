package storage

import (
	"errors"

	"gorm.io/gorm"
)

// GormStore backs the Store interface with a GORM database handle.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Users() UserRepository          { return &gormUsers{db: s.db} }
func (s *GormStore) Projects() ProjectRepository    { return &gormProjects{db: s.db} }
func (s *GormStore) Tasks() TaskRepository          { return &gormTasks{db: s.db} }
func (s *GormStore) Activities() ActivityRepository { return &gormActivities{db: s.db} }

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
