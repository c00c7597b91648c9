package kvrepos

import (
	"github.com/smarttrack/backend/core"
	"github.com/smarttrack/backend/core/school"
)

type schoolRepository struct {
	db *DB
}

var _ school.Repository = (*schoolRepository)(nil)

func NewSchoolRepository(db *DB) school.Repository {
	return &schoolRepository{db: db}
}

func (repo *schoolRepository) GetByCode(code string) (school.School, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	for _, sch := range load[school.School](repo.db, core.SchoolsCollection) {
		if sch.Code == code {
			return sch, nil
		}
	}
	return school.School{}, school.ErrNotFound
}

func (repo *schoolRepository) QuerySchools() ([]school.School, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	return load[school.School](repo.db, core.SchoolsCollection), nil
}

func (repo *schoolRepository) CreateSchool(sch school.School) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	schools := load[school.School](repo.db, core.SchoolsCollection)
	for _, existing := range schools {
		if existing.Code == sch.Code {
			return school.ErrCodeExists
		}
	}
	return save(repo.db, core.SchoolsCollection, append(schools, sch))
}
