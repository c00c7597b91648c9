package kvrepos

import (
	"github.com/smarttrack/backend/core"
	"github.com/smarttrack/backend/core/attendance"
)

type attendanceRepository struct {
	db *DB
}

var _ attendance.Repository = (*attendanceRepository)(nil)

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

func (repo *attendanceRepository) QueryBySchool(schoolCode string) ([]attendance.Record, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	return repo.filter(func(r attendance.Record) bool {
		return r.SchoolCode == schoolCode
	}), nil
}

func (repo *attendanceRepository) QueryByStudent(schoolCode, studentID string) ([]attendance.Record, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	return repo.filter(func(r attendance.Record) bool {
		return r.SchoolCode == schoolCode && r.StudentID == studentID
	}), nil
}

func (repo *attendanceRepository) QueryByDate(schoolCode, date string) ([]attendance.Record, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	return repo.filter(func(r attendance.Record) bool {
		return r.SchoolCode == schoolCode && r.Date == date
	}), nil
}

func (repo *attendanceRepository) UpsertRecords(records ...attendance.Record) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	all := load[attendance.Record](repo.db, core.AttendanceCollection)
	for _, rec := range records {
		var replaced bool
		for i, existing := range all {
			if existing.SchoolCode == rec.SchoolCode && existing.StudentID == rec.StudentID && existing.Date == rec.Date {
				all[i] = rec
				replaced = true
				break
			}
		}
		if !replaced {
			all = append(all, rec)
		}
	}
	return save(repo.db, core.AttendanceCollection, all)
}

func (repo *attendanceRepository) filter(keep func(attendance.Record) bool) []attendance.Record {
	all := load[attendance.Record](repo.db, core.AttendanceCollection)
	records := make([]attendance.Record, 0, len(all))
	for _, r := range all {
		if keep(r) {
			records = append(records, r)
		}
	}
	return records
}
