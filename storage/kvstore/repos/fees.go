package kvrepos

import (
	"github.com/smarttrack/backend/core"
	"github.com/smarttrack/backend/core/fees"
)

type feesRepository struct {
	db *DB
}

var _ fees.Repository = (*feesRepository)(nil)

func NewFeesRepository(db *DB) fees.Repository {
	return &feesRepository{db: db}
}

func (repo *feesRepository) QueryBySchool(schoolCode string) ([]fees.Payment, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	return repo.filter(func(p fees.Payment) bool {
		return p.SchoolCode == schoolCode
	}), nil
}

func (repo *feesRepository) QueryByStudent(schoolCode, studentID string) ([]fees.Payment, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	return repo.filter(func(p fees.Payment) bool {
		return p.SchoolCode == schoolCode && p.StudentID == studentID
	}), nil
}

func (repo *feesRepository) CreatePayments(payments ...fees.Payment) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	all := load[fees.Payment](repo.db, core.FeesCollection)
	return save(repo.db, core.FeesCollection, append(all, payments...))
}

func (repo *feesRepository) UpdateStatus(schoolCode, studentID, dueDate string, status fees.Status, paidOn string) (fees.Payment, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	all := load[fees.Payment](repo.db, core.FeesCollection)
	for i, p := range all {
		if p.SchoolCode == schoolCode && p.StudentID == studentID && p.DueDate == dueDate {
			all[i].Status = status
			all[i].PaidOn = paidOn
			return all[i], save(repo.db, core.FeesCollection, all)
		}
	}
	return fees.Payment{}, fees.ErrNotFound
}

func (repo *feesRepository) filter(keep func(fees.Payment) bool) []fees.Payment {
	all := load[fees.Payment](repo.db, core.FeesCollection)
	payments := make([]fees.Payment, 0, len(all))
	for _, p := range all {
		if keep(p) {
			payments = append(payments, p)
		}
	}
	return payments
}
