package kvrepos

import (
	"github.com/smarttrack/backend/core"
	"github.com/smarttrack/backend/core/leave"
)

type leaveRepository struct {
	db *DB
}

var _ leave.Repository = (*leaveRepository)(nil)

func NewLeaveRepository(db *DB) leave.Repository {
	return &leaveRepository{db: db}
}

func (repo *leaveRepository) QueryBySchool(schoolCode string) ([]leave.Request, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	all := load[leave.Request](repo.db, core.LeavesCollection)
	reqs := make([]leave.Request, 0, len(all))
	for _, r := range all {
		if r.SchoolCode == schoolCode {
			reqs = append(reqs, r)
		}
	}
	return reqs, nil
}

func (repo *leaveRepository) CreateRequest(req leave.Request) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	all := load[leave.Request](repo.db, core.LeavesCollection)
	return save(repo.db, core.LeavesCollection, append(all, req))
}

func (repo *leaveRepository) UpdateStatus(schoolCode, id string, status leave.Status) (leave.Request, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	all := load[leave.Request](repo.db, core.LeavesCollection)
	for i, r := range all {
		if r.SchoolCode == schoolCode && r.ID == id {
			all[i].Status = status
			return all[i], save(repo.db, core.LeavesCollection, all)
		}
	}
	return leave.Request{}, leave.ErrNotFound
}
