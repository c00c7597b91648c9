package kvrepos

import (
	"github.com/smarttrack/backend/core"
	"github.com/smarttrack/backend/core/user"
)

type userRepository struct {
	db *DB
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) IsEmpty() (bool, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	return len(load[user.User](repo.db, core.UsersCollection)) == 0, nil
}

func (repo *userRepository) CreateUsers(users ...user.User) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	all := load[user.User](repo.db, core.UsersCollection)
	return save(repo.db, core.UsersCollection, append(all, users...))
}

func (repo *userRepository) QueryBySchool(schoolCode string, role user.Role) ([]user.User, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	all := load[user.User](repo.db, core.UsersCollection)
	users := make([]user.User, 0, len(all))
	for _, u := range all {
		if u.SchoolCode == schoolCode && u.Role == role {
			users = append(users, u)
		}
	}
	return users, nil
}

func (repo *userRepository) GetUser(schoolCode string, role user.Role, id string) (user.User, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	for _, u := range load[user.User](repo.db, core.UsersCollection) {
		if u.SchoolCode == schoolCode && u.Role == role && u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) UpdateUser(usr user.User) (user.User, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	all := load[user.User](repo.db, core.UsersCollection)
	for i, u := range all {
		if u.SchoolCode == usr.SchoolCode && u.Role == usr.Role && u.ID == usr.ID {
			all[i] = usr
			return usr, save(repo.db, core.UsersCollection, all)
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) DeleteUser(schoolCode string, role user.Role, id string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	all := load[user.User](repo.db, core.UsersCollection)
	kept := make([]user.User, 0, len(all))
	for _, u := range all {
		if u.SchoolCode == schoolCode && u.Role == role && u.ID == id {
			continue
		}
		kept = append(kept, u)
	}
	if len(kept) == len(all) {
		return user.ErrNotFound
	}
	return save(repo.db, core.UsersCollection, kept)
}
