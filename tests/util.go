package testutil

import (
	"log"
	"os"
	"testing"

	"github.com/smarttrack/backend/core"
	"github.com/smarttrack/backend/core/school"
	"github.com/smarttrack/backend/core/user"
	logsvc "github.com/smarttrack/backend/services/logger"
	"github.com/smarttrack/backend/storage/kvstore"
	kvrepos "github.com/smarttrack/backend/storage/kvstore/repos"
)

func NewLogger() core.Logger {
	l := logsvc.NewStdLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags))
	l.Enable(false)
	return l
}

// PrepareDB returns repositories over a fresh, initialized in-memory store.
func PrepareDB(t *testing.T) *kvrepos.DB {
	t.Helper()

	store := kvstore.NewMemoryStore()
	if err := store.Initialize(); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	return kvrepos.NewDB(store, NewLogger())
}

// CreateSchool persists a School directly through the repository.
func CreateSchool(t *testing.T, repo school.Repository, code, name string, category school.Category) school.School {
	t.Helper()

	sch := school.School{Code: code, Name: name, Category: category}
	if err := repo.CreateSchool(sch); err != nil {
		t.Fatalf("CreateSchool() failed: %v", err)
	}
	return sch
}

// CreateUser persists a user with the given role and password.
func CreateUser(t *testing.T, repo user.Repository, schoolCode string, role user.Role, id, name, pwd string) user.User {
	t.Helper()

	usr := user.User{
		ID:         id,
		Role:       role,
		Name:       name,
		SchoolCode: schoolCode,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("SetPassword() failed: %v", err)
		}
	}
	if err := repo.CreateUsers(usr); err != nil {
		t.Fatalf("CreateUsers() failed: %v", err)
	}
	return usr
}

// CreateParent persists a parent linked to the given children.
func CreateParent(t *testing.T, repo user.Repository, schoolCode, id, name string, childIDs ...string) user.User {
	t.Helper()

	usr := user.User{
		ID:         id,
		Role:       user.RoleParent,
		Name:       name,
		SchoolCode: schoolCode,
		ChildIDs:   childIDs,
	}
	if err := usr.SetPassword("password"); err != nil {
		t.Fatalf("SetPassword() failed: %v", err)
	}
	if err := repo.CreateUsers(usr); err != nil {
		t.Fatalf("CreateUsers() failed: %v", err)
	}
	return usr
}

// CreateStudent persists a student with a class, optionally linked to a parent.
func CreateStudent(t *testing.T, repo user.Repository, schoolCode, id, name, class, parentID string) user.User {
	t.Helper()

	usr := user.User{
		ID:         id,
		Role:       user.RoleStudent,
		Name:       name,
		SchoolCode: schoolCode,
		Class:      class,
		ParentID:   parentID,
	}
	if err := usr.SetPassword("password"); err != nil {
		t.Fatalf("SetPassword() failed: %v", err)
	}
	if err := repo.CreateUsers(usr); err != nil {
		t.Fatalf("CreateUsers() failed: %v", err)
	}
	return usr
}
