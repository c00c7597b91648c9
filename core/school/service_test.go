package school_test

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/smarttrack/backend/core"
	"github.com/smarttrack/backend/core/school"
	"github.com/smarttrack/backend/core/user"
	kvrepos "github.com/smarttrack/backend/storage/kvstore/repos"
	testutil "github.com/smarttrack/backend/tests"
)

type fixture struct {
	svc    *school.Service
	users  user.Repository
	usrSvc *user.Service
	db     *kvrepos.DB
}

func setup(t *testing.T) fixture {
	db := testutil.PrepareDB(t)
	users := kvrepos.NewUserRepository(db)
	svc := school.NewService(
		kvrepos.NewSchoolRepository(db),
		users,
		kvrepos.NewAttendanceRepository(db),
		kvrepos.NewFeesRepository(db),
		kvrepos.NewLeaveRepository(db),
		testutil.NewLogger(),
	)
	return fixture{svc: svc, users: users, usrSvc: user.NewService(users), db: db}
}

func registration(code string) school.Registration {
	return school.Registration{
		SchoolName:     "Govt High School",
		SchoolCategory: school.CategoryGovernment,
		SchoolCode:     code,
		PrincipalName:  "Principal",
		PrincipalEmail: "principal@" + code + ".pk",
		Password:       "secret1",
	}
}

func TestService_Register(t *testing.T) {
	fix := setup(t)

	sch, err := fix.svc.Register(registration("SKL001"))
	if err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	if sch.Code != "SKL001" {
		t.Errorf("Register() Code = %s, want SKL001", sch.Code)
	}

	// the principal can log straight in
	principal, err := fix.usrSvc.Login(user.Credentials{
		SchoolCode: "SKL001",
		Role:       user.RolePrincipal,
		UserID:     "principal@SKL001.pk",
		Password:   "secret1",
	})
	if err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	if principal.Name != "Principal" {
		t.Errorf("Login() Name = %s, want Principal", principal.Name)
	}

	// a duplicate code is rejected and nothing is appended
	_, err = fix.svc.Register(registration("SKL001"))
	var vErr *core.ValidationError
	if !errors.As(err, &vErr) {
		t.Errorf("Register() error = %v, want ValidationError", err)
	}
	schools, err := fix.svc.All()
	if err != nil {
		t.Fatalf("All() failed: %v", err)
	}
	if len(schools) != 1 {
		t.Errorf("All() returned %d schools after a rejected duplicate, want 1", len(schools))
	}
}

func TestService_Register_seedsFirstSchoolOnly(t *testing.T) {
	fix := setup(t)

	if _, err := fix.svc.Register(registration("SKL001")); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	// the demo dataset landed, scoped to the new school
	students, err := fix.usrSvc.Students("SKL001")
	if err != nil {
		t.Fatalf("Students() failed: %v", err)
	}
	if len(students) != 2 {
		t.Fatalf("Students() returned %d students, want 2", len(students))
	}

	// every demo user logs in with the fixed password
	if _, err = fix.usrSvc.Login(user.Credentials{
		SchoolCode: "SKL001",
		Role:       user.RoleTeacher,
		UserID:     "T001",
		Password:   school.SeedPassword,
	}); err != nil {
		t.Errorf("Login() as seeded teacher failed: %v", err)
	}

	// parents come pre-linked to their children
	parent, err := fix.users.GetUser("SKL001", user.RoleParent, "P001")
	if err != nil {
		t.Fatalf("GetUser() failed: %v", err)
	}
	if len(parent.ChildIDs) != 1 || parent.ChildIDs[0] != "S001" {
		t.Errorf("parent.ChildIDs = %v, want [S001]", parent.ChildIDs)
	}

	// dependent collections were seeded too
	att, err := kvrepos.NewAttendanceRepository(fix.db).QueryByStudent("SKL001", "S001")
	if err != nil {
		t.Fatalf("QueryByStudent() failed: %v", err)
	}
	if len(att) != 1 {
		t.Errorf("QueryByStudent() returned %d records, want 1", len(att))
	}

	// a second school on a non-empty store gets no demo data
	if _, err = fix.svc.Register(registration("SKL002")); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	students, err = fix.usrSvc.Students("SKL002")
	if err != nil {
		t.Fatalf("Students() failed: %v", err)
	}
	if len(students) != 0 {
		t.Errorf("Students() returned %d students for the second school, want 0", len(students))
	}
}
