package user

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/pkg/errors"

	"github.com/smarttrack/backend/core"
)

var (
	// errors
	ErrNotFound       = errors.New("user not found")
	ErrTeacherExists  = errors.New("a teacher with this email already exists in this school")
	ErrParentNotFound = errors.New("parent not found in this school")

	studentIDRegex = regexp.MustCompile(`^S(\d+)$`)
)

type (
	Repository interface {
		// IsEmpty reports whether the users collection holds no records at all.
		IsEmpty() (bool, error)
		CreateUsers(users ...User) error
		QueryBySchool(schoolCode string, role Role) ([]User, error)
		GetUser(schoolCode string, role Role, id string) (User, error)
		// UpdateUser replaces the record matching (SchoolCode, Role, ID).
		UpdateUser(usr User) (User, error)
		DeleteUser(schoolCode string, role Role, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Login performs an exact-match lookup of (schoolCode, role, userId) and
// verifies the password. All failures collapse to ErrNotFound so that bad
// credentials are indistinguishable from a missing user.
func (svc *Service) Login(creds Credentials) (User, error) {
	usr, err := svc.repo.GetUser(creds.SchoolCode, creds.Role, creds.UserID)
	if err != nil {
		return User{}, ErrNotFound
	}
	if err = usr.CheckPassword(creds.Password); err != nil {
		return User{}, ErrNotFound
	}
	return usr, nil
}

// Get fetches the user matching (schoolCode, role, id) exactly.
func (svc *Service) Get(schoolCode string, role Role, id string) (User, error) {
	return svc.repo.GetUser(schoolCode, role, id)
}

func (svc *Service) BySchool(schoolCode string, role Role) ([]User, error) {
	return svc.repo.QueryBySchool(schoolCode, role)
}

func (svc *Service) Students(schoolCode string) ([]User, error) {
	return svc.repo.QueryBySchool(schoolCode, RoleStudent)
}

func (svc *Service) StudentByID(schoolCode, id string) (User, error) {
	return svc.repo.GetUser(schoolCode, RoleStudent, id)
}

func (svc *Service) Teachers(schoolCode string) ([]User, error) {
	return svc.repo.QueryBySchool(schoolCode, RoleTeacher)
}

func (svc *Service) Parents(schoolCode string) ([]User, error) {
	return svc.repo.QueryBySchool(schoolCode, RoleParent)
}

// CreateStudent enrolls a new student with a generated sequential id
// (`S` + zero-padded max-plus-one over the school's existing student ids).
// A supplied parent id must reference an existing Parent in the same school;
// the parent's childIds list is kept in sync.
func (svc *Service) CreateStudent(schoolCode string, ns NewStudent) (User, error) {
	students, err := svc.repo.QueryBySchool(schoolCode, RoleStudent)
	if err != nil {
		return User{}, errors.Wrap(err, "querying students")
	}

	var parent User
	if ns.ParentID != "" {
		if parent, err = svc.repo.GetUser(schoolCode, RoleParent, ns.ParentID); err != nil {
			return User{}, core.NewValidationError(ErrParentNotFound,
				core.FieldError{Field: "parentId", Error: ErrParentNotFound.Error()})
		}
	}

	usr := User{
		ID:            nextStudentID(students),
		Role:          RoleStudent,
		Name:          ns.Name,
		SchoolCode:    schoolCode,
		Class:         ns.Class,
		DOB:           ns.DOB,
		FatherName:    ns.FatherName,
		BFormNo:       ns.BFormNo,
		FatherCNIC:    ns.FatherCNIC,
		NadraVerified: ns.NadraVerified,
		PhotoURL:      ns.PhotoURL,
		ParentID:      ns.ParentID,
	}
	if err = usr.SetPassword(ns.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	if err = svc.repo.CreateUsers(usr); err != nil {
		return User{}, errors.Wrap(err, "creating student")
	}

	if ns.ParentID != "" {
		parent.ChildIDs = append(parent.ChildIDs, usr.ID)
		if _, err = svc.repo.UpdateUser(parent); err != nil {
			return User{}, errors.Wrap(err, "linking parent")
		}
	}
	return usr, nil
}

// UpdateStudent merges incoming fields over the existing record. The stored
// password hash is preserved unless a new password was submitted.
func (svc *Service) UpdateStudent(schoolCode, id string, us UpdateStudent) (User, error) {
	usr, err := svc.repo.GetUser(schoolCode, RoleStudent, id)
	if err != nil {
		return User{}, err
	}

	if us.Name != "" {
		usr.Name = us.Name
	}
	if us.Class != "" {
		usr.Class = us.Class
	}
	if us.DOB != "" {
		usr.DOB = us.DOB
	}
	if us.FatherName != "" {
		usr.FatherName = us.FatherName
	}
	if us.BFormNo != "" {
		usr.BFormNo = us.BFormNo
	}
	if us.FatherCNIC != "" {
		usr.FatherCNIC = us.FatherCNIC
	}
	if us.NadraVerified != nil {
		usr.NadraVerified = *us.NadraVerified
	}
	if us.PhotoURL != "" {
		usr.PhotoURL = us.PhotoURL
	}
	if us.ParentID != "" && us.ParentID != usr.ParentID {
		parent, err := svc.repo.GetUser(schoolCode, RoleParent, us.ParentID)
		if err != nil {
			return User{}, core.NewValidationError(ErrParentNotFound,
				core.FieldError{Field: "parentId", Error: ErrParentNotFound.Error()})
		}
		if usr.ParentID != "" {
			if err = svc.unlinkChild(schoolCode, usr.ParentID, usr.ID); err != nil {
				return User{}, err
			}
		}
		parent.ChildIDs = append(parent.ChildIDs, usr.ID)
		if _, err = svc.repo.UpdateUser(parent); err != nil {
			return User{}, errors.Wrap(err, "linking parent")
		}
		usr.ParentID = us.ParentID
	}
	if us.Password != "" {
		if err = usr.SetPassword(us.Password); err != nil {
			return User{}, errors.Wrap(err, "hashing password")
		}
	}
	return svc.repo.UpdateUser(usr)
}

// DeleteStudent removes the student record and unlinks it from its parent.
// Dependent attendance, fee and leave rows are left in place; whether they
// should cascade is an open product decision.
func (svc *Service) DeleteStudent(schoolCode, id string) error {
	usr, err := svc.repo.GetUser(schoolCode, RoleStudent, id)
	if err != nil {
		return err
	}
	if err = svc.repo.DeleteUser(schoolCode, RoleStudent, id); err != nil {
		return err
	}
	if usr.ParentID != "" {
		return svc.unlinkChild(schoolCode, usr.ParentID, id)
	}
	return nil
}

func (svc *Service) unlinkChild(schoolCode, parentID, studentID string) error {
	parent, err := svc.repo.GetUser(schoolCode, RoleParent, parentID)
	if err != nil {
		return nil // dangling parent link; nothing to unlink
	}
	children := parent.ChildIDs[:0]
	for _, cid := range parent.ChildIDs {
		if cid != studentID {
			children = append(children, cid)
		}
	}
	parent.ChildIDs = children
	_, err = svc.repo.UpdateUser(parent)
	return errors.Wrap(err, "unlinking child")
}

// CreateTeacher creates a new teacher whose login id is the supplied email.
// Fails when that id already exists within the school.
func (svc *Service) CreateTeacher(schoolCode string, nt NewTeacher) (User, error) {
	if _, err := svc.repo.GetUser(schoolCode, RoleTeacher, nt.Email); err == nil {
		return User{}, core.NewValidationError(ErrTeacherExists,
			core.FieldError{Field: "email", Error: ErrTeacherExists.Error()})
	}

	usr := User{
		ID:            nt.Email,
		Role:          RoleTeacher,
		Name:          nt.Name,
		SchoolCode:    schoolCode,
		AssignedClass: nt.AssignedClass,
	}
	if err := usr.SetPassword(nt.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	if err := svc.repo.CreateUsers(usr); err != nil {
		return User{}, errors.Wrap(err, "creating teacher")
	}
	return usr, nil
}

func (svc *Service) UpdateTeacher(schoolCode, id string, ut UpdateTeacher) (User, error) {
	usr, err := svc.repo.GetUser(schoolCode, RoleTeacher, id)
	if err != nil {
		return User{}, err
	}
	if ut.Name != "" {
		usr.Name = ut.Name
	}
	if ut.AssignedClass != "" {
		usr.AssignedClass = ut.AssignedClass
	}
	if ut.Password != "" {
		if err = usr.SetPassword(ut.Password); err != nil {
			return User{}, errors.Wrap(err, "hashing password")
		}
	}
	return svc.repo.UpdateUser(usr)
}

func (svc *Service) DeleteTeacher(schoolCode, id string) error {
	return svc.repo.DeleteUser(schoolCode, RoleTeacher, id)
}

// ResetPassword sets a new password for any user; used by the admin CLI.
func (svc *Service) ResetPassword(schoolCode string, role Role, id, pwd string) error {
	usr, err := svc.repo.GetUser(schoolCode, role, id)
	if err != nil {
		return err
	}
	if err = usr.SetPassword(pwd); err != nil {
		return errors.Wrap(err, "hashing password")
	}
	_, err = svc.repo.UpdateUser(usr)
	return err
}

// nextStudentID returns `S` + zero-padded increment of the highest numeric
// suffix among the given students' ids, so holes left by deletions are
// never refilled.
func nextStudentID(students []User) string {
	var max int
	for _, s := range students {
		m := studentIDRegex.FindStringSubmatch(s.ID)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("S%03d", max+1)
}
