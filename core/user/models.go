package user

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/go-playground/validator/v10"

	"github.com/smarttrack/backend/core"
)

// Role determines a user's portal and permitted mutations.
type Role string

const (
	RolePrincipal Role = "Principal"
	RoleTeacher   Role = "Teacher"
	RoleStudent   Role = "Student"
	RoleParent    Role = "Parent"
)

var AllRoles = []Role{RolePrincipal, RoleTeacher, RoleStudent, RoleParent}

// User is a record in the flat users collection; Role is the discriminant tag.
// Role-specific fields are only set for the matching role.
type User struct {
	ID         string `json:"id"` // email for principals & teachers, generated for others
	Role       Role   `json:"role"`
	Name       string `json:"name"`
	SchoolCode string `json:"schoolCode"`

	// Credentials are stored hashed, never plain text.
	PasswordHash []byte `json:"passwordHash,omitempty"`

	// Teacher
	AssignedClass string `json:"assignedClass,omitempty"`

	// Student
	Class         string `json:"class,omitempty"`
	DOB           string `json:"dob,omitempty"`
	FatherName    string `json:"fatherName,omitempty"`
	BFormNo       string `json:"bFormNo,omitempty"`
	FatherCNIC    string `json:"fatherCnic,omitempty"`
	NadraVerified bool   `json:"nadraVerified,omitempty"`
	PhotoURL      string `json:"photoUrl,omitempty"`
	ParentID      string `json:"parentId,omitempty"`

	// Parent
	ChildIDs []string `json:"childIds,omitempty"`
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

// Public returns a copy safe to hand to API callers.
func (u User) Public() User {
	u.PasswordHash = nil
	return u
}

func (u User) IsPrincipal() bool { return u.Role == RolePrincipal }
func (u User) IsTeacher() bool   { return u.Role == RoleTeacher }
func (u User) IsStudent() bool   { return u.Role == RoleStudent }
func (u User) IsParent() bool    { return u.Role == RoleParent }

// HasChild reports whether the student is linked to this parent.
func (u User) HasChild(studentID string) bool {
	for _, cid := range u.ChildIDs {
		if cid == studentID {
			return true
		}
	}
	return false
}

// Credentials is a login attempt: all four fields must match exactly.
type Credentials struct {
	SchoolCode string `json:"schoolCode" validate:"required,schoolcode"`
	Role       Role   `json:"role" validate:"required,oneof=Principal Teacher Student Parent"`
	UserID     string `json:"userId" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

func (c *Credentials) Validate(validate *validator.Validate) error {
	c.SchoolCode = core.CleanString(c.SchoolCode)
	c.UserID = core.CleanString(c.UserID)
	return validate.Struct(c)
}

// NewStudent contains information needed to enroll a new Student.
type NewStudent struct {
	Name          string `json:"name" validate:"required"`
	Class         string `json:"class" validate:"required"`
	DOB           string `json:"dob" validate:"required,isodate"`
	FatherName    string `json:"fatherName" validate:"required"`
	BFormNo       string `json:"bFormNo" validate:"required"`
	FatherCNIC    string `json:"fatherCnic" validate:"required"`
	NadraVerified bool   `json:"nadraVerified"`
	PhotoURL      string `json:"photoUrl" validate:"omitempty,url"`
	ParentID      string `json:"parentId"`
	Password      string `json:"password" validate:"required,min=6"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Class = core.CleanString(ns.Class)
	ns.ParentID = core.CleanString(ns.ParentID)
	return validate.Struct(ns)
}

// UpdateStudent defines what information may be provided to modify an
// existing Student. Zero-valued fields keep the original record's values;
// an empty Password keeps the original credentials.
type UpdateStudent struct {
	Name          string `json:"name"`
	Class         string `json:"class"`
	DOB           string `json:"dob" validate:"omitempty,isodate"`
	FatherName    string `json:"fatherName"`
	BFormNo       string `json:"bFormNo"`
	FatherCNIC    string `json:"fatherCnic"`
	NadraVerified *bool  `json:"nadraVerified"`
	PhotoURL      string `json:"photoUrl" validate:"omitempty,url"`
	ParentID      string `json:"parentId"`
	Password      string `json:"password" validate:"omitempty,min=6"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate) error {
	us.Name = core.CleanString(us.Name)
	us.Class = core.CleanString(us.Class)
	us.ParentID = core.CleanString(us.ParentID)
	return validate.Struct(us)
}

// NewTeacher contains information needed to create a new Teacher.
// The teacher's login id defaults to the supplied email.
type NewTeacher struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	AssignedClass string `json:"assignedClass"`
	Password      string `json:"password" validate:"required,min=6"`
}

func (nt *NewTeacher) Validate(validate *validator.Validate) error {
	nt.Name = core.CleanString(nt.Name)
	nt.Email = core.CleanString(nt.Email, true /* lower */)
	nt.AssignedClass = core.CleanString(nt.AssignedClass)
	return validate.Struct(nt)
}

// UpdateTeacher modifies an existing Teacher; an empty Password keeps the
// original credentials.
type UpdateTeacher struct {
	Name          string `json:"name"`
	AssignedClass string `json:"assignedClass"`
	Password      string `json:"password" validate:"omitempty,min=6"`
}

func (ut *UpdateTeacher) Validate(validate *validator.Validate) error {
	ut.Name = core.CleanString(ut.Name)
	ut.AssignedClass = core.CleanString(ut.AssignedClass)
	return validate.Struct(ut)
}
