package school

import (
	"github.com/go-playground/validator/v10"

	"github.com/smarttrack/backend/core"
)

// Category classifies a school tenant.
type Category string

const (
	CategoryGovernment Category = "Government"
	CategoryPEF        Category = "PEF"
	CategoryPrivate    Category = "Private"
	CategoryAcademy    Category = "Academy"
)

var Categories = []Category{CategoryGovernment, CategoryPEF, CategoryPrivate, CategoryAcademy}

// School is a tenant; Code is globally unique.
type School struct {
	Code     string   `json:"code"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

// Registration contains the information needed to create a new School and
// its Principal atomically.
type Registration struct {
	SchoolName     string   `json:"schoolName" validate:"required"`
	SchoolCategory Category `json:"schoolCategory" validate:"required,oneof=Government PEF Private Academy"`
	SchoolCode     string   `json:"schoolCode" validate:"required,schoolcode"`
	PrincipalName  string   `json:"principalName" validate:"required"`
	PrincipalEmail string   `json:"principalEmail" validate:"required,email"`
	Password       string   `json:"password" validate:"required,min=6"`
}

func (r *Registration) Validate(validate *validator.Validate) error {
	r.SchoolName = core.CleanString(r.SchoolName)
	r.SchoolCode = core.CleanString(r.SchoolCode)
	r.PrincipalName = core.CleanString(r.PrincipalName)
	r.PrincipalEmail = core.CleanString(r.PrincipalEmail, true /* lower */)
	return validate.Struct(r)
}
