package school

import (
	"github.com/pkg/errors"

	"github.com/smarttrack/backend/core"
	"github.com/smarttrack/backend/core/attendance"
	"github.com/smarttrack/backend/core/fees"
	"github.com/smarttrack/backend/core/leave"
	"github.com/smarttrack/backend/core/user"
)

var (
	ErrNotFound   = errors.New("school not found")
	ErrCodeExists = errors.New("a school with this code already exists")
)

type (
	Repository interface {
		GetByCode(code string) (School, error)
		QuerySchools() ([]School, error)
		CreateSchool(sch School) error
	}

	Service struct {
		repo   Repository
		users  user.Repository
		att    attendance.Repository
		fees   fees.Repository
		leaves leave.Repository
		logger core.Logger
	}
)

func NewService(
	repo Repository,
	users user.Repository,
	att attendance.Repository,
	feesRepo fees.Repository,
	leaves leave.Repository,
	logger core.Logger,
) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		att:    att,
		fees:   feesRepo,
		leaves: leaves,
		logger: logger,
	}
}

func (svc *Service) GetByCode(code string) (School, error) {
	return svc.repo.GetByCode(code)
}

func (svc *Service) All() ([]School, error) {
	return svc.repo.QuerySchools()
}

// Register creates a School and its Principal atomically. A duplicate school
// code is rejected. On the very first registration against a brand-new store
// (empty users collection) a fixed demonstration dataset is seeded, scoped to
// the new school's code.
func (svc *Service) Register(reg Registration) (School, error) {
	if _, err := svc.repo.GetByCode(reg.SchoolCode); err == nil {
		return School{}, core.NewValidationError(ErrCodeExists,
			core.FieldError{Field: "schoolCode", Error: ErrCodeExists.Error()})
	} else if errors.Cause(err) != ErrNotFound {
		return School{}, errors.Wrap(err, "checking school code")
	}

	firstEver, err := svc.users.IsEmpty()
	if err != nil {
		return School{}, errors.Wrap(err, "checking users collection")
	}

	sch := School{
		Code:     reg.SchoolCode,
		Name:     reg.SchoolName,
		Category: reg.SchoolCategory,
	}
	principal := user.User{
		ID:         reg.PrincipalEmail,
		Role:       user.RolePrincipal,
		Name:       reg.PrincipalName,
		SchoolCode: reg.SchoolCode,
	}
	if err = principal.SetPassword(reg.Password); err != nil {
		return School{}, errors.Wrap(err, "hashing password")
	}

	if err = svc.repo.CreateSchool(sch); err != nil {
		return School{}, errors.Wrap(err, "creating school")
	}
	if err = svc.users.CreateUsers(principal); err != nil {
		return School{}, errors.Wrap(err, "creating principal")
	}

	if firstEver {
		if err = svc.seed(reg.SchoolCode); err != nil {
			// seeding is demo sugar; registration itself already succeeded
			svc.logger.Error("seeding demo data", err)
		}
	}
	return sch, nil
}
