package leave

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/smarttrack/backend/core"
	"github.com/smarttrack/backend/core/user"
)

var (
	ErrNotFound      = errors.New("leave request not found")
	ErrInvalidStatus = errors.New("status must be Approved or Rejected")
)

type (
	Repository interface {
		QueryBySchool(schoolCode string) ([]Request, error)
		CreateRequest(req Request) error
		// UpdateStatus locates the request by id within the school and sets
		// its status. Returns ErrNotFound when absent.
		UpdateStatus(schoolCode, id string, status Status) (Request, error)
	}

	Service struct {
		repo  Repository
		users user.Repository
	}
)

func NewService(repo Repository, users user.Repository) *Service {
	return &Service{repo: repo, users: users}
}

func (svc *Service) ForSchool(schoolCode string) ([]Request, error) {
	return svc.repo.QueryBySchool(schoolCode)
}

func (svc *Service) ForStudent(schoolCode, studentID string) ([]Request, error) {
	reqs, err := svc.repo.QueryBySchool(schoolCode)
	if err != nil {
		return nil, err
	}
	out := make([]Request, 0, len(reqs))
	for _, r := range reqs {
		if r.StudentID == studentID {
			out = append(out, r)
		}
	}
	return out, nil
}

// ForClass returns the school's requests submitted by students of the given class.
func (svc *Service) ForClass(schoolCode, class string) ([]Request, error) {
	students, err := svc.users.QueryBySchool(schoolCode, user.RoleStudent)
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	inClass := make(map[string]bool, len(students))
	for _, s := range students {
		if s.Class == class {
			inClass[s.ID] = true
		}
	}

	reqs, err := svc.repo.QueryBySchool(schoolCode)
	if err != nil {
		return nil, err
	}
	out := make([]Request, 0, len(reqs))
	for _, r := range reqs {
		if inClass[r.StudentID] {
			out = append(out, r)
		}
	}
	return out, nil
}

// Add submits a new Pending request with a time-derived id, snapshotting the
// student's name. The student must exist within the school.
func (svc *Service) Add(schoolCode string, nr NewRequest) (Request, error) {
	student, err := svc.users.GetUser(schoolCode, user.RoleStudent, nr.StudentID)
	if err != nil {
		return Request{}, err
	}

	req := Request{
		ID:          "L" + strconv.FormatInt(core.NowFunc().UnixNano(), 10),
		SchoolCode:  schoolCode,
		StudentID:   student.ID,
		StudentName: student.Name,
		Date:        nr.Date,
		Reason:      nr.Reason,
		Status:      StatusPending,
	}
	if err = svc.repo.CreateRequest(req); err != nil {
		return Request{}, errors.Wrap(err, "creating leave request")
	}
	return req, nil
}

// UpdateStatus sets a request to Approved or Rejected. No UI path transitions
// out of a terminal status, but the operation itself does not enforce that:
// a repeated call overwrites the previous decision.
func (svc *Service) UpdateStatus(schoolCode, id string, status Status) (Request, error) {
	if status != StatusApproved && status != StatusRejected {
		return Request{}, core.NewValidationError(ErrInvalidStatus,
			core.FieldError{Field: "status", Error: ErrInvalidStatus.Error()})
	}
	return svc.repo.UpdateStatus(schoolCode, id, status)
}
