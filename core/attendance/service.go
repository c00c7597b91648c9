package attendance

import (
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/smarttrack/backend/core"
	"github.com/smarttrack/backend/core/user"
)

var ErrUnknownStudent = errors.New("student not found in this school")

type (
	Repository interface {
		QueryBySchool(schoolCode string) ([]Record, error)
		QueryByStudent(schoolCode, studentID string) ([]Record, error)
		QueryByDate(schoolCode, date string) ([]Record, error)
		// UpsertRecords replaces records matching (StudentID, Date) and
		// appends the rest, in a single collection write.
		UpsertRecords(records ...Record) error
	}

	Service struct {
		repo  Repository
		users user.Repository
	}
)

func NewService(repo Repository, users user.Repository) *Service {
	return &Service{repo: repo, users: users}
}

func (svc *Service) ForStudent(schoolCode, studentID string) ([]Record, error) {
	return svc.repo.QueryByStudent(schoolCode, studentID)
}

func (svc *Service) ForDate(schoolCode, date string) ([]Record, error) {
	return svc.repo.QueryByDate(schoolCode, date)
}

// Mark upserts one batch of attendance entries, each keyed by
// (studentId, date), stamping MarkedBy with the acting teacher's id.
// Every entry must reference a student belonging to the school; entries are
// validated up front so the batch is written all-or-nothing.
func (svc *Service) Mark(validate *validator.Validate, schoolCode, teacherID string, entries []Entry) error {
	students, err := svc.users.QueryBySchool(schoolCode, user.RoleStudent)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	known := make(map[string]bool, len(students))
	for _, s := range students {
		known[s.ID] = true
	}

	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		if err = validate.Struct(e); err != nil {
			return err
		}
		if !known[e.StudentID] {
			return core.NewValidationError(ErrUnknownStudent,
				core.FieldError{Field: "studentId", Error: ErrUnknownStudent.Error()})
		}
		records = append(records, Record{
			SchoolCode: schoolCode,
			StudentID:  e.StudentID,
			Date:       e.Date,
			Status:     e.Status,
			MarkedBy:   teacherID,
		})
	}
	return svc.repo.UpsertRecords(records...)
}

// DailyPercentage computes round(present / marked * 100) over today's
// records for the school. A school with no students reports 100; a school
// with students but nothing marked today reports 0. The divisor is records
// marked, not the student count.
func (svc *Service) DailyPercentage(schoolCode string) (int, error) {
	students, err := svc.users.QueryBySchool(schoolCode, user.RoleStudent)
	if err != nil {
		return 0, errors.Wrap(err, "querying students")
	}
	if len(students) == 0 {
		return 100, nil
	}

	records, err := svc.repo.QueryByDate(schoolCode, core.Today())
	if err != nil {
		return 0, errors.Wrap(err, "querying today's attendance")
	}
	if len(records) == 0 {
		return 0, nil
	}

	var present int
	for _, r := range records {
		if r.Status == StatusPresent {
			present++
		}
	}
	return int(math.Round(float64(present) / float64(len(records)) * 100)), nil
}
