package fees

import (
	"time"

	"github.com/pkg/errors"

	"github.com/smarttrack/backend/core"
)

var (
	ErrNotFound      = errors.New("fee payment not found")
	ErrInvalidStatus = errors.New("status must be Paid or Unpaid")
	ErrInvalidPaidOn = errors.New("paidOn must be a calendar date in YYYY-MM-DD format")
)

type (
	Repository interface {
		QueryBySchool(schoolCode string) ([]Payment, error)
		QueryByStudent(schoolCode, studentID string) ([]Payment, error)
		// CreatePayments appends payment rows; only seeding creates fees.
		CreatePayments(payments ...Payment) error
		// UpdateStatus locates the row matching (StudentID, DueDate) and sets
		// its status and paidOn. Returns ErrNotFound when absent.
		UpdateStatus(schoolCode, studentID, dueDate string, status Status, paidOn string) (Payment, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) ForSchool(schoolCode string) ([]Payment, error) {
	return svc.repo.QueryBySchool(schoolCode)
}

func (svc *Service) ForStudent(schoolCode, studentID string) ([]Payment, error) {
	return svc.repo.QueryByStudent(schoolCode, studentID)
}

// UpdateStatus transitions a payment between Unpaid and Paid. paidOn is
// required when marking Paid and cleared when reverting to Unpaid.
func (svc *Service) UpdateStatus(schoolCode, studentID, dueDate string, status Status, paidOn string) (Payment, error) {
	switch status {
	case StatusPaid:
		if _, err := time.Parse(core.DateFormat, paidOn); err != nil {
			return Payment{}, core.NewValidationError(ErrInvalidPaidOn,
				core.FieldError{Field: "paidOn", Error: ErrInvalidPaidOn.Error()})
		}
	case StatusUnpaid:
		paidOn = ""
	default:
		return Payment{}, core.NewValidationError(ErrInvalidStatus,
			core.FieldError{Field: "status", Error: ErrInvalidStatus.Error()})
	}
	return svc.repo.UpdateStatus(schoolCode, studentID, dueDate, status, paidOn)
}
