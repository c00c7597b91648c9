package leave

import (
	"github.com/go-playground/validator/v10"

	"github.com/smarttrack/backend/core"
)

// Status of a leave request. Approved and Rejected are terminal in the
// workflow; the update path itself does not guard against re-transition
// (see Service.UpdateStatus).
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// Request is a student's leave application. StudentName is a denormalized
// snapshot taken at submission time and never re-derived.
type Request struct {
	ID          string `json:"id"` // time-derived
	SchoolCode  string `json:"schoolCode"`
	StudentID   string `json:"studentId"`
	StudentName string `json:"studentName"`
	Date        string `json:"date"` // YYYY-MM-DD
	Reason      string `json:"reason"`
	Status      Status `json:"status"`
}

// NewRequest is a leave application submitted by a student.
type NewRequest struct {
	StudentID string `json:"studentId" validate:"required"`
	Date      string `json:"date" validate:"required,isodate"`
	Reason    string `json:"reason" validate:"required"`
}

func (nr *NewRequest) Validate(validate *validator.Validate) error {
	nr.StudentID = core.CleanString(nr.StudentID)
	nr.Reason = core.CleanString(nr.Reason)
	return validate.Struct(nr)
}
