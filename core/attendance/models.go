package attendance

// Status of a student on a given date.
type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

// Record is identified by the composite key (StudentID, Date); at most one
// record exists per student per date.
type Record struct {
	SchoolCode string `json:"schoolCode"`
	StudentID  string `json:"studentId"`
	Date       string `json:"date"` // YYYY-MM-DD
	Status     Status `json:"status"`
	MarkedBy   string `json:"markedBy"` // teacher id
}

// Entry is one row of a teacher's daily marking batch.
type Entry struct {
	StudentID string `json:"studentId" validate:"required"`
	Date      string `json:"date" validate:"required,isodate"`
	Status    Status `json:"status" validate:"required,oneof=Present Absent"`
}
