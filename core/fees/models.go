package fees

// Status of a fee payment.
type Status string

const (
	StatusPaid   Status = "Paid"
	StatusUnpaid Status = "Unpaid"
)

// Payment is identified by the composite key (StudentID, DueDate).
// Amount is a whole currency amount (no minor units).
type Payment struct {
	SchoolCode string `json:"schoolCode"`
	StudentID  string `json:"studentId"`
	Amount     int    `json:"amount"`
	DueDate    string `json:"dueDate"` // YYYY-MM-DD
	Status     Status `json:"status"`
	PaidOn     string `json:"paidOn,omitempty"` // YYYY-MM-DD, set while Paid
}
