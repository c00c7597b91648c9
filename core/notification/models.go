package notification

import (
	"context"
	"time"

	"github.com/smarttrack/backend/core/attendance"
	"github.com/smarttrack/backend/core/fees"
	"github.com/smarttrack/backend/core/user"
)

// Channel is a delivery medium chosen by the generator.
type Channel string

const (
	ChannelSMS      Channel = "SMS"
	ChannelEmail    Channel = "Email"
	ChannelWhatsApp Channel = "WhatsApp"
)

// AttendanceEntry is the trimmed attendance shape handed to the generator.
type AttendanceEntry struct {
	Date   string            `json:"date"`
	Status attendance.Status `json:"status"`
}

// Profile is the structured input of the notification generator. At most the
// last 5 attendance records and the most recent fee record are supplied per
// subject.
type Profile struct {
	UserRole             user.Role         `json:"userRole"`
	UserID               string            `json:"userId"`
	UserName             string            `json:"userName"`
	AttendanceRecords    []AttendanceEntry `json:"attendanceRecords,omitempty"`
	FeePaymentStatus     fees.Status       `json:"feePaymentStatus,omitempty"`
	GeneralAnnouncements []string          `json:"generalAnnouncements,omitempty"`

	// parent-specific
	ParentName             string            `json:"parentName,omitempty"`
	ChildName              string            `json:"childName,omitempty"`
	ChildAttendanceRecords []AttendanceEntry `json:"childAttendanceRecords,omitempty"`
	ChildFeePaymentStatus  fees.Status       `json:"childFeePaymentStatus,omitempty"`
}

// Generated is the generator's output.
type Generated struct {
	NotificationType string  `json:"notificationType"`
	Message          string  `json:"message"`
	Channel          Channel `json:"channel"`
}

// Generator produces a personalized notification from a Profile. It is an
// external collaborator that may fail; callers surface the failure without
// retrying.
type Generator interface {
	Generate(ctx context.Context, profile Profile) (Generated, error)
}

// Sender delivers a generated notification over one channel.
type Sender interface {
	Send(n Generated, recipient user.User) error
}

// AppNotification is the stored in-app copy of a delivered notification.
type AppNotification struct {
	ID         string    `json:"id"`
	SchoolCode string    `json:"schoolCode"`
	UserID     string    `json:"userId"`
	Type       string    `json:"type"`
	Message    string    `json:"message"`
	Channel    Channel   `json:"channel"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"createdAt"` // UTC
}
