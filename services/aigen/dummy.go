package aigensvc

import (
	"context"
	"fmt"

	"github.com/smarttrack/backend/core/attendance"
	"github.com/smarttrack/backend/core/fees"
	"github.com/smarttrack/backend/core/notification"
	"github.com/smarttrack/backend/core/user"
)

// DummyGenerator is a deterministic rule-based generator for tests and
// environments without a Gemini API key.
type DummyGenerator struct{}

var _ notification.Generator = (*DummyGenerator)(nil)

func NewDummyGenerator() *DummyGenerator {
	return &DummyGenerator{}
}

func (g *DummyGenerator) Generate(_ context.Context, p notification.Profile) (notification.Generated, error) {
	attRecords := p.AttendanceRecords
	feeStatus := p.FeePaymentStatus
	subject := p.UserName
	if p.UserRole == user.RoleParent {
		attRecords = p.ChildAttendanceRecords
		feeStatus = p.ChildFeePaymentStatus
		subject = p.ChildName
	}

	for _, rec := range attRecords {
		if rec.Status == attendance.StatusAbsent {
			return notification.Generated{
				NotificationType: "Absence Alert",
				Message:          fmt.Sprintf("%s was marked absent on %s.", subject, rec.Date),
				Channel:          notification.ChannelSMS,
			}, nil
		}
	}
	if feeStatus == fees.StatusUnpaid {
		return notification.Generated{
			NotificationType: "Fee Reminder",
			Message:          fmt.Sprintf("A fee payment for %s is still unpaid.", subject),
			Channel:          notification.ChannelWhatsApp,
		}, nil
	}

	msg := fmt.Sprintf("Hello %s, there are no pending alerts for you.", p.UserName)
	if len(p.GeneralAnnouncements) > 0 {
		msg = fmt.Sprintf("Hello %s: %s", p.UserName, p.GeneralAnnouncements[0])
	}
	return notification.Generated{
		NotificationType: "General Announcement",
		Message:          msg,
		Channel:          notification.ChannelEmail,
	}, nil
}
