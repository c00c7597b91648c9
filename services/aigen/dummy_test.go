package aigensvc

import (
	"context"
	"testing"

	"github.com/smarttrack/backend/core/attendance"
	"github.com/smarttrack/backend/core/fees"
	"github.com/smarttrack/backend/core/notification"
	"github.com/smarttrack/backend/core/user"
)

func TestDummyGenerator(t *testing.T) {
	gen := NewDummyGenerator()

	tests := []struct {
		name        string
		profile     notification.Profile
		wantType    string
		wantChannel notification.Channel
	}{
		{
			name: "absence wins",
			profile: notification.Profile{
				UserRole: user.RoleStudent, UserName: "John",
				AttendanceRecords: []notification.AttendanceEntry{
					{Date: "2026-08-28", Status: attendance.StatusPresent},
					{Date: "2026-08-29", Status: attendance.StatusAbsent},
				},
				FeePaymentStatus: fees.StatusUnpaid,
			},
			wantType:    "Absence Alert",
			wantChannel: notification.ChannelSMS,
		},
		{
			name: "unpaid fee",
			profile: notification.Profile{
				UserRole: user.RoleStudent, UserName: "John",
				FeePaymentStatus: fees.StatusUnpaid,
			},
			wantType:    "Fee Reminder",
			wantChannel: notification.ChannelWhatsApp,
		},
		{
			name: "nothing pending",
			profile: notification.Profile{
				UserRole: user.RoleStudent, UserName: "John",
				FeePaymentStatus: fees.StatusPaid,
			},
			wantType:    "General Announcement",
			wantChannel: notification.ChannelEmail,
		},
		{
			name: "parent follows the child",
			profile: notification.Profile{
				UserRole: user.RoleParent, UserName: "Sarah", ChildName: "John",
				ChildAttendanceRecords: []notification.AttendanceEntry{
					{Date: "2026-08-29", Status: attendance.StatusAbsent},
				},
			},
			wantType:    "Absence Alert",
			wantChannel: notification.ChannelSMS,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := gen.Generate(context.Background(), tt.profile)
			if err != nil {
				t.Fatalf("Generate() failed: %v", err)
			}
			if got.NotificationType != tt.wantType {
				t.Errorf("Generate() NotificationType = %s, want %s", got.NotificationType, tt.wantType)
			}
			if got.Channel != tt.wantChannel {
				t.Errorf("Generate() Channel = %s, want %s", got.Channel, tt.wantChannel)
			}
		})
	}
}
