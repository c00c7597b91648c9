package school

import (
	"github.com/pkg/errors"

	"github.com/smarttrack/backend/core"
	"github.com/smarttrack/backend/core/attendance"
	"github.com/smarttrack/backend/core/fees"
	"github.com/smarttrack/backend/core/leave"
	"github.com/smarttrack/backend/core/user"
)

// SeedPassword is the login password of every seeded demo user.
const SeedPassword = "password"

// seed inserts the fixed demonstration dataset, scoped to the given school:
// two teachers, two parents, two students, one attendance record per student,
// one fee row per student and one approved leave request. Dates are relative
// to the clock so the demo data never looks stale.
func (svc *Service) seed(schoolCode string) error {
	now := core.NowFunc()
	yesterday := now.AddDate(0, 0, -1).Format(core.DateFormat)
	lastWeek := now.AddDate(0, 0, -7).Format(core.DateFormat)
	nextFortnight := now.AddDate(0, 0, 14).Format(core.DateFormat)

	users := []user.User{
		{ID: "T001", Role: user.RoleTeacher, Name: "Mr. Alan Grant", SchoolCode: schoolCode, AssignedClass: "10-A"},
		{ID: "T002", Role: user.RoleTeacher, Name: "Ms. Ellie Sattler", SchoolCode: schoolCode, AssignedClass: "9-B"},
		{ID: "P001", Role: user.RoleParent, Name: "Sarah Connor", SchoolCode: schoolCode, ChildIDs: []string{"S001"}},
		{ID: "P002", Role: user.RoleParent, Name: "John Hammond", SchoolCode: schoolCode, ChildIDs: []string{"S002"}},
		{
			ID: "S001", Role: user.RoleStudent, Name: "John Connor", SchoolCode: schoolCode,
			Class: "10-A", DOB: "2008-02-28", FatherName: "Unknown", BFormNo: "12345",
			FatherCNIC: "35202-1234567-1", NadraVerified: true, ParentID: "P001",
		},
		{
			ID: "S002", Role: user.RoleStudent, Name: "Lex Murphy", SchoolCode: schoolCode,
			Class: "9-B", DOB: "2009-05-15", FatherName: "John Hammond", BFormNo: "67890",
			FatherCNIC: "35202-7654321-2", NadraVerified: false, ParentID: "P002",
		},
	}
	for i := range users {
		if err := users[i].SetPassword(SeedPassword); err != nil {
			return errors.Wrap(err, "hashing seed password")
		}
	}
	if err := svc.users.CreateUsers(users...); err != nil {
		return errors.Wrap(err, "seeding users")
	}

	records := []attendance.Record{
		{SchoolCode: schoolCode, StudentID: "S001", Date: yesterday, Status: attendance.StatusPresent, MarkedBy: "T001"},
		{SchoolCode: schoolCode, StudentID: "S002", Date: yesterday, Status: attendance.StatusAbsent, MarkedBy: "T002"},
	}
	if err := svc.att.UpsertRecords(records...); err != nil {
		return errors.Wrap(err, "seeding attendance")
	}

	payments := []fees.Payment{
		{SchoolCode: schoolCode, StudentID: "S001", Amount: 5000, DueDate: nextFortnight, Status: fees.StatusPaid, PaidOn: yesterday},
		{SchoolCode: schoolCode, StudentID: "S002", Amount: 4500, DueDate: nextFortnight, Status: fees.StatusUnpaid},
	}
	if err := svc.fees.CreatePayments(payments...); err != nil {
		return errors.Wrap(err, "seeding fees")
	}

	req := leave.Request{
		ID:          "L001",
		SchoolCode:  schoolCode,
		StudentID:   "S002",
		StudentName: "Lex Murphy",
		Date:        lastWeek,
		Reason:      "Family event.",
		Status:      leave.StatusApproved,
	}
	if err := svc.leaves.CreateRequest(req); err != nil {
		return errors.Wrap(err, "seeding leave requests")
	}
	return nil
}
