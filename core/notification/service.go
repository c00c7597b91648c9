package notification

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/smarttrack/backend/core"
	"github.com/smarttrack/backend/core/attendance"
	"github.com/smarttrack/backend/core/fees"
	"github.com/smarttrack/backend/core/user"
)

// maxProfileAttendance caps how many attendance records are handed to the
// generator per subject.
const maxProfileAttendance = 5

var ErrNotFound = errors.New("notification not found")

type (
	Repository interface {
		QueryByUser(schoolCode, userID string) ([]AppNotification, error)
		CreateNotification(n AppNotification) error
		// MarkRead flags the notification as read. Returns ErrNotFound when absent.
		MarkRead(schoolCode, id string) (AppNotification, error)
	}

	Service struct {
		repo    Repository
		gen     Generator
		senders map[Channel]Sender
		users   user.Repository
		att     attendance.Repository
		fees    fees.Repository
		logger  core.Logger
	}
)

func NewService(
	repo Repository,
	gen Generator,
	senders map[Channel]Sender,
	users user.Repository,
	att attendance.Repository,
	feesRepo fees.Repository,
	logger core.Logger,
) *Service {
	return &Service{
		repo:    repo,
		gen:     gen,
		senders: senders,
		users:   users,
		att:     att,
		fees:    feesRepo,
		logger:  logger,
	}
}

// BuildProfile assembles the generator input for a user: their own (or, for
// parents, their first child's) recent attendance and latest fee status,
// plus any school-wide announcements.
func (svc *Service) BuildProfile(usr user.User, announcements []string) (Profile, error) {
	p := Profile{
		UserRole:             usr.Role,
		UserID:               usr.ID,
		UserName:             usr.Name,
		GeneralAnnouncements: announcements,
	}

	switch usr.Role {
	case user.RoleStudent:
		att, fee, err := svc.studentSummary(usr.SchoolCode, usr.ID)
		if err != nil {
			return Profile{}, err
		}
		p.AttendanceRecords = att
		p.FeePaymentStatus = fee

	case user.RoleParent:
		p.ParentName = usr.Name
		if len(usr.ChildIDs) == 0 {
			break
		}
		child, err := svc.users.GetUser(usr.SchoolCode, user.RoleStudent, usr.ChildIDs[0])
		if err != nil {
			return Profile{}, errors.Wrap(err, "finding child")
		}
		att, fee, err := svc.studentSummary(usr.SchoolCode, child.ID)
		if err != nil {
			return Profile{}, err
		}
		p.ChildName = child.Name
		p.ChildAttendanceRecords = att
		p.ChildFeePaymentStatus = fee
	}
	return p, nil
}

// studentSummary returns the student's last attendance records (most recent
// first, capped) and the status of their most recent fee row.
func (svc *Service) studentSummary(schoolCode, studentID string) ([]AttendanceEntry, fees.Status, error) {
	records, err := svc.att.QueryByStudent(schoolCode, studentID)
	if err != nil {
		return nil, "", errors.Wrap(err, "querying attendance")
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Date > records[j].Date })
	if len(records) > maxProfileAttendance {
		records = records[:maxProfileAttendance]
	}
	entries := make([]AttendanceEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, AttendanceEntry{Date: r.Date, Status: r.Status})
	}

	payments, err := svc.fees.QueryByStudent(schoolCode, studentID)
	if err != nil {
		return nil, "", errors.Wrap(err, "querying fees")
	}
	var feeStatus fees.Status
	var latest string
	for _, p := range payments {
		if p.DueDate >= latest {
			latest = p.DueDate
			feeStatus = p.Status
		}
	}
	return entries, feeStatus, nil
}

// Notify builds the user's profile, asks the generator for a personalized
// message, stores the in-app copy and delivers it over the chosen channel.
// Generator failures are surfaced as-is, without retry.
func (svc *Service) Notify(ctx context.Context, usr user.User, announcements []string) (Generated, error) {
	profile, err := svc.BuildProfile(usr, announcements)
	if err != nil {
		return Generated{}, err
	}

	gen, err := svc.gen.Generate(ctx, profile)
	if err != nil {
		return Generated{}, errors.Wrap(err, "generating notification")
	}

	n := AppNotification{
		ID:         uuid.New().String(),
		SchoolCode: usr.SchoolCode,
		UserID:     usr.ID,
		Type:       gen.NotificationType,
		Message:    gen.Message,
		Channel:    gen.Channel,
		CreatedAt:  core.NowFunc().UTC(),
	}
	if err = svc.repo.CreateNotification(n); err != nil {
		return Generated{}, errors.Wrap(err, "storing notification")
	}

	if sender, ok := svc.senders[gen.Channel]; ok {
		if err = sender.Send(gen, usr); err != nil {
			// delivery is best-effort; the in-app copy is already stored
			svc.logger.Error("delivering notification", err)
		}
	}
	return gen, nil
}

func (svc *Service) ForUser(schoolCode, userID string) ([]AppNotification, error) {
	return svc.repo.QueryByUser(schoolCode, userID)
}

func (svc *Service) MarkRead(schoolCode, id string) (AppNotification, error) {
	return svc.repo.MarkRead(schoolCode, id)
}
