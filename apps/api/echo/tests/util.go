package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/smarttrack/backend/apps/api/echo"
	"github.com/smarttrack/backend/core"
	"github.com/smarttrack/backend/core/attendance"
	"github.com/smarttrack/backend/core/fees"
	"github.com/smarttrack/backend/core/leave"
	"github.com/smarttrack/backend/core/notification"
	"github.com/smarttrack/backend/core/school"
	"github.com/smarttrack/backend/core/user"
	aigensvc "github.com/smarttrack/backend/services/aigen"
	emailsvc "github.com/smarttrack/backend/services/email"
	notifysvc "github.com/smarttrack/backend/services/notify"
	kvrepos "github.com/smarttrack/backend/storage/kvstore/repos"
	testutil "github.com/smarttrack/backend/tests"
)

var (
	conf *core.Config

	usrRepo  user.Repository
	attRepo  attendance.Repository
	feesRepo fees.Repository

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
)

func setup(t *testing.T) Server {
	t.Helper()

	conf = core.NewTestConfig()
	logger := testutil.NewLogger()

	// set up store & repos
	db := testutil.PrepareDB(t)
	schoolRepo := kvrepos.NewSchoolRepository(db)
	usrRepo = kvrepos.NewUserRepository(db)
	attRepo = kvrepos.NewAttendanceRepository(db)
	feesRepo = kvrepos.NewFeesRepository(db)
	leaveRepo := kvrepos.NewLeaveRepository(db)
	notifRepo := kvrepos.NewNotificationRepository(db)

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(conf, logger)
	validate, translator := core.NewValidator()

	// set up server
	return NewServer(&Options{
		Conf:           conf,
		Logger:         logger,
		Validate:       validate,
		Translator:     translator,
		DisableReqLogs: true,

		SchoolSvc:     school.NewService(schoolRepo, usrRepo, attRepo, feesRepo, leaveRepo, logger),
		UserSvc:       user.NewService(usrRepo),
		AttendanceSvc: attendance.NewService(attRepo, usrRepo),
		FeeSvc:        fees.NewService(feesRepo),
		LeaveSvc:      leave.NewService(leaveRepo, usrRepo),
		NotificationSvc: notification.NewService(
			notifRepo,
			aigensvc.NewDummyGenerator(),
			notifysvc.NewSenders(mailSvc, logger),
			usrRepo, attRepo, feesRepo,
			logger,
		),
	})
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	token, err := GenerateToken(conf, GetUserClaims(conf, usr))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	if l1, ok := j1.([]interface{}); ok {
		if l2, ok := j2.([]interface{}); ok {
			return assert.ElementsMatch(t, l1, l2), nil
		}
	}
	return false, nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()

	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
