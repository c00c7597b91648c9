package tests

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/smarttrack/backend/core"
	"github.com/smarttrack/backend/core/attendance"
	"github.com/smarttrack/backend/core/user"
	testutil "github.com/smarttrack/backend/tests"
)

func Test_attendanceApi(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	core.NowFunc = func() time.Time { return now }
	defer func() { core.NowFunc = time.Now }()
	today := now.Format(core.DateFormat)

	app := setup(t)

	teacher := testutil.CreateUser(t, usrRepo, "SKL001", user.RoleTeacher, "alan@test.pk", "Alan Grant", "secret1")
	student := testutil.CreateStudent(t, usrRepo, "SKL001", "S001", "John Connor", "10-A", "")
	testutil.CreateStudent(t, usrRepo, "SKL001", "S002", "Lex Murphy", "10-A", "")

	teacherToken := getToken(t, teacher)

	markBody := func(entries ...attendance.Entry) []byte {
		return marchallObj(t, map[string][]attendance.Entry{"entries": entries})
	}

	t.Run("students cannot mark", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/attendance", getToken(t, student),
			markBody(attendance.Entry{StudentID: "S001", Date: today, Status: attendance.StatusPresent}))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("mark stamps the acting teacher", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/attendance", teacherToken,
			markBody(
				attendance.Entry{StudentID: "S001", Date: today, Status: attendance.StatusPresent},
				attendance.Entry{StudentID: "S002", Date: today, Status: attendance.StatusAbsent},
			))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		records, err := attRepo.QueryByDate("SKL001", today)
		assert.NoError(t, err)
		assert.Len(t, records, 2)
		assert.Equal(t, "alan@test.pk", records[0].MarkedBy)
	})

	t.Run("unknown student fails the batch", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/attendance", teacherToken,
			markBody(attendance.Entry{StudentID: "S999", Date: today, Status: attendance.StatusPresent}))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad date is rejected", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/attendance", teacherToken,
			markBody(attendance.Entry{StudentID: "S001", Date: "30/08/2026", Status: attendance.StatusPresent}))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("daily percentage", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/attendance/percentage", teacherToken)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"percentage": 50}`, rec.Body.String())
	})

	t.Run("by student", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/attendance/students/S001", getToken(t, student))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), today)
	})

	t.Run("by date requires staff", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/attendance/dates/"+today, getToken(t, student))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
