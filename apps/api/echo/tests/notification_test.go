package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smarttrack/backend/core/attendance"
	"github.com/smarttrack/backend/core/notification"
	testutil "github.com/smarttrack/backend/tests"
)

func Test_notificationApi(t *testing.T) {
	app := setup(t)

	student := testutil.CreateStudent(t, usrRepo, "SKL001", "S001", "John Connor", "10-A", "")
	err := attRepo.UpsertRecords(attendance.Record{
		SchoolCode: "SKL001", StudentID: "S001", Date: "2026-08-29",
		Status: attendance.StatusAbsent, MarkedBy: "alan@test.pk",
	})
	assert.NoError(t, err)

	studentToken := getToken(t, student)

	t.Run("generate", func(t *testing.T) {
		body := marchallObj(t, map[string][]string{"announcements": {"PTM on Friday"}})
		req, rec := newAuthRequest(http.MethodPost, "/v1/notifications/generate", studentToken, body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var gen notification.Generated
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &gen))
		assert.Equal(t, "Absence Alert", gen.NotificationType)
		assert.Equal(t, notification.ChannelSMS, gen.Channel)
	})

	var stored notification.AppNotification

	t.Run("list own notifications", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/notifications", studentToken)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var notifs []notification.AppNotification
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &notifs))
		assert.Len(t, notifs, 1)
		assert.False(t, notifs[0].Read)
		stored = notifs[0]
	})

	t.Run("another user sees nothing", func(t *testing.T) {
		other := testutil.CreateStudent(t, usrRepo, "SKL001", "S002", "Lex Murphy", "10-A", "")
		req, rec := newAuthRequest(http.MethodGet, "/v1/notifications", getToken(t, other))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("mark read", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/notifications/"+stored.ID+"/read", studentToken)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var read notification.AppNotification
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &read))
		assert.True(t, read.Read)
	})

	t.Run("unknown notification is 404", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/notifications/nope/read", studentToken)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
