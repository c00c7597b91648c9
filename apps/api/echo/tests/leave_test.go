package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smarttrack/backend/core/leave"
	"github.com/smarttrack/backend/core/user"
	testutil "github.com/smarttrack/backend/tests"
)

func Test_leaveApi(t *testing.T) {
	app := setup(t)

	principal := testutil.CreateUser(t, usrRepo, "SKL001", user.RolePrincipal, "principal@test.pk", "Principal", "secret1")
	teacher := testutil.CreateUser(t, usrRepo, "SKL001", user.RoleTeacher, "alan@test.pk", "Alan Grant", "secret1")
	student := testutil.CreateStudent(t, usrRepo, "SKL001", "S001", "John Connor", "10-A", "P001")
	testutil.CreateStudent(t, usrRepo, "SKL001", "S002", "Lex Murphy", "9-B", "")
	parent := testutil.CreateParent(t, usrRepo, "SKL001", "P001", "Sarah Connor", "S001")

	var created leave.Request

	t.Run("student files for themselves", func(t *testing.T) {
		// the studentId in the body is ignored for student callers
		body := marchallObj(t, leave.NewRequest{StudentID: "S999", Date: "2026-09-02", Reason: "fever"})
		req, rec := newAuthRequest(http.MethodPost, "/v1/leaves", getToken(t, student), body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)

		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.Equal(t, "S001", created.StudentID)
		assert.Equal(t, "John Connor", created.StudentName)
		assert.Equal(t, leave.StatusPending, created.Status)
	})

	t.Run("teachers cannot file", func(t *testing.T) {
		body := marchallObj(t, leave.NewRequest{StudentID: "S001", Date: "2026-09-02", Reason: "x"})
		req, rec := newAuthRequest(http.MethodPost, "/v1/leaves", getToken(t, teacher), body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("principal lists all", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/leaves", getToken(t, principal))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var requests []leave.Request
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &requests))
		assert.Len(t, requests, 1)
	})

	t.Run("parent files for own child", func(t *testing.T) {
		body := marchallObj(t, leave.NewRequest{StudentID: "S001", Date: "2026-09-03", Reason: "travel"})
		req, rec := newAuthRequest(http.MethodPost, "/v1/leaves", getToken(t, parent), body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var filed leave.Request
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &filed))
		assert.Equal(t, "S001", filed.StudentID)
	})

	t.Run("parent cannot file for another student", func(t *testing.T) {
		body := marchallObj(t, leave.NewRequest{StudentID: "S002", Date: "2026-09-03", Reason: "travel"})
		req, rec := newAuthRequest(http.MethodPost, "/v1/leaves", getToken(t, parent), body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("teacher lists by class", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/leaves/classes/10-A", getToken(t, teacher))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), created.ID)

		req, rec = newAuthRequest(http.MethodGet, "/v1/leaves/classes/9-B", getToken(t, teacher))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("approve", func(t *testing.T) {
		body := marchallObj(t, map[string]string{"status": "Approved"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/leaves/"+created.ID+"/status", getToken(t, principal), body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var updated leave.Request
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
		assert.Equal(t, leave.StatusApproved, updated.Status)
	})

	t.Run("pending is not a decision", func(t *testing.T) {
		body := marchallObj(t, map[string]string{"status": "Pending"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/leaves/"+created.ID+"/status", getToken(t, principal), body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("students cannot decide", func(t *testing.T) {
		body := marchallObj(t, map[string]string{"status": "Approved"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/leaves/"+created.ID+"/status", getToken(t, student), body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unknown request is 404", func(t *testing.T) {
		body := marchallObj(t, map[string]string{"status": "Approved"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/leaves/L0/status", getToken(t, principal), body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
