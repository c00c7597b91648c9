package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smarttrack/backend/core/fees"
	"github.com/smarttrack/backend/core/user"
	testutil "github.com/smarttrack/backend/tests"
)

func Test_feesApi(t *testing.T) {
	app := setup(t)

	principal := testutil.CreateUser(t, usrRepo, "SKL001", user.RolePrincipal, "principal@test.pk", "Principal", "secret1")
	student := testutil.CreateStudent(t, usrRepo, "SKL001", "S001", "John Connor", "10-A", "")

	err := feesRepo.CreatePayments(
		fees.Payment{SchoolCode: "SKL001", StudentID: "S001", Amount: 5000, DueDate: "2026-09-01", Status: fees.StatusUnpaid},
		fees.Payment{SchoolCode: "SKL002", StudentID: "S001", Amount: 9999, DueDate: "2026-09-01", Status: fees.StatusUnpaid},
	)
	assert.NoError(t, err)

	principalToken := getToken(t, principal)

	t.Run("list is tenant-scoped", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/fees", principalToken)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var payments []fees.Payment
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payments))
		assert.Len(t, payments, 1)
		assert.Equal(t, 5000, payments[0].Amount)
	})

	t.Run("students cannot list the school ledger", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/fees", getToken(t, student))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("students see their own rows", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/fees/students/S001", getToken(t, student))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var payments []fees.Payment
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payments))
		assert.Len(t, payments, 1)
	})

	t.Run("mark paid", func(t *testing.T) {
		body := marchallObj(t, map[string]string{
			"studentId": "S001", "dueDate": "2026-09-01", "status": "Paid", "paidOn": "2026-08-30",
		})
		req, rec := newAuthRequest(http.MethodPut, "/v1/fees/status", principalToken, body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var payment fees.Payment
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payment))
		assert.Equal(t, fees.StatusPaid, payment.Status)
		assert.Equal(t, "2026-08-30", payment.PaidOn)
	})

	t.Run("paid requires a valid paidOn", func(t *testing.T) {
		body := marchallObj(t, map[string]string{
			"studentId": "S001", "dueDate": "2026-09-01", "status": "Paid",
		})
		req, rec := newAuthRequest(http.MethodPut, "/v1/fees/status", principalToken, body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown row is 404", func(t *testing.T) {
		body := marchallObj(t, map[string]string{
			"studentId": "S999", "dueDate": "2026-09-01", "status": "Paid", "paidOn": "2026-08-30",
		})
		req, rec := newAuthRequest(http.MethodPut, "/v1/fees/status", principalToken, body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
