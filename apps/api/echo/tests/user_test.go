package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/smarttrack/backend/apps/api/echo"
	"github.com/smarttrack/backend/core/user"
	testutil "github.com/smarttrack/backend/tests"
)

func Test_userApi_login(t *testing.T) {
	app := setup(t)

	testutil.CreateUser(t, usrRepo, "SKL001", user.RoleTeacher, "alan@test.pk", "Alan Grant", "secret1")

	creds := func(schoolCode string, role user.Role, id, pwd string) []byte {
		return marchallObj(t, user.Credentials{SchoolCode: schoolCode, Role: role, UserID: id, Password: pwd})
	}
	invalidCreds := marchallObj(t, httpErr{Error: "invalid credentials"})

	tests := []httpTest{
		{
			name: "empty body", method: http.MethodPost, path: "/v1/users/login",
			wantCode: http.StatusBadRequest,
		},
		{
			name: "wrong password", method: http.MethodPost, path: "/v1/users/login",
			body: creds("SKL001", user.RoleTeacher, "alan@test.pk", "nope"),
			wantCode: http.StatusBadRequest, wantData: invalidCreds,
		},
		{
			name: "wrong role", method: http.MethodPost, path: "/v1/users/login",
			body: creds("SKL001", user.RoleStudent, "alan@test.pk", "secret1"),
			wantCode: http.StatusBadRequest, wantData: invalidCreds,
		},
		{
			name: "wrong school", method: http.MethodPost, path: "/v1/users/login",
			body: creds("SKL999", user.RoleTeacher, "alan@test.pk", "secret1"),
			wantCode: http.StatusBadRequest, wantData: invalidCreds,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("ok", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/users/login", creds("SKL001", user.RoleTeacher, "alan@test.pk", "secret1"))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp LoginResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "alan@test.pk", resp.User.ID)
		assert.Empty(t, resp.User.PasswordHash)
	})
}

func Test_userApi_students(t *testing.T) {
	app := setup(t)

	principal := testutil.CreateUser(t, usrRepo, "SKL001", user.RolePrincipal, "principal@test.pk", "Principal", "secret1")
	teacher := testutil.CreateUser(t, usrRepo, "SKL001", user.RoleTeacher, "alan@test.pk", "Alan Grant", "secret1")
	otherPrincipal := testutil.CreateUser(t, usrRepo, "SKL002", user.RolePrincipal, "p2@test.pk", "Other", "secret1")

	principalToken := getToken(t, principal)

	newStudent := marchallObj(t, user.NewStudent{
		Name:       "John Connor",
		Class:      "10-A",
		DOB:        "2012-03-04",
		FatherName: "Father",
		BFormNo:    "12345-6789",
		FatherCNIC: "35202-1234567-1",
		Password:   "password",
	})

	t.Run("create requires principal", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/students", getToken(t, teacher), newStudent)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("create", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/students", principalToken, newStudent)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var usr user.User
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &usr))
		assert.Equal(t, "S001", usr.ID)
		assert.Empty(t, usr.PasswordHash)
	})

	t.Run("bogus parent rejected", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/students", principalToken, marchallObj(t, user.NewStudent{
			Name:       "Lex Murphy",
			Class:      "9-B",
			DOB:        "2013-05-15",
			FatherName: "John Hammond",
			BFormNo:    "67890",
			FatherCNIC: "35202-7654321-2",
			ParentID:   "P999",
			Password:   "password",
		}))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "parentId")
	})

	t.Run("list is tenant-scoped", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/students", getToken(t, otherPrincipal))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())

		req, rec = newAuthRequest(http.MethodGet, "/v1/students", principalToken)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var students []user.User
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &students))
		assert.Len(t, students, 1)
	})

	t.Run("update keeps password", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/students/S001", principalToken,
			marchallObj(t, user.UpdateStudent{Class: "10-B"}))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		stored, err := usrRepo.GetUser("SKL001", user.RoleStudent, "S001")
		assert.NoError(t, err)
		assert.Equal(t, "10-B", stored.Class)
		assert.NoError(t, stored.CheckPassword("password"))
	})

	t.Run("retrieve unknown is 404", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/students/S999", principalToken)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/students/S001", principalToken)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func Test_userApi_teachers(t *testing.T) {
	app := setup(t)

	principal := testutil.CreateUser(t, usrRepo, "SKL001", user.RolePrincipal, "principal@test.pk", "Principal", "secret1")
	principalToken := getToken(t, principal)

	newTeacher := marchallObj(t, user.NewTeacher{
		Name: "Ellie Sattler", Email: "ellie@test.pk", AssignedClass: "9-B", Password: "secret1",
	})

	req, rec := newAuthRequest(http.MethodPost, "/v1/teachers", principalToken, newTeacher)
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var usr user.User
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &usr))
	assert.Equal(t, "ellie@test.pk", usr.ID)

	// same email again
	req, rec = newAuthRequest(http.MethodPost, "/v1/teachers", principalToken, newTeacher)
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email")

	// the new teacher can log in and list colleagues, but not create them
	req, rec = newAuthRequest(http.MethodGet, "/v1/teachers", getToken(t, usr))
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req, rec = newAuthRequest(http.MethodPost, "/v1/teachers", getToken(t, usr), marchallObj(t, user.NewTeacher{
		Name: "Ian Malcolm", Email: "ian@test.pk", Password: "secret1",
	}))
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
